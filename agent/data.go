package agent

import (
	"context"
	"fmt"

	"github.com/etnz/wrapped"
	"github.com/etnz/wrapped/docs"
	"github.com/etnz/wrapped/renderer"
	"google.golang.org/genai"
)

// Data is what the Storyteller can read.
type Data struct {
	Trades  *wrapped.TradeLedger
	Banking *wrapped.BankingLedger // nil if no banking ledger was loaded
	Cache   *wrapped.PopulationCache
}

// Functions returns the tools reading d.
func (d *Data) Functions() []Function {
	return []Function{d.wrappedInsights(), d.balanceReport(), d.community(), topic()}
}

var userSchema = map[string]*genai.Schema{
	"user": {
		Type:        genai.TypeString,
		Description: "The user id, as found in the ledger.",
	},
}

func (d *Data) wrappedInsights() *Func {
	const name = "wrapped_insights"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Returns the thirteen insights of a trader's year, in order, and the trader's persona.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: userSchema,
				Required:   []string{"user"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown numbered list of the insights.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			user, err := stringArg(args, "user")
			if err != nil {
				return errorResponse(id, name, err)
			}
			if d.Trades == nil {
				return errorResponse(id, name, fmt.Errorf("no trade ledger loaded"))
			}
			w, err := d.Cache.Wrapped(d.Trades, user)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.RenderWrapped(w))
		},
	}
}

func (d *Data) balanceReport() *Func {
	const name = "balance_report"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Returns a user's bank balance rebuilt from the banking ledger: current balance, statistics per type and per month.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: userSchema,
				Required:   []string{"user"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report with tables.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			user, err := stringArg(args, "user")
			if err != nil {
				return errorResponse(id, name, err)
			}
			if d.Banking == nil {
				return errorResponse(id, name, fmt.Errorf("no banking ledger loaded"))
			}
			r, err := d.Banking.Reconstruct(user)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.BalanceMarkdown(r, renderer.BalanceRenderOptions{}))
		},
	}
}

func (d *Data) community() *Func {
	const name = "community"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Lists the traders of the trade ledger with their key figures, largest volume first.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"limit": {
						Type:        genai.TypeInteger,
						Description: "The maximum number of traders to list, all of them if 0 or absent.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of traders.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			if d.Trades == nil {
				return errorResponse(id, name, fmt.Errorf("no trade ledger loaded"))
			}
			limit := 0
			// JSON numbers are decoded as float64.
			if v, ok := args["limit"].(float64); ok {
				limit = int(v)
			}
			p := d.Cache.Population(d.Trades)
			return outputResponse(id, name, renderer.PopulationMarkdown(p, d.Trades.Currency(), limit))
		},
	}
}

func topic() *Func {
	const name = "topic"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Returns a documentation topic: "insights", "personas", "balance" or "sources".`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {Type: genai.TypeString, Description: "The topic name."},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown documentation.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			t, err := stringArg(args, "name")
			if err != nil {
				return errorResponse(id, name, err)
			}
			doc, err := docs.GetTopic(t)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, doc)
		},
	}
}
