package cmd

import (
	"context"
	"flag"

	"github.com/etnz/wrapped/renderer"
	"github.com/google/subcommands"
)

// usersCmd holds the flags for the 'users' subcommand.
type usersCmd struct {
	limit int
	json  bool
}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list the traders of the ledger" }
func (*usersCmd) Usage() string {
	return `wrap users [-n <count>] [-json]

  Lists every trader of the trade ledger with the figures insights are ranked on,
  largest volume first.
`
}

func (c *usersCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 0, "Maximum number of traders to list, all if 0")
	f.BoolVar(&c.json, "json", false, "Print the user summaries as JSON")
}

func (c *usersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadTrades(ctx)
	if err != nil {
		return failure(err)
	}
	p := cache.Population(ledger)

	if c.json {
		var summaries []any
		for _, user := range p.Users() {
			s, err := p.Summary(user)
			if err != nil {
				return failure(err)
			}
			summaries = append(summaries, s)
		}
		return printJSON(summaries)
	}
	printMarkdown(renderer.PopulationMarkdown(p, ledger.Currency(), c.limit))
	return subcommands.ExitSuccess
}
