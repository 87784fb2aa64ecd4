package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/wrapped"
	"github.com/etnz/wrapped/date"
	md "github.com/nao1215/markdown"
)

// BalanceRenderOptions holds configuration for rendering a balance report.
type BalanceRenderOptions struct {
	Transactions bool        // Also render the running balance after each transaction.
	Breakdown    date.Period // Calendar period of the statistics breakdown table.
}

// breakdownTitles are the section title and first column of each breakdown.
var breakdownTitles = map[date.Period][2]string{
	date.Daily:     {"Daily", "Day"},
	date.Weekly:    {"Weekly", "Week"},
	date.Monthly:   {"Monthly", "Month"},
	date.Quarterly: {"Quarterly", "Quarter"},
	date.Yearly:    {"Yearly", "Year"},
}

// tableOptions keeps headers and cells as written.
var tableOptions = md.TableOptions{AutoWrapText: false, AutoFormatHeaders: false}

// BalanceMarkdown renders a reconstructed balance to a markdown string.
func BalanceMarkdown(r *wrapped.BalanceReport, opts BalanceRenderOptions) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := r.Currency
	overall := r.Statistics.Overall

	doc.H1(fmt.Sprintf("Balance of %s", r.User))
	doc.CustomTable(md.TableSet{
		Header: []string{md.Bold("Current Balance"), md.Bold(amount(overall.CurrentBalance, cur))},
		Rows: [][]string{
			{"Total Credits", amount(overall.TotalCredits, cur)},
			{"Total Debits", amount(overall.TotalDebits, cur)},
			{"Transactions", strconv.Itoa(overall.Transactions)},
			{"Mean Balance", amount(overall.MeanBalance, cur)},
			{"Min Balance", amount(overall.MinBalance, cur)},
			{"Max Balance", amount(overall.MaxBalance, cur)},
		},
	}, tableOptions)

	if len(r.Statistics.ByType) > 0 {
		doc.H2("By Type")
		table := md.TableSet{
			Header: []string{"Type", "Transactions", "Credits", "Debits", "Mean Amount"},
		}
		for _, s := range r.Statistics.ByType {
			table.Rows = append(table.Rows, []string{
				s.Type,
				strconv.Itoa(s.Transactions),
				amount(s.TotalCredits, cur),
				amount(s.TotalDebits, cur),
				amount(s.MeanAmount, cur),
			})
		}
		doc.CustomTable(table, tableOptions)
	}

	if stats := r.Breakdown(opts.Breakdown); len(stats) > 0 {
		titles := breakdownTitles[opts.Breakdown]
		doc.H2(titles[0])
		table := md.TableSet{
			Header: []string{titles[1], "Net Change", "Transactions", "Mean Balance", "Min", "Max"},
		}
		for _, s := range stats {
			table.Rows = append(table.Rows, []string{
				s.Period,
				signedAmount(s.NetChange, cur),
				strconv.Itoa(s.Transactions),
				amount(s.MeanBalance, cur),
				amount(s.MinBalance, cur),
				amount(s.MaxBalance, cur),
			})
		}
		doc.CustomTable(table, tableOptions)
	}

	out := doc.String()
	if opts.Transactions {
		var b bytes.Buffer
		b.WriteString(out)
		ConditionalBlock(&b, func(w io.Writer) bool {
			fmt.Fprintf(w, "\n## Transactions\n\n")
			fmt.Fprintf(w, "| Booked | Type | Amount | Balance |\n")
			fmt.Fprintf(w, "|:---|:---|---:|---:|\n")
			for _, e := range r.Entries {
				fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
					e.Timestamp.Format("2006-01-02 15:04"),
					e.Transaction.Type,
					signedAmount(e.Transaction.SignedAmount(), e.Transaction.Currency),
					amount(e.Balance, cur))
			}
			return len(r.Entries) > 0
		})
		out = b.String()
	}
	return out
}
