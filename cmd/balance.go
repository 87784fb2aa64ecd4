package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wrapped"
	"github.com/etnz/wrapped/date"
	"github.com/etnz/wrapped/renderer"
	"github.com/google/subcommands"
)

// balanceCmd holds the flags for the 'balance' subcommand.
type balanceCmd struct {
	user         string
	json         bool
	transactions bool
	period       string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "rebuild a user's bank balance" }
func (*balanceCmd) Usage() string {
	return `wrap balance -u <user> [-tx] [-period <period>] [-json]

  Replays the user's banking transactions from a zero balance and displays
  the running balance statistics. The user can also be given as the only argument.

  The statistics are broken down by month, or by the -period given: day, week,
  month, quarter or year.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "User id")
	f.BoolVar(&c.json, "json", false, "Print the report as JSON, with every transaction")
	f.BoolVar(&c.transactions, "tx", false, "List every transaction with the balance right after it")
	f.StringVar(&c.period, "period", "monthly", "Period of the statistics breakdown: daily, weekly, monthly, quarterly or yearly")
}

func (c *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user == "" && f.NArg() == 1 {
		c.user = f.Arg(0)
	}
	if c.user == "" {
		fmt.Fprintln(os.Stderr, "Error: a user is required")
		return subcommands.ExitUsageError
	}

	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	ledger, err := loadBanking(ctx)
	if err != nil {
		return failure(err)
	}
	report, err := ledger.Reconstruct(c.user)
	if err != nil {
		return failure(err)
	}

	if c.json {
		if period == date.Monthly {
			return printJSON(report)
		}
		return printJSON(struct {
			*wrapped.BalanceReport
			Breakdown []wrapped.PeriodStatistics `json:"breakdown"`
		}{report, report.Breakdown(period)})
	}
	printMarkdown(renderer.BalanceMarkdown(report, renderer.BalanceRenderOptions{
		Transactions: c.transactions,
		Breakdown:    period,
	}))
	return subcommands.ExitSuccess
}
