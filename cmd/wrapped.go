package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wrapped/renderer"
	"github.com/google/subcommands"
)

// wrappedCmd holds the flags for the 'wrapped' subcommand.
type wrappedCmd struct {
	user string
	json bool
}

func (*wrappedCmd) Name() string     { return "wrapped" }
func (*wrappedCmd) Synopsis() string { return "tell the story of a trader's year" }
func (*wrappedCmd) Usage() string {
	return `wrap wrapped -u <user> [-json]

  Displays the thirteen insights of a trader's year, ranked against every
  trader of the same ledger. The user can also be given as the only argument.
`
}

func (c *wrappedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "User id")
	f.BoolVar(&c.json, "json", false, "Print the insights as JSON")
}

func (c *wrappedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user == "" && f.NArg() == 1 {
		c.user = f.Arg(0)
	}
	if c.user == "" {
		fmt.Fprintln(os.Stderr, "Error: a user is required")
		return subcommands.ExitUsageError
	}

	ledger, err := loadTrades(ctx)
	if err != nil {
		return failure(err)
	}
	w, err := cache.Wrapped(ledger, c.user)
	if err != nil {
		return failure(err)
	}

	if c.json {
		return printJSON(w)
	}
	printMarkdown(renderer.RenderWrapped(w))
	return subcommands.ExitSuccess
}
