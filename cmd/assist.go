package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/etnz/wrapped"
	"github.com/etnz/wrapped/agent"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	user  string
	model string
}

// Name returns the name of the command.
func (*assistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }

// Usage returns a long-form usage string.
func (*assistCmd) Usage() string {
	return `wrap assist [-u <user>] [-model <model>] [<prompt>...]

  Start an interactive session with the AI assistant. It needs a Gemini API key
  in GOOGLE_API_KEY. With -u, the session starts with the story of the user's year.
`
}

// SetFlags sets the flags for the command.
func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "User whose year to tell first")
	f.StringVar(&c.model, "model", cfg.Model, "Gemini model")
}

// Execute executes the command.
func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if c.user != "" {
		prompts = append(prompts, fmt.Sprintf("Tell me the story of %s's trading year.", c.user))
	}
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	data := &agent.Data{Cache: cache}
	var err error
	if data.Trades, err = loadTrades(ctx); err != nil {
		return failure(err)
	}
	// The banking ledger is optional.
	banking, err := loadBanking(ctx)
	switch {
	case err == nil:
		data.Banking = banking
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, wrapped.ErrEmptyLedger):
		logrus.WithError(err).Info("no banking ledger for the assistant")
	default:
		return failure(err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(stdout, os.Stdin, c.model, agent.NewStoryteller(c.model, data), agent.NewTrader(c.model))
	a.Render = renderMarkdown

	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
