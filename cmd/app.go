// Package cmd implements the wrap command line application.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/wrapped"
	"github.com/etnz/wrapped/config"
	"github.com/etnz/wrapped/store/sqlite"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Commands returns the subcommands of the application, by group.
func Commands() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"trading": {&wrappedCmd{}, &usersCmd{}},
		"banking": {&balanceCmd{}},
		"data":    {&importCmd{}},
		"help":    {&topicCmd{}, &assistCmd{}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, commands := range Commands() {
		for _, cmd := range commands {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cfg = config.Load()

var (
	tradesFile  = flag.String("trades", cfg.Trades, "Path to the trade ledger (.csv, .jsonl or .json)")
	tradesPath  = flag.String("trades-path", cfg.TradesPath, "JSONPath of the trade records in a .json trade ledger")
	bankingFile = flag.String("banking", cfg.Banking, "Path to the banking ledger (.csv, .jsonl or .json)")
	dbFile      = flag.String("db", cfg.DB, "Path to a SQLite database to read the ledgers from, instead of the files")
	currency    = flag.String("currency", cfg.Currency, "Currency of trade amounts")
	logLevel    = flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
)

// stdout is where commands print their result.
var stdout io.Writer = os.Stdout

// cache holds the population of the trade ledger for the lifetime of the command.
var cache = wrapped.NewPopulationCache(nil)

// Setup applies the global flags, it must be called after flags are parsed.
func Setup() error {
	cfg.LogLevel = *logLevel
	return cfg.ConfigureLogging()
}

// loadTrades loads the trade ledger from the database if any, from the trade file otherwise.
func loadTrades(ctx context.Context) (*wrapped.TradeLedger, error) {
	var l *wrapped.TradeLedger
	if *dbFile != "" {
		s, err := sqlite.Open(*dbFile)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		if l, err = s.Trades(ctx); err != nil {
			return nil, err
		}
	} else {
		var err error
		if l, err = wrapped.LoadTrades(*tradesFile, *tradesPath); err != nil {
			return nil, err
		}
	}
	l.SetCurrency(*currency)
	return l, nil
}

// loadBanking loads the banking ledger from the database if any, from the banking file otherwise.
func loadBanking(ctx context.Context) (*wrapped.BankingLedger, error) {
	if *dbFile != "" {
		s, err := sqlite.Open(*dbFile)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.Banking(ctx)
	}
	return wrapped.LoadBanking(*bankingFile, "")
}

// failure reports err on stderr and returns the matching exit status.
func failure(err error) subcommands.ExitStatus {
	switch {
	case errors.Is(err, wrapped.ErrUserNotFound):
		fmt.Fprintf(os.Stderr, "User not found: %v\n", err)
	case errors.Is(err, wrapped.ErrEmptyLedger), errors.Is(err, wrapped.ErrMalformedRecord):
		fmt.Fprintf(os.Stderr, "Invalid ledger data: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logrus.WithError(err).Debug("command failed")
	return subcommands.ExitFailure
}

// renderMarkdown renders md for the terminal, md itself if it cannot.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			return out
		}
	}
	logrus.WithError(err).Warn("cannot render markdown")
	return md
}

// printMarkdown prints md rendered for the terminal.
func printMarkdown(md string) {
	fmt.Fprint(stdout, renderMarkdown(md))
}

// printJSON prints v as indented JSON.
func printJSON(v any) subcommands.ExitStatus {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return failure(err)
	}
	fmt.Fprintln(stdout, string(data))
	return subcommands.ExitSuccess
}
