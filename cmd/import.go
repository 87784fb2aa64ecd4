package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/etnz/wrapped"
	"github.com/etnz/wrapped/store/sqlite"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	db string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "copy the ledger files into a SQLite database" }
func (*importCmd) Usage() string {
	return `wrap -trades <file> -banking <file> import -db <database>

  Appends the trade and banking ledger files to a SQLite database, created if
  needed. A missing ledger file is skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.db, "db", "", "Path to the SQLite database, defaults to the global -db")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.db == "" {
		c.db = *dbFile
	}
	if c.db == "" {
		fmt.Fprintln(os.Stderr, "Error: a database is required")
		return subcommands.ExitUsageError
	}

	s, err := sqlite.Open(c.db)
	if err != nil {
		return failure(err)
	}
	defer s.Close()

	// Both ledgers are imported even if one fails.
	var errs []error
	if trades, err := wrapped.LoadTrades(*tradesFile, *tradesPath); skipMissing(err, *tradesFile) != nil {
		errs = append(errs, err)
	} else if trades != nil {
		records := slices.Collect(trades.Trades())
		if err := s.ImportTrades(ctx, records); err != nil {
			errs = append(errs, err)
		} else {
			fmt.Fprintf(stdout, "Imported %d trades into %s\n", len(records), c.db)
		}
	}

	if banking, err := wrapped.LoadBanking(*bankingFile, ""); skipMissing(err, *bankingFile) != nil {
		errs = append(errs, err)
	} else if banking != nil {
		records := slices.Collect(banking.Transactions())
		if err := s.ImportBanking(ctx, records); err != nil {
			errs = append(errs, err)
		} else {
			fmt.Fprintf(stdout, "Imported %d banking transactions into %s\n", len(records), c.db)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}

// skipMissing ignores the error of a ledger file that does not exist.
func skipMissing(err error, file string) error {
	if errors.Is(err, fs.ErrNotExist) {
		logrus.WithField("file", file).Warn("ledger file not found, skipped")
		return nil
	}
	return err
}
