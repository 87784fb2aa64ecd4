package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/wrapped"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2/predict"
)

const testTrades = `userId,executedAt,ISIN,direction,executionSize,executionPrice,executionFee,type
alice,2024-01-02T08:15:00Z,DE0001,BUY,10,100,1,REGULAR
alice,2024-01-03T10:00:00Z,US0002,SELL,5,20,1,REGULAR
bob,2024-02-10T14:00:00Z,US0002,BUY,1,50,0,BONUS
`

const testBanking = `userId,bookingDate,amount,side,type,currency
alice,2024-06-01 10:00:00,100,CREDIT,DEPOSIT,EUR
alice,2024-06-15 12:30:00,40,DEBIT,CARD,EUR
alice,2024-07-01 09:00:00,10,CREDIT,INTEREST,EUR
`

// setupFiles writes the test ledgers and points the global flags to them.
func setupFiles(t *testing.T) (dir string, out *bytes.Buffer) {
	t.Helper()
	dir = t.TempDir()
	trades := filepath.Join(dir, "trades.csv")
	banking := filepath.Join(dir, "banking.csv")
	if err := os.WriteFile(trades, []byte(testTrades), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(banking, []byte(testBanking), 0644); err != nil {
		t.Fatal(err)
	}

	saved := []string{*tradesFile, *bankingFile, *dbFile, *currency}
	savedOut := stdout
	t.Cleanup(func() {
		*tradesFile, *bankingFile, *dbFile, *currency = saved[0], saved[1], saved[2], saved[3]
		stdout = savedOut
		cache.Invalidate()
	})
	*tradesFile, *bankingFile, *dbFile, *currency = trades, banking, "", "EUR"
	out = &bytes.Buffer{}
	stdout = out
	cache.Invalidate()
	return dir, out
}

// run parses args with the command's flags and executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parsing %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestWrappedCmd(t *testing.T) {
	_, out := setupFiles(t)

	if status := run(t, &wrappedCmd{}, "-u", "alice", "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("wrapped status = %v", status)
	}
	var decoded struct {
		User     string `json:"userId"`
		Insights []struct {
			Kind string `json:"kind"`
			Text string `json:"text"`
		} `json:"insights"`
	}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if decoded.User != "alice" || len(decoded.Insights) != wrapped.InsightCount {
		t.Errorf("wrapped = %s with %d insights, want alice with %d", decoded.User, len(decoded.Insights), wrapped.InsightCount)
	}
	if decoded.Insights[0].Kind != "opening-trade" {
		t.Errorf("first insight kind = %q, want opening-trade", decoded.Insights[0].Kind)
	}

	// The user can be given as an argument, like the original script.
	out.Reset()
	if status := run(t, &wrappedCmd{}, "-json", "bob"); status != subcommands.ExitSuccess {
		t.Errorf("wrapped bob status = %v", status)
	}

	if status := run(t, &wrappedCmd{}, "-u", "mallory"); status != subcommands.ExitFailure {
		t.Errorf("wrapped unknown user status = %v, want failure", status)
	}
	if status := run(t, &wrappedCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("wrapped without user status = %v, want usage error", status)
	}
}

func TestBalanceCmd(t *testing.T) {
	_, out := setupFiles(t)

	if status := run(t, &balanceCmd{}, "-u", "alice", "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("balance status = %v", status)
	}
	var report struct {
		Transactions []struct {
			Timestamp string  `json:"timestamp"`
			Balance   float64 `json:"balance"`
		} `json:"transactions"`
		Statistics struct {
			Overall struct {
				CurrentBalance float64 `json:"currentBalance"`
			} `json:"overall"`
		} `json:"statistics"`
	}
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(report.Transactions) != 3 || report.Transactions[1].Balance != 60 || report.Transactions[1].Timestamp != "2024-06-15T12:30:00" {
		t.Errorf("transactions = %+v", report.Transactions)
	}
	if report.Statistics.Overall.CurrentBalance != 70 {
		t.Errorf("current balance = %v, want 70", report.Statistics.Overall.CurrentBalance)
	}

	out.Reset()
	if status := run(t, &balanceCmd{}, "-u", "alice", "-period", "quarter", "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("balance -period status = %v", status)
	}
	var quarterly struct {
		User      string `json:"userId"`
		Breakdown []struct {
			Period       string `json:"period"`
			Transactions int    `json:"transactions"`
		} `json:"breakdown"`
	}
	if err := json.Unmarshal(out.Bytes(), &quarterly); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if quarterly.User != "alice" || len(quarterly.Breakdown) != 2 || quarterly.Breakdown[0].Period != "2024-Q2" || quarterly.Breakdown[0].Transactions != 2 {
		t.Errorf("quarterly breakdown = %+v", quarterly)
	}
	if status := run(t, &balanceCmd{}, "-u", "alice", "-period", "fortnight"); status != subcommands.ExitUsageError {
		t.Errorf("balance -period fortnight status = %v, want usage error", status)
	}

	if status := run(t, &balanceCmd{}, "-u", "bob"); status != subcommands.ExitFailure {
		t.Errorf("balance unknown user status = %v, want failure", status)
	}
}

func TestImportCmd(t *testing.T) {
	dir, out := setupFiles(t)
	db := filepath.Join(dir, "wrapped.db")

	if status := run(t, &importCmd{}, "-db", db); status != subcommands.ExitSuccess {
		t.Fatalf("import status = %v", status)
	}
	if got := out.String(); !strings.Contains(got, "Imported 3 trades") || !strings.Contains(got, "Imported 3 banking transactions") {
		t.Errorf("import output = %q", got)
	}

	// Read back from the database only.
	*dbFile, *tradesFile = db, filepath.Join(dir, "missing.csv")
	out.Reset()
	if status := run(t, &usersCmd{}, "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("users status = %v", status)
	}
	var summaries []struct {
		User        string `json:"userId"`
		TotalTrades int    `json:"totalTrades"`
	}
	if err := json.Unmarshal(out.Bytes(), &summaries); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(summaries) != 2 || summaries[0].User != "alice" || summaries[0].TotalTrades != 2 {
		t.Errorf("users = %+v", summaries)
	}
}

func TestImportCmd_SkipsMissingFiles(t *testing.T) {
	dir, out := setupFiles(t)
	*bankingFile = filepath.Join(dir, "missing.csv")
	if status := run(t, &importCmd{}, "-db", filepath.Join(dir, "wrapped.db")); status != subcommands.ExitSuccess {
		t.Fatalf("import status = %v", status)
	}
	if got := out.String(); strings.Contains(got, "banking") {
		t.Errorf("import output = %q, want no banking import", got)
	}
}

func TestCompletion(t *testing.T) {
	fs := flag.NewFlagSet("wrap", flag.ContinueOnError)
	fs.String("trades", "", "")
	fs.Bool("verbose", false, "")
	c := Completion(fs)
	for _, name := range []string{"wrapped", "balance", "users", "import", "topic", "assist"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("completion has no %q subcommand", name)
		}
	}
	if _, ok := c.Flags["trades"]; !ok {
		t.Error("completion has no -trades flag")
	}
	if _, ok := c.Sub["wrapped"].Flags["json"]; !ok {
		t.Error("completion has no wrapped -json flag")
	}
	if _, ok := c.Sub["balance"].Flags["period"].(predict.Set); !ok {
		t.Error("balance -period completion does not predict periods")
	}
	if c.Sub["topic"].Args == nil {
		t.Error("topic completion does not predict topics")
	}
}
