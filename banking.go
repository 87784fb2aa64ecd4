package wrapped

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side tells whether a banking transaction adds to or removes from the balance.
type Side string

const (
	Credit Side = "CREDIT"
	Debit  Side = "DEBIT"
)

// ParseSide parses a side, case insensitive.
func ParseSide(s string) (Side, error) {
	switch side := Side(strings.ToUpper(strings.TrimSpace(s))); side {
	case Credit, Debit:
		return side, nil
	default:
		return "", fmt.Errorf("unknown side %q", s)
	}
}

// BankingTransaction is one entry of a bank account statement.
type BankingTransaction struct {
	User        string          `json:"userId"`
	BookingDate time.Time       `json:"bookingDate"`
	Amount      decimal.Decimal `json:"amount"` // unsigned
	Side        Side            `json:"side"`
	Type        string          `json:"type"`
	Currency    string          `json:"currency"`
}

// SignedAmount returns the amount, negated for debits.
func (t BankingTransaction) SignedAmount() decimal.Decimal {
	if t.Side == Credit {
		return t.Amount
	}
	return t.Amount.Neg()
}

// BankingLedger holds the banking transactions of a dataset, indexed by user.
type BankingLedger struct {
	source       string
	transactions []BankingTransaction
	byUser       map[string][]int
}

// NewBankingLedger creates a banking ledger identified by source. It returns
// ErrEmptyLedger if transactions is empty.
func NewBankingLedger(source string, transactions []BankingTransaction) (*BankingLedger, error) {
	if len(transactions) == 0 {
		return nil, fmt.Errorf("banking ledger %q: %w", source, ErrEmptyLedger)
	}
	l := &BankingLedger{
		source:       source,
		transactions: slices.Clone(transactions),
		byUser:       make(map[string][]int),
	}
	for i, tx := range l.transactions {
		l.byUser[tx.User] = append(l.byUser[tx.User], i)
	}
	return l, nil
}

// Source returns the identity of the dataset.
func (l *BankingLedger) Source() string { return l.source }

// Len returns the number of transactions.
func (l *BankingLedger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over all transactions in ledger order.
func (l *BankingLedger) Transactions() iter.Seq[BankingTransaction] {
	return func(yield func(BankingTransaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Users returns the sorted list of users.
func (l *BankingLedger) Users() []string {
	users := make([]string, 0, len(l.byUser))
	for u := range l.byUser {
		users = append(users, u)
	}
	slices.Sort(users)
	return users
}

// UserTransactions returns the user's transactions ordered by booking date,
// or ErrUserNotFound. Transactions booked at the same time keep their ledger order.
func (l *BankingLedger) UserTransactions(user string) ([]BankingTransaction, error) {
	indexes, ok := l.byUser[user]
	if !ok {
		return nil, fmt.Errorf("user %q in %q: %w", user, l.source, ErrUserNotFound)
	}
	txs := make([]BankingTransaction, 0, len(indexes))
	for _, i := range indexes {
		txs = append(txs, l.transactions[i])
	}
	slices.SortStableFunc(txs, func(a, b BankingTransaction) int {
		return a.BookingDate.Compare(b.BookingDate)
	})
	return txs, nil
}

// bankingColumns are the columns a banking export must provide.
var bankingColumns = []string{"userId", "bookingDate", "amount", "side", "type", "currency"}

type bankingRecord struct {
	User        string          `json:"userId"`
	BookingDate string          `json:"bookingDate"`
	Amount      decimal.Decimal `json:"amount"`
	Side        string          `json:"side"`
	Type        string          `json:"type"`
	Currency    string          `json:"currency"`
}

func (r bankingRecord) transaction() (BankingTransaction, error) {
	if r.User == "" {
		return BankingTransaction{}, fmt.Errorf("%w: missing userId", ErrMalformedRecord)
	}
	booked, err := ParseTimestamp(r.BookingDate)
	if err != nil {
		return BankingTransaction{}, fmt.Errorf("%w: bookingDate: %w", ErrMalformedRecord, err)
	}
	side, err := ParseSide(r.Side)
	if err != nil {
		return BankingTransaction{}, fmt.Errorf("%w: side: %w", ErrMalformedRecord, err)
	}
	if r.Amount.IsNegative() {
		return BankingTransaction{}, fmt.Errorf("%w: amount: negative amount %v, want a magnitude", ErrMalformedRecord, r.Amount)
	}
	return BankingTransaction{
		User:        r.User,
		BookingDate: booked,
		Amount:      r.Amount,
		Side:        side,
		Type:        strings.TrimSpace(r.Type),
		Currency:    strings.ToUpper(strings.TrimSpace(r.Currency)),
	}, nil
}

// DecodeBankingCSV decodes a CSV banking export with a header row.
func DecodeBankingCSV(r io.Reader) ([]BankingTransaction, error) {
	table, err := readCSV(r, bankingColumns...)
	if err != nil {
		return nil, err
	}
	var txs []BankingTransaction
	for line, row := range table.rows() {
		rec := bankingRecord{
			User:        table.get(row, "userId"),
			BookingDate: table.get(row, "bookingDate"),
			Side:        table.get(row, "side"),
			Type:        table.get(row, "type"),
			Currency:    table.get(row, "currency"),
		}
		if rec.Amount, err = table.decimal(row, "amount", false); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tx, err := rec.transaction()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	if err := table.err; err != nil {
		return nil, err
	}
	return txs, nil
}

// DecodeBankingJSONL decodes one JSON banking transaction per line.
func DecodeBankingJSONL(r io.Reader) ([]BankingTransaction, error) {
	var txs []BankingTransaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue
		}
		var rec bankingRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ErrMalformedRecord, err)
		}
		tx, err := rec.transaction()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading banking transactions: %w", err)
	}
	return txs, nil
}

// DecodeBankingJSON decodes the banking transactions found at the JSONPath
// expression recordsPath of a JSON document.
func DecodeBankingJSON(r io.Reader, recordsPath string) ([]BankingTransaction, error) {
	records, err := jsonRecords(r, recordsPath)
	if err != nil {
		return nil, err
	}
	txs := make([]BankingTransaction, 0, len(records))
	for i, raw := range records {
		var rec bankingRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w: %w", i, ErrMalformedRecord, err)
		}
		tx, err := rec.transaction()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
