package wrapped

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the reporting currency of ledgers that do not declare one.
const DefaultCurrency = "EUR"

// TradeLedger represents all the trade executions of a dataset.
//
// In a TradeLedger trades are always in chronological order.
type TradeLedger struct {
	source   string
	currency string
	trades   []Trade
	byUser   map[string][]int // index of the user's trades, in chronological order
	users    []string         // sorted user ids
}

// NewTradeLedger creates a ledger identified by source.
//
// The source identifies the dataset: two ledgers with the same source are
// expected to hold the same records (see PopulationCache). It returns
// ErrEmptyLedger if trades is empty.
func NewTradeLedger(source string, trades []Trade) (*TradeLedger, error) {
	if len(trades) == 0 {
		return nil, fmt.Errorf("trade ledger %q: %w", source, ErrEmptyLedger)
	}
	l := &TradeLedger{
		source:   source,
		currency: DefaultCurrency,
		trades:   slices.Clone(trades),
		byUser:   make(map[string][]int),
	}
	// The sort is stable, meaning trades executed at the same instant maintain their original relative order.
	sort.SliceStable(l.trades, func(i, j int) bool {
		return l.trades[i].ExecutedAt.Before(l.trades[j].ExecutedAt)
	})
	for i, t := range l.trades {
		if _, exists := l.byUser[t.User]; !exists {
			l.users = append(l.users, t.User)
		}
		l.byUser[t.User] = append(l.byUser[t.User], i)
	}
	slices.Sort(l.users)
	return l, nil
}

// Source returns the identity of the dataset.
func (l *TradeLedger) Source() string { return l.source }

// Currency returns the currency trade values and fees are expressed in.
func (l *TradeLedger) Currency() string { return l.currency }

// SetCurrency changes the currency trade values and fees are expressed in.
func (l *TradeLedger) SetCurrency(cur string) {
	if cur != "" {
		l.currency = cur
	}
}

// Len returns the number of trades.
func (l *TradeLedger) Len() int { return len(l.trades) }

// Users returns the sorted list of users.
func (l *TradeLedger) Users() []string { return slices.Clone(l.users) }

// HasUser reports whether the user has at least one trade.
func (l *TradeLedger) HasUser(user string) bool {
	_, ok := l.byUser[user]
	return ok
}

// Trades returns an iterator over all trades in chronological order.
func (l *TradeLedger) Trades() iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		for _, t := range l.trades {
			if !yield(t) {
				return
			}
		}
	}
}

// UserTrades returns the user's trades in chronological order, or
// ErrUserNotFound.
func (l *TradeLedger) UserTrades(user string) ([]Trade, error) {
	indexes, ok := l.byUser[user]
	if !ok {
		return nil, fmt.Errorf("user %q in %q: %w", user, l.source, ErrUserNotFound)
	}
	trades := make([]Trade, 0, len(indexes))
	for _, i := range indexes {
		trades = append(trades, l.trades[i])
	}
	return trades, nil
}

// money returns a value in the ledger currency.
func (l *TradeLedger) money(v decimal.Decimal) Money { return M(v, l.currency) }
