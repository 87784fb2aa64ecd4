package wrapped

import (
	"slices"
	"time"

	"github.com/etnz/wrapped/date"
	"github.com/shopspring/decimal"
)

// statisticsPlaces is the number of decimals means and monthly figures are rounded to.
const statisticsPlaces = 2

// BalanceEntry is the balance right after a transaction was booked.
type BalanceEntry struct {
	Timestamp   time.Time
	Balance     decimal.Decimal
	Transaction BankingTransaction
}

func (e BalanceEntry) MarshalJSON() ([]byte, error) {
	var tx jsonObjectWriter
	tx.Append("amount", e.Transaction.Amount.Round(statisticsPlaces))
	tx.Append("type", e.Transaction.Type)
	tx.Append("side", e.Transaction.Side)
	tx.Append("currency", e.Transaction.Currency)

	var w jsonObjectWriter
	w.Append("timestamp", e.Timestamp.Format("2006-01-02T15:04:05"))
	w.Append("balance", e.Balance.Round(statisticsPlaces))
	w.Append("transaction", &tx)
	return w.MarshalJSON()
}

// OverallStatistics summarizes all the transactions of a user.
type OverallStatistics struct {
	TotalCredits   decimal.Decimal `json:"totalCredits"`
	TotalDebits    decimal.Decimal `json:"totalDebits"`
	Transactions   int             `json:"transactions"`
	MeanBalance    decimal.Decimal `json:"meanBalance"`
	MaxBalance     decimal.Decimal `json:"maxBalance"`
	MinBalance     decimal.Decimal `json:"minBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// TypeStatistics summarizes the transactions of one type.
type TypeStatistics struct {
	Type         string          `json:"type"`
	Transactions int             `json:"transactions"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	MeanAmount   decimal.Decimal `json:"meanAmount"`
}

// PeriodStatistics summarizes the transactions booked during one calendar period.
type PeriodStatistics struct {
	Period       string          `json:"period"` // e.g. 2024-06, 2024-W23 or 2024-Q2
	NetChange    decimal.Decimal `json:"netChange"`
	Transactions int             `json:"transactions"`
	MeanBalance  decimal.Decimal `json:"meanBalance"`
	MinBalance   decimal.Decimal `json:"minBalance"`
	MaxBalance   decimal.Decimal `json:"maxBalance"`
}

// BalanceStatistics are derived from a BalanceReport's entries.
type BalanceStatistics struct {
	Overall OverallStatistics  `json:"overall"`
	ByType  []TypeStatistics   `json:"byType"`  // in order of first appearance
	Monthly []PeriodStatistics `json:"monthly"` // chronological
}

// BalanceReport is the running balance of a user's banking ledger.
type BalanceReport struct {
	User string `json:"userId"`
	// Currency is the currency shared by all the transactions, empty if they mix currencies.
	Currency   string            `json:"currency,omitempty"`
	Entries    []BalanceEntry    `json:"transactions"`
	Statistics BalanceStatistics `json:"statistics"`
}

// Reconstruct replays the user's transactions by booking date and computes the
// running balance from zero, and its statistics.
//
// It returns ErrUserNotFound if the user has no transaction.
func (l *BankingLedger) Reconstruct(user string) (*BalanceReport, error) {
	txs, err := l.UserTransactions(user)
	if err != nil {
		return nil, err
	}

	r := &BalanceReport{User: user, Currency: txs[0].Currency}
	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(tx.SignedAmount())
		r.Entries = append(r.Entries, BalanceEntry{Timestamp: tx.BookingDate, Balance: balance, Transaction: tx})
		if tx.Currency != r.Currency {
			r.Currency = ""
		}
	}
	r.Statistics = BalanceStatistics{
		Overall: overallStatistics(r.Entries),
		ByType:  typeStatistics(r.Entries),
		Monthly: breakdown(r.Entries, date.Monthly),
	}
	return r, nil
}

// balanceRange accumulates mean, min and max of balances.
type balanceRange struct {
	n             int
	sum, min, max decimal.Decimal
}

func (b *balanceRange) add(v decimal.Decimal) {
	if b.n == 0 || v.LessThan(b.min) {
		b.min = v
	}
	if b.n == 0 || v.GreaterThan(b.max) {
		b.max = v
	}
	b.n++
	b.sum = b.sum.Add(v)
}

func (b *balanceRange) mean() decimal.Decimal { return mean(b.sum, b.n) }

// mean returns sum/n rounded, or zero if n is zero.
func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(statisticsPlaces)
}

func overallStatistics(entries []BalanceEntry) OverallStatistics {
	var s OverallStatistics
	var balances balanceRange
	for _, e := range entries {
		switch e.Transaction.Side {
		case Credit:
			s.TotalCredits = s.TotalCredits.Add(e.Transaction.Amount)
		case Debit:
			s.TotalDebits = s.TotalDebits.Add(e.Transaction.Amount)
		}
		balances.add(e.Balance)
	}
	s.Transactions = len(entries)
	s.MeanBalance = balances.mean()
	s.MinBalance, s.MaxBalance = balances.min, balances.max
	if len(entries) > 0 {
		s.CurrentBalance = entries[len(entries)-1].Balance
	}
	return s
}

func typeStatistics(entries []BalanceEntry) []TypeStatistics {
	var stats []TypeStatistics
	index := make(map[string]int)
	amounts := make(map[string]decimal.Decimal)
	for _, e := range entries {
		tx := e.Transaction
		i, ok := index[tx.Type]
		if !ok {
			i = len(stats)
			index[tx.Type] = i
			stats = append(stats, TypeStatistics{Type: tx.Type})
		}
		s := &stats[i]
		s.Transactions++
		switch tx.Side {
		case Credit:
			s.TotalCredits = s.TotalCredits.Add(tx.Amount)
		case Debit:
			s.TotalDebits = s.TotalDebits.Add(tx.Amount)
		}
		amounts[tx.Type] = amounts[tx.Type].Add(tx.Amount)
	}
	for i := range stats {
		stats[i].MeanAmount = mean(amounts[stats[i].Type], stats[i].Transactions)
	}
	return stats
}

// Breakdown returns the statistics of each calendar period the report's
// transactions were booked in, chronologically. A transaction belongs to the
// period of its booking date, in the zone it was booked in.
func (r *BalanceReport) Breakdown(period date.Period) []PeriodStatistics {
	return breakdown(r.Entries, period)
}

func breakdown(entries []BalanceEntry, period date.Period) []PeriodStatistics {
	type group struct {
		rng      date.Range
		stats    PeriodStatistics
		balances balanceRange
	}
	var groups []*group
	index := make(map[date.Range]*group)
	var g *group
	for _, e := range entries {
		day := date.Of(e.Timestamp)
		if g == nil || !g.rng.Contains(day) {
			rng := date.NewRange(day, period)
			if g = index[rng]; g == nil {
				g = &group{rng: rng, stats: PeriodStatistics{Period: rng.Identifier()}}
				index[rng] = g
				groups = append(groups, g)
			}
		}
		g.stats.NetChange = g.stats.NetChange.Add(e.Transaction.SignedAmount())
		g.stats.Transactions++
		g.balances.add(e.Balance)
	}
	// Entries are sorted by instant, mixed offsets can book a later entry on an earlier day.
	slices.SortStableFunc(groups, func(a, b *group) int { return a.rng.From.Compare(b.rng.From) })

	stats := make([]PeriodStatistics, 0, len(groups))
	for _, g := range groups {
		s := g.stats
		s.NetChange = s.NetChange.Round(statisticsPlaces)
		s.MeanBalance = g.balances.mean()
		s.MinBalance = g.balances.min.Round(statisticsPlaces)
		s.MaxBalance = g.balances.max.Round(statisticsPlaces)
		stats = append(stats, s)
	}
	return stats
}
