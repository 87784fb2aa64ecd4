package wrapped

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// at parses a UTC timestamp "2006-01-02 15:04" for tests.
func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

// tr is a helper for test to create a trade from constants.
func tr(user, when, isin string, dir Direction, size, price, fee float64, typ TradeType) Trade {
	return Trade{
		User:       user,
		ExecutedAt: at(when),
		ISIN:       isin,
		Direction:  dir,
		Size:       decimal.NewFromFloat(size),
		Price:      decimal.NewFromFloat(price),
		Fee:        decimal.NewFromFloat(fee),
		Type:       typ,
	}
}

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// dec is a helper for test to create decimals from const
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// sampleTrades is a small community of four traders:
//   - alice trades often, in three countries, and holds the community's second largest order;
//   - bob trades twice, once on the busiest day;
//   - carol trades rarely but big;
//   - dave started in 2023 and trades after hours.
func sampleTrades() []Trade {
	return []Trade{
		tr("alice", "2024-01-02 08:15", "DE0001", Buy, 10, 100, 1, Regular),
		tr("alice", "2024-01-03 10:00", "US0002", Buy, 5, 200, 1, Regular),
		tr("alice", "2024-01-04 19:30", "DE0001", Sell, 4, 110, 1, Regular),
		tr("alice", "2024-03-15 08:45", "FR0003", Buy, 1, 3000, 0, Bonus),
		tr("alice", "2024-03-15 12:00", "US0002", Buy, 2, 210, 0, Bonus),
		tr("bob", "2024-02-10 14:00", "US0002", Buy, 1, 50, 2, Regular),
		tr("bob", "2024-03-15 15:00", "US0002", Sell, 1, 60, 2, Regular),
		tr("carol", "2024-03-15 09:30", "GB0004", Buy, 100, 40, 5, Regular),
		tr("carol", "2024-03-16 10:00", "GB0004", Buy, 1, 10, 5, Regular),
		tr("dave", "2023-12-31 20:00", "US0005", Buy, 3, 5, 1, Regular),
		tr("dave", "2024-05-01 21:00", "US0005", Sell, 3, 6, 1, Regular),
		tr("dave", "2024-05-02 22:00", "US0005", Buy, 1, 7, 1, Regular),
	}
}

func newSampleLedger(t *testing.T) *TradeLedger {
	t.Helper()
	l, err := NewTradeLedger("sample", sampleTrades())
	if err != nil {
		t.Fatalf("NewTradeLedger() error = %v", err)
	}
	return l
}

// decimalComparer lets cmp compare decimals by value.
var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// bk is a helper for test to create a banking transaction from constants.
func bk(user, when string, amount float64, side Side, typ string) BankingTransaction {
	return BankingTransaction{
		User:        user,
		BookingDate: at(when),
		Amount:      decimal.NewFromFloat(amount),
		Side:        side,
		Type:        typ,
		Currency:    "EUR",
	}
}
