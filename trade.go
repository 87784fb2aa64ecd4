package wrapped

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/wrapped/date"
	"github.com/shopspring/decimal"
)

// Direction is the side of an executed order.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// ParseDirection parses a direction, case insensitive.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case Buy, Sell:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// TradeType is the category of an execution. Types other than the well known
// ones are kept verbatim.
type TradeType string

const (
	Regular TradeType = "REGULAR"
	Bonus   TradeType = "BONUS"
)

// Trade is one executed order.
type Trade struct {
	User       string          `json:"userId"`
	ExecutedAt time.Time       `json:"executedAt"`
	ISIN       string          `json:"ISIN"`
	Direction  Direction       `json:"direction"`
	Size       decimal.Decimal `json:"executionSize"`
	Price      decimal.Decimal `json:"executionPrice"`
	Fee        decimal.Decimal `json:"executionFee"`
	Type       TradeType       `json:"type"`
}

// Value returns size times price.
//
// The sign follows the dataset's convention, it is not derived from the direction.
func (t Trade) Value() decimal.Decimal { return t.Size.Mul(t.Price) }

// IsBuy reports whether the order is a buy.
func (t Trade) IsBuy() bool { return t.Direction == Buy }

// Country returns the two letters country prefix of the ISIN.
func (t Trade) Country() string {
	if len(t.ISIN) < 2 {
		return t.ISIN
	}
	return t.ISIN[:2]
}

// Day returns the calendar day of the execution.
func (t Trade) Day() date.Date { return date.Of(t.ExecutedAt) }

// timestampFormats are tried in order to parse execution and booking timestamps.
var timestampFormats = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	date.DateFormat,
}

// ParseTimestamp parses the timestamp formats found in brokerage exports.
// Timestamps without offset are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
