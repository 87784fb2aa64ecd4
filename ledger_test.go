package wrapped

import (
	"errors"
	"testing"
	"time"
)

func TestNewTradeLedger(t *testing.T) {
	if _, err := NewTradeLedger("empty", nil); !errors.Is(err, ErrEmptyLedger) {
		t.Errorf("NewTradeLedger(nil) error = %v, want %v", err, ErrEmptyLedger)
	}

	input := sampleTrades()
	l, err := NewTradeLedger("sample", input)
	if err != nil {
		t.Fatal(err)
	}
	if input[0].User != "alice" {
		t.Error("NewTradeLedger() modified its input")
	}
	var previous time.Time
	for tr := range l.Trades() {
		if tr.ExecutedAt.Before(previous) {
			t.Errorf("trades are not chronological: %v after %v", tr.ExecutedAt, previous)
		}
		previous = tr.ExecutedAt
	}
	trades, err := l.UserTrades("dave")
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 3 || trades[0].ExecutedAt.Year() != 2023 {
		t.Errorf("UserTrades(dave) = %d trades starting %v", len(trades), trades[0].ExecutedAt)
	}
	if _, err := l.UserTrades("mallory"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UserTrades(unknown) error = %v, want %v", err, ErrUserNotFound)
	}
	if l.HasUser("mallory") || !l.HasUser("bob") {
		t.Error("HasUser() is wrong")
	}

	if l.Currency() != DefaultCurrency {
		t.Errorf("Currency() = %q, want %q", l.Currency(), DefaultCurrency)
	}
	l.SetCurrency("")
	if l.Currency() != DefaultCurrency {
		t.Error("SetCurrency(\"\") should keep the currency")
	}
	l.SetCurrency("USD")
	if got := l.money(dec(5)).String(); got != "$5.00" {
		t.Errorf("money() = %q, want $5.00", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	testCases := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-15T09:30:00Z", time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-03-15T09:30:00.123Z", time.Date(2024, 3, 15, 9, 30, 0, 123000000, time.UTC)},
		{"2024-03-15 09:30:00", time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-03-15T09:30:00", time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-03-15T09:30:00+02:00", time.Date(2024, 3, 15, 7, 30, 0, 0, time.UTC)},
		{" 2024-03-15 ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range testCases {
		got, err := ParseTimestamp(tc.input)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) error = %v", tc.input, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
	if _, err := ParseTimestamp("15/03/2024"); err == nil {
		t.Error("ParseTimestamp() should reject unknown layouts")
	}
}
