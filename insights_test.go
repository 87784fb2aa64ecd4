package wrapped

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateWrapped(t *testing.T) {
	l := newSampleLedger(t)
	p := NewPopulation(l)

	testCases := []struct {
		user    string
		persona Persona
		want    []string
	}{
		{
			user:    "alice",
			persona: Globetrotter,
			want: []string{
				"Opened the year on 02 Jan 2024 at 08:15 with a buy of DE0001 worth €1,000 – earlier than 25% of traders.",
				"5 trades, moving €5,860 and paying €3.00 in fees – top 25% for activity.",
				"Most active in January: 3 trades that month.",
				"Top 5 tickets by volume: FR0003, DE0001, US0002.",
				"Traded across 3 countries – more global than 75% of the community.",
				"Largest single order: €3,000 on FR0003 – bigger than 50% of all trades.",
				"80% of your orders were buys.",
				"You're a prime-time: 2 pre-market and 1 after-hours trades.",
				"Longest trading streak: 3 consecutive days.",
				"2 zero-fee BONUS trades saved roughly €2.00.",
				"You joined the action on the busiest day (2024-03-15)!",
				"Your 2024 persona: 🌍 Globetrotter.",
				"Net inflow of €4,980 – time to set a fresh goal for 2025!",
			},
		},
		{
			user:    "dave",
			persona: Explorer,
			want: []string{
				"Opened the year on 31 Dec 2023 at 20:00 with a buy of US0005 worth €15 – earlier than 0% of traders.",
				"3 trades, moving €40 and paying €3.00 in fees – top 50% for activity.",
				"Most active in May: 2 trades that month.",
				"Top 5 tickets by volume: US0005.",
				"Traded across 1 countries – more global than 0% of the community.",
				"Largest single order: €18 on US0005 – bigger than 0% of all trades.",
				"67% of your orders were buys.",
				"You're a night-owl: 0 pre-market and 3 after-hours trades.",
				"Longest trading streak: 2 consecutive days.",
				"0 zero-fee BONUS trades saved roughly €0.00.",
				"You sat out the platform's busiest day (2024-03-15).",
				"Your 2024 persona: 📈 Explorer.",
				"Net inflow of €4 – time to set a fresh goal for 2025!",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.user, func(t *testing.T) {
			w, err := GenerateWrapped(tc.user, p, l)
			if err != nil {
				t.Fatalf("GenerateWrapped() error = %v", err)
			}
			if diff := cmp.Diff(tc.want, w.Strings()); diff != "" {
				t.Errorf("GenerateWrapped() mismatch (-want +got):\n%s", diff)
			}
			if w.Persona != tc.persona {
				t.Errorf("Persona = %v, want %v", w.Persona, tc.persona)
			}
			for i, in := range w.Insights {
				if in.Kind != InsightKind(i) {
					t.Errorf("Insights[%d].Kind = %v", i, in.Kind)
				}
			}
		})
	}
}

func TestGenerateWrapped_Idempotent(t *testing.T) {
	l := newSampleLedger(t)
	p := NewPopulation(l)
	for _, user := range l.Users() {
		first, err := GenerateWrapped(user, p, l)
		if err != nil {
			t.Fatal(err)
		}
		second, err := GenerateWrapped(user, p, l)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first.Strings(), second.Strings()); diff != "" {
			t.Errorf("%s: second generation differs (-first +second):\n%s", user, diff)
		}
	}
}

func TestGenerateWrapped_Errors(t *testing.T) {
	l := newSampleLedger(t)
	p := NewPopulation(l)
	if _, err := GenerateWrapped("mallory", p, l); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GenerateWrapped(unknown) error = %v, want %v", err, ErrUserNotFound)
	}

	other, err := NewTradeLedger("other", sampleTrades())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := GenerateWrapped("alice", p, other); err == nil {
		t.Error("GenerateWrapped() with the population of another ledger should fail")
	}
}

func TestClassifyPersona(t *testing.T) {
	p := NewPopulation(newSampleLedger(t))
	want := map[string]Persona{
		"alice": Globetrotter, // also a whale, but the first rule wins
		"bob":   Explorer,
		"carol": Sniper,
		"dave":  Explorer,
	}
	for user, persona := range want {
		s, err := p.Summary(user)
		if err != nil {
			t.Fatal(err)
		}
		if got := ClassifyPersona(s, p); got != persona {
			t.Errorf("ClassifyPersona(%s) = %v, want %v", user, got, persona)
		}
	}
}

func TestTradingHoursLabel(t *testing.T) {
	testCases := []struct {
		early, late, total int
		want               string
	}{
		{3, 0, 5, EarlyBird},
		{2, 0, 5, PrimeTime}, // exactly 40% is not enough
		{0, 3, 5, NightOwl},
		{3, 3, 6, EarlyBird}, // both qualify, early wins
		{0, 0, 1, PrimeTime},
	}
	for _, tc := range testCases {
		if got := TradingHoursLabel(tc.early, tc.late, tc.total); got != tc.want {
			t.Errorf("TradingHoursLabel(%d, %d, %d) = %q, want %q", tc.early, tc.late, tc.total, got, tc.want)
		}
	}
}

func TestGenerateWrapped_EdgeCases(t *testing.T) {
	testCases := []struct {
		name   string
		trades []Trade
		kind   InsightKind
		want   string
	}{
		{
			name: "bonus without regular trades",
			trades: []Trade{
				tr("eve", "2024-04-01 10:00", "NL0001", Buy, 1, 10, 0, Bonus),
			},
			kind: BonusBonanza,
			want: "1 zero-fee BONUS trades saved roughly €0.00.",
		},
		{
			name: "only sells",
			trades: []Trade{
				tr("eve", "2024-04-01 10:00", "NL0001", Sell, 1, 10, 1, Regular),
				tr("eve", "2024-04-02 10:00", "NL0001", Sell, 2, 10, 1, Regular),
			},
			kind: BuySellMood,
			want: "0% of your orders were buys.",
		},
		{
			name: "net outflow",
			trades: []Trade{
				tr("eve", "2024-04-01 10:00", "NL0001", Buy, 1, 10, 1, Regular),
				tr("eve", "2024-04-02 10:00", "NL0001", Sell, 2, 30, 1, Regular),
			},
			kind: LookingAhead,
			want: "Net outflow of €50 – time to set a fresh goal for 2025!",
		},
		{
			name: "month tie goes to the earliest month",
			trades: []Trade{
				tr("eve", "2024-06-01 10:00", "NL0001", Buy, 1, 10, 1, Regular),
				tr("eve", "2024-02-01 10:00", "NL0001", Buy, 1, 10, 1, Regular),
			},
			kind: TradingRhythm,
			want: "Most active in February: 1 trades that month.",
		},
		{
			name: "securities tie sorted by ISIN",
			trades: []Trade{
				tr("eve", "2024-06-01 10:00", "US0002", Buy, 1, 10, 1, Regular),
				tr("eve", "2024-06-01 11:00", "CH0009", Buy, 1, 10, 1, Regular),
				tr("eve", "2024-06-01 12:00", "DE0001", Buy, 2, 10, 1, Regular),
			},
			kind: TopSecurities,
			want: "Top 5 tickets by volume: DE0001, CH0009, US0002.",
		},
		{
			name: "at most five securities",
			trades: []Trade{
				tr("eve", "2024-06-01 10:00", "AA0001", Buy, 1, 60, 1, Regular),
				tr("eve", "2024-06-01 10:01", "BB0001", Buy, 1, 50, 1, Regular),
				tr("eve", "2024-06-01 10:02", "CC0001", Buy, 1, 40, 1, Regular),
				tr("eve", "2024-06-01 10:03", "DD0001", Buy, 1, 30, 1, Regular),
				tr("eve", "2024-06-01 10:04", "EE0001", Buy, 1, 20, 1, Regular),
				tr("eve", "2024-06-01 10:05", "FF0001", Buy, 1, 10, 1, Regular),
			},
			kind: TopSecurities,
			want: "Top 5 tickets by volume: AA0001, BB0001, CC0001, DD0001, EE0001.",
		},
		{
			name: "early bird",
			trades: []Trade{
				tr("eve", "2024-06-01 07:00", "NL0001", Buy, 1, 10, 1, Regular),
				tr("eve", "2024-06-02 08:59", "NL0001", Buy, 1, 10, 1, Regular),
				tr("eve", "2024-06-03 18:00", "NL0001", Buy, 1, 10, 1, Regular),
			},
			kind: TradingHours,
			want: "You're an early-bird: 2 pre-market and 1 after-hours trades.",
		},
		{
			name: "single trader is a globetrotter",
			trades: []Trade{
				tr("eve", "2024-06-01 10:00", "NL0001", Buy, 1, 10, 1, Regular),
			},
			kind: PersonaReveal,
			want: "Your 2024 persona: 🌍 Globetrotter.",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := NewTradeLedger(tc.name, tc.trades)
			if err != nil {
				t.Fatal(err)
			}
			var cache PopulationCache
			w, err := cache.Wrapped(l, "eve")
			if err != nil {
				t.Fatalf("Wrapped() error = %v", err)
			}
			if len(w.Strings()) != InsightCount {
				t.Errorf("got %d insights, want %d", len(w.Strings()), InsightCount)
			}
			if got := w.Insights[tc.kind].Text; got != tc.want {
				t.Errorf("%v = %q, want %q", tc.kind, got, tc.want)
			}
		})
	}
}
