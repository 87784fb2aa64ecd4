package wrapped

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InsightKind identifies an insight. Kinds are numbered in the order insights
// are generated.
type InsightKind int

const (
	OpeningTrade InsightKind = iota
	YearInNumbers
	TradingRhythm
	TopSecurities
	WorldTour
	MegaTrade
	BuySellMood
	TradingHours
	Streak
	BonusBonanza
	RecordDay
	PersonaReveal
	LookingAhead

	// InsightCount is the number of insights of a Wrapped.
	InsightCount = int(LookingAhead) + 1
)

var insightKindNames = [InsightCount]string{
	"opening-trade", "year-in-numbers", "trading-rhythm", "top-securities", "world-tour", "mega-trade",
	"buy-sell-mood", "trading-hours", "streak", "bonus-bonanza", "record-day", "persona", "looking-ahead",
}

func (k InsightKind) String() string {
	if k < 0 || int(k) >= InsightCount {
		return fmt.Sprintf("insight(%d)", int(k))
	}
	return insightKindNames[k]
}

func (k InsightKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Insight is one narrative sentence of a Wrapped.
type Insight struct {
	Kind InsightKind `json:"kind"`
	Text string      `json:"text"`
}

// Wrapped is a user's year in trades.
type Wrapped struct {
	User     string                `json:"userId"`
	Year     int                   `json:"year"`
	Persona  Persona               `json:"persona"`
	Insights [InsightCount]Insight `json:"insights"`
}

// Strings returns the insights' text, in order.
func (w *Wrapped) Strings() []string {
	texts := make([]string, 0, InsightCount)
	for _, in := range w.Insights {
		texts = append(texts, in.Text)
	}
	return texts
}

// Trading hours labels.
const (
	EarlyBird = "early-bird"
	NightOwl  = "night-owl"
	PrimeTime = "prime-time"
)

const (
	marketOpenHour  = 9  // trades before are pre-market
	marketCloseHour = 18 // trades at or after are after-hours
)

// GenerateWrapped computes the user's insights.
//
// p must be the population of l. It returns ErrUserNotFound if the user has no
// trade in l. GenerateWrapped does not modify its inputs, and the same inputs
// always produce the same insights.
func GenerateWrapped(user string, p *Population, l *TradeLedger) (*Wrapped, error) {
	if p.Source() != l.Source() {
		return nil, fmt.Errorf("population of %q cannot rank ledger %q", p.Source(), l.Source())
	}
	trades, err := l.UserTrades(user)
	if err != nil {
		return nil, err
	}
	summary, err := p.Summary(user)
	if err != nil {
		return nil, err
	}

	g := &generator{l: l, p: p, trades: trades, summary: summary}
	w := &Wrapped{User: user, Year: p.Year}
	for k, gen := range []func() string{
		g.openingTrade,
		g.yearInNumbers,
		g.tradingRhythm,
		g.topSecurities,
		g.worldTour,
		g.megaTrade,
		g.buySellMood,
		g.tradingHours,
		g.streak,
		g.bonusBonanza,
		g.recordDay,
		g.persona,
		g.lookingAhead,
	} {
		w.Insights[k] = Insight{Kind: InsightKind(k), Text: gen()}
	}
	w.Persona = g.classified
	return w, nil
}

// generator holds what is needed to produce each insight of one user.
type generator struct {
	l          *TradeLedger
	p          *Population
	trades     []Trade // the user's trades, chronological
	summary    UserSummary
	classified Persona
}

func (g *generator) openingTrade() string {
	first := g.trades[0]
	return fmt.Sprintf("Opened the year on %s with a %s of %s worth %s – earlier than %s of traders.",
		first.ExecutedAt.Format("02 Jan 2006 at 15:04"),
		strings.ToLower(string(first.Direction)),
		first.ISIN,
		g.l.money(first.Value()).Whole(),
		g.p.FirstTrades.Rank(g.summary.FirstTrade),
	)
}

func (g *generator) yearInNumbers() string {
	fees := decimal.Zero
	for _, t := range g.trades {
		fees = fees.Add(t.Fee)
	}
	activity := g.p.TotalTrades.Rank(decimal.NewFromInt(int64(g.summary.TotalTrades))).Complement()
	return fmt.Sprintf("%d trades, moving %s and paying %s in fees – top %s for activity.",
		g.summary.TotalTrades,
		g.l.money(g.summary.Volume).Whole(),
		g.l.money(fees),
		activity,
	)
}

func (g *generator) tradingRhythm() string {
	var counts [13]int // indexed by time.Month
	for _, t := range g.trades {
		counts[t.ExecutedAt.Month()]++
	}
	best := time.January
	for m := time.February; m <= time.December; m++ {
		if counts[m] > counts[best] {
			best = m
		}
	}
	return fmt.Sprintf("Most active in %s: %d trades that month.", best, counts[best])
}

func (g *generator) topSecurities() string {
	type security struct {
		isin  string
		value decimal.Decimal
	}
	index := make(map[string]int)
	var securities []security
	for _, t := range g.trades {
		i, ok := index[t.ISIN]
		if !ok {
			i = len(securities)
			index[t.ISIN] = i
			securities = append(securities, security{isin: t.ISIN})
		}
		securities[i].value = securities[i].value.Add(t.Value())
	}
	slices.SortFunc(securities, func(a, b security) int {
		if c := b.value.Cmp(a.value); c != 0 {
			return c
		}
		return cmp.Compare(a.isin, b.isin)
	})
	isins := make([]string, 0, 5)
	for _, s := range securities[:min(5, len(securities))] {
		isins = append(isins, s.isin)
	}
	return fmt.Sprintf("Top 5 tickets by volume: %s.", strings.Join(isins, ", "))
}

func (g *generator) worldTour() string {
	countries := g.summary.DistinctCountries
	return fmt.Sprintf("Traded across %d countries – more global than %s of the community.",
		countries, g.p.DistinctCountries.Rank(decimal.NewFromInt(int64(countries))))
}

func (g *generator) megaTrade() string {
	largest := g.trades[0]
	for _, t := range g.trades[1:] {
		if t.Value().GreaterThan(largest.Value()) {
			largest = t
		}
	}
	// Ranked against every user's largest trade, not against every trade.
	return fmt.Sprintf("Largest single order: %s on %s – bigger than %s of all trades.",
		g.l.money(largest.Value()).Whole(), largest.ISIN, g.p.LargestTrades.Rank(largest.Value()))
}

func (g *generator) buySellMood() string {
	buys := 0
	for _, t := range g.trades {
		if t.IsBuy() {
			buys++
		}
	}
	return fmt.Sprintf("%s of your orders were buys.", Percent(100*float64(buys)/float64(len(g.trades))))
}

// TradingHoursLabel classifies a trader by the share of trades executed before 9:00 or after 18:00.
func TradingHoursLabel(early, late, total int) string {
	switch {
	case 5*early > 2*total: // early/total > 0.4
		return EarlyBird
	case 5*late > 2*total:
		return NightOwl
	default:
		return PrimeTime
	}
}

func (g *generator) tradingHours() string {
	var early, late int
	for _, t := range g.trades {
		switch h := t.ExecutedAt.Hour(); {
		case h < marketOpenHour:
			early++
		case h >= marketCloseHour:
			late++
		}
	}
	label := TradingHoursLabel(early, late, len(g.trades))
	article := "a"
	if label == EarlyBird {
		article = "an"
	}
	return fmt.Sprintf("You're %s %s: %d pre-market and %d after-hours trades.", article, label, early, late)
}

func (g *generator) streak() string {
	return fmt.Sprintf("Longest trading streak: %d consecutive days.", g.summary.LongestStreak)
}

func (g *generator) bonusBonanza() string {
	bonus, regular := 0, 0
	regularFees := decimal.Zero
	for _, t := range g.trades {
		switch t.Type {
		case Bonus:
			bonus++
		case Regular:
			regular++
			regularFees = regularFees.Add(t.Fee)
		}
	}
	// Without regular trades there is no fee to compare with.
	avgFee := decimal.Zero
	if regular > 0 {
		avgFee = regularFees.Div(decimal.NewFromInt(int64(regular)))
	}
	saved := avgFee.Mul(decimal.NewFromInt(int64(bonus)))
	return fmt.Sprintf("%d zero-fee BONUS trades saved roughly %s.", bonus, g.l.money(saved))
}

func (g *generator) recordDay() string {
	day := g.p.BusiestDay
	for _, t := range g.trades {
		if t.Day() == day {
			return fmt.Sprintf("You joined the action on the busiest day (%s)!", day)
		}
	}
	return fmt.Sprintf("You sat out the platform's busiest day (%s).", day)
}

func (g *generator) persona() string {
	g.classified = ClassifyPersona(g.summary, g.p)
	return fmt.Sprintf("Your %d persona: %s.", g.p.Year, g.classified)
}

func (g *generator) lookingAhead() string {
	net := decimal.Zero
	for _, t := range g.trades {
		if t.IsBuy() {
			net = net.Add(t.Value())
		} else {
			net = net.Sub(t.Value())
		}
	}
	direction := "inflow"
	if net.IsNegative() {
		direction = "outflow"
	}
	return fmt.Sprintf("Net %s of %s – time to set a fresh goal for %d!",
		direction, g.l.money(net.Abs()).Whole(), g.p.Year+1)
}
