package wrapped

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/etnz/wrapped/date"
	"github.com/shopspring/decimal"
)

// UserSummary is the per-user reduction of a trade ledger.
type UserSummary struct {
	User              string          `json:"userId"`
	FirstTrade        time.Time       `json:"firstTrade"`
	TotalTrades       int             `json:"totalTrades"`
	Volume            decimal.Decimal `json:"volume"`
	LargestTrade      decimal.Decimal `json:"largestTrade"`
	DistinctCountries int             `json:"distinctCountries"`
	LongestStreak     int             `json:"longestStreak"`
}

// Population is the reference population of a trade ledger: every user's
// summary, and each summary column as a Distribution.
//
// A Population is immutable once built.
type Population struct {
	source    string
	summaries map[string]UserSummary
	users     []string

	FirstTrades       Distribution[time.Time]
	TotalTrades       Distribution[decimal.Decimal]
	Volumes           Distribution[decimal.Decimal]
	LargestTrades     Distribution[decimal.Decimal]
	DistinctCountries Distribution[decimal.Decimal]
	LongestStreaks    Distribution[decimal.Decimal]

	// BusiestDay is the day with the most trades across the whole ledger,
	// the earliest one in case of a tie.
	BusiestDay date.Date
	// BusiestDayTrades is the number of trades on BusiestDay.
	BusiestDayTrades int
	// Year is the year of the latest trade of the ledger.
	Year int
}

// userAccumulator reduces one user's trades to a UserSummary.
type userAccumulator struct {
	summary   UserSummary
	countries map[string]struct{}
	days      map[date.Date]struct{}
}

func newUserAccumulator(user string) *userAccumulator {
	return &userAccumulator{
		summary:   UserSummary{User: user},
		countries: make(map[string]struct{}),
		days:      make(map[date.Date]struct{}),
	}
}

func (a *userAccumulator) add(t Trade) {
	s := &a.summary
	value := t.Value()
	if s.TotalTrades == 0 || t.ExecutedAt.Before(s.FirstTrade) {
		s.FirstTrade = t.ExecutedAt
	}
	if s.TotalTrades == 0 || value.GreaterThan(s.LargestTrade) {
		s.LargestTrade = value
	}
	s.TotalTrades++
	s.Volume = s.Volume.Add(value)
	a.countries[t.Country()] = struct{}{}
	a.days[t.Day()] = struct{}{}
}

func (a *userAccumulator) result() UserSummary {
	s := a.summary
	s.DistinctCountries = len(a.countries)
	s.LongestStreak = LongestStreak(slices.Collect(maps.Keys(a.days)))
	return s
}

// NewPopulation aggregates the whole ledger in a single pass.
//
// Prefer PopulationCache.Population that computes it only once per ledger source.
func NewPopulation(l *TradeLedger) *Population {
	accumulators := make(map[string]*userAccumulator)
	daily := make(map[date.Date]int)
	var latest time.Time
	for t := range l.Trades() {
		acc, ok := accumulators[t.User]
		if !ok {
			acc = newUserAccumulator(t.User)
			accumulators[t.User] = acc
		}
		acc.add(t)
		daily[t.Day()]++
		if t.ExecutedAt.After(latest) {
			latest = t.ExecutedAt
		}
	}

	p := &Population{
		source:    l.Source(),
		summaries: make(map[string]UserSummary, len(accumulators)),
		Year:      latest.Year(),
	}
	var firsts []time.Time
	var totals, volumes, largest, countries, streaks []decimal.Decimal
	for user, acc := range accumulators {
		s := acc.result()
		p.summaries[user] = s
		p.users = append(p.users, user)
		firsts = append(firsts, s.FirstTrade)
		totals = append(totals, decimal.NewFromInt(int64(s.TotalTrades)))
		volumes = append(volumes, s.Volume)
		largest = append(largest, s.LargestTrade)
		countries = append(countries, decimal.NewFromInt(int64(s.DistinctCountries)))
		streaks = append(streaks, decimal.NewFromInt(int64(s.LongestStreak)))
	}
	slices.Sort(p.users)
	p.FirstTrades = NewDistribution(firsts, time.Time.Compare)
	p.TotalTrades = decimalDistribution(totals)
	p.Volumes = decimalDistribution(volumes)
	p.LargestTrades = decimalDistribution(largest)
	p.DistinctCountries = decimalDistribution(countries)
	p.LongestStreaks = decimalDistribution(streaks)

	for day, count := range daily {
		if count > p.BusiestDayTrades || (count == p.BusiestDayTrades && day.Before(p.BusiestDay)) {
			p.BusiestDay, p.BusiestDayTrades = day, count
		}
	}
	return p
}

// Source returns the source of the ledger this population was computed from.
func (p *Population) Source() string { return p.source }

// Len returns the number of users.
func (p *Population) Len() int { return len(p.users) }

// Users returns the sorted list of users.
func (p *Population) Users() []string { return slices.Clone(p.users) }

// Summary returns the user's summary or ErrUserNotFound.
func (p *Population) Summary(user string) (UserSummary, error) {
	s, ok := p.summaries[user]
	if !ok {
		return UserSummary{}, fmt.Errorf("user %q in %q: %w", user, p.source, ErrUserNotFound)
	}
	return s, nil
}

// LongestStreak returns the longest run of consecutive calendar days in days.
//
// days may be in any order and contain duplicates. A gap of exactly one day
// continues a run, any other gap starts a new one. No day means no streak.
func LongestStreak(days []date.Date) int {
	if len(days) == 0 {
		return 0
	}
	days = slices.Clone(days)
	slices.SortFunc(days, date.Date.Compare)
	days = slices.Compact(days)

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].DaysUntil(days[i]) == 1 {
			current++
		} else {
			longest = max(longest, current)
			current = 1
		}
	}
	return max(longest, current)
}
