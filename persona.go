package wrapped

import "github.com/shopspring/decimal"

// Persona is the single label summarizing a trader's year.
type Persona struct {
	Emoji string `json:"emoji"`
	Name  string `json:"name"`
}

func (p Persona) String() string { return p.Emoji + " " + p.Name }

var (
	Globetrotter = Persona{"🌍", "Globetrotter"}
	Whale        = Persona{"🐳", "Whale"}
	DayTripper   = Persona{"⚡", "Day-tripper"}
	Sniper       = Persona{"🎯", "Sniper"}
	Explorer     = Persona{"📈", "Explorer"}
)

// personaRule assigns persona to the users matching it.
type personaRule struct {
	persona Persona
	match   func(s UserSummary, p *Population) bool
}

// personaRules are evaluated in order, the first match wins.
var personaRules = []personaRule{
	{Globetrotter, func(s UserSummary, p *Population) bool {
		return atLeast(decimal.NewFromInt(int64(s.DistinctCountries)), p.DistinctCountries, 0.9)
	}},
	{Whale, func(s UserSummary, p *Population) bool {
		return atLeast(s.Volume, p.Volumes, 0.9)
	}},
	{DayTripper, func(s UserSummary, p *Population) bool {
		return atLeast(decimal.NewFromInt(int64(s.TotalTrades)), p.TotalTrades, 0.9)
	}},
	{Sniper, func(s UserSummary, p *Population) bool {
		return atMost(decimal.NewFromInt(int64(s.TotalTrades)), p.TotalTrades, 0.25) &&
			atLeast(s.LargestTrade, p.LargestTrades, 0.75)
	}},
}

// ClassifyPersona returns the persona of the first rule s matches, Explorer if none does.
func ClassifyPersona(s UserSummary, p *Population) Persona {
	for _, rule := range personaRules {
		if rule.match(s, p) {
			return rule.persona
		}
	}
	return Explorer
}

func atLeast(v decimal.Decimal, d Distribution[decimal.Decimal], q float64) bool {
	return v.GreaterThanOrEqual(Quantile(d, q))
}

func atMost(v decimal.Decimal, d Distribution[decimal.Decimal], q float64) bool {
	return v.LessThanOrEqual(Quantile(d, q))
}
