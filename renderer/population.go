package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/wrapped"
)

// PopulationMarkdown renders the users of a population as a markdown table,
// largest volume first. A positive limit keeps only the first users.
func PopulationMarkdown(p *wrapped.Population, currency string, limit int) string {
	var summaries []wrapped.UserSummary
	for _, user := range p.Users() {
		s, err := p.Summary(user)
		if err != nil {
			continue
		}
		summaries = append(summaries, s)
	}
	slices.SortStableFunc(summaries, func(a, b wrapped.UserSummary) int {
		return b.Volume.Cmp(a.Volume)
	})
	if limit > 0 && limit < len(summaries) {
		summaries = summaries[:limit]
	}

	r := &tableRenderer{Builder: &strings.Builder{}}
	r.Printf("# Traders of %d\n\n", p.Year)
	r.Printf("%d traders, busiest day %s with %d trades.\n\n", p.Len(), p.BusiestDay, p.BusiestDayTrades)
	r.Printf("| User | First Trade | Trades | Volume | Largest Trade | Countries | Streak | Persona |\n")
	r.Printf("|:---|:---|---:|---:|---:|---:|---:|:---|\n")
	for _, s := range summaries {
		r.Printf("| %s | %s | %d | %s | %s | %d | %d | %s |\n",
			s.User,
			s.FirstTrade.Format("2006-01-02 15:04"),
			s.TotalTrades,
			wrapped.M(s.Volume, currency).Whole(),
			wrapped.M(s.LargestTrade, currency).Whole(),
			s.DistinctCountries,
			s.LongestStreak,
			wrapped.ClassifyPersona(s, p),
		)
	}
	return r.String()
}

// tableRenderer writes markdown to a strings.Builder.
type tableRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *tableRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}
