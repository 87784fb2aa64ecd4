package date

import (
	"fmt"
	"strings"
)

// Period is a calendar period used to group dates.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var periodNames = [...]string{"daily", "weekly", "monthly", "quarterly", "yearly"}

func (p Period) String() string {
	if p < Daily || p > Yearly {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periodNames[p]
}

// ParsePeriod parses a period name, either "monthly" or "month", case insensitive.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(s)
	for p, name := range periodNames {
		if s == name || s+"ly" == name || (s == "day" && name == "daily") {
			return Period(p), nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q", s)
}
