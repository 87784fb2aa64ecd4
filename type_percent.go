package wrapped

import "fmt"

// Percent is a share of a population, in the 0-100 range.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Complement returns 100-p, the share of the population at or above the value.
func (p Percent) Complement() Percent { return 100 - p }

// String returns the percent with no decimal, as it is used in narratives.
func (p Percent) String() string {
	return fmt.Sprintf("%.0f%%", float64(p))
}
