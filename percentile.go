package wrapped

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Distribution is a reference population of values, kept sorted.
type Distribution[T any] struct {
	sorted []T
	cmp    func(a, b T) int
}

// NewDistribution creates a distribution from values ordered by cmp. values is not modified.
func NewDistribution[T any](values []T, cmp func(a, b T) int) Distribution[T] {
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, cmp)
	return Distribution[T]{sorted: sorted, cmp: cmp}
}

// Len returns the size of the population.
func (d Distribution[T]) Len() int { return len(d.sorted) }

// Rank returns the share of the population strictly below v.
//
// Values equal to v are not counted: the minimum of the distribution ranks 0,
// and the maximum ranks 100×(n-1)/n when it is unique.
// Rank panics on an empty distribution.
func (d Distribution[T]) Rank(v T) Percent {
	if len(d.sorted) == 0 {
		panic("percentile rank of an empty distribution")
	}
	// BinarySearchFunc returns the first position where an element is >= v,
	// that is the count of elements strictly below v.
	below, _ := slices.BinarySearchFunc(d.sorted, v, d.cmp)
	return Percent(100 * float64(below) / float64(len(d.sorted)))
}

// Quantile returns the q-quantile (q in [0,1]) of a decimal distribution,
// interpolating linearly between the two closest ranks.
//
// This is the "linear" method of numpy and pandas: position h = (n-1)q, and
// the result is x[⌊h⌋] + (h-⌊h⌋)(x[⌊h⌋+1]-x[⌊h⌋]).
// Quantile panics on an empty distribution.
func Quantile(d Distribution[decimal.Decimal], q float64) decimal.Decimal {
	n := len(d.sorted)
	if n == 0 {
		panic("quantile of an empty distribution")
	}
	q = min(max(q, 0), 1)
	h := decimal.NewFromFloat(q).Mul(decimal.NewFromInt(int64(n - 1)))
	lo := h.Floor()
	i := int(lo.IntPart())
	if i >= n-1 {
		return d.sorted[n-1]
	}
	frac := h.Sub(lo)
	return d.sorted[i].Add(frac.Mul(d.sorted[i+1].Sub(d.sorted[i])))
}

// decimalDistribution is a shortcut for distributions of decimals.
func decimalDistribution(values []decimal.Decimal) Distribution[decimal.Decimal] {
	return NewDistribution(values, decimal.Decimal.Cmp)
}
