package analysis

import (
	"math"
	"sort"
)

// quantiles returns the qs-th quantiles of vals using linear interpolation
// between closest ranks (position q*(n-1)). vals is not modified; an empty
// input yields NaN for every q.
func quantiles(vals []float64, qs ...float64) []float64 {
	out := make([]float64, len(qs))
	if len(vals) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	for i, q := range qs {
		out[i] = quantile(sorted, q)
	}
	return out
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	// lerp in this form is exact when both ranks hold the same value
	return sorted[lo] + (sorted[hi]-sorted[lo])*w
}
