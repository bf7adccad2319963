package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
// An empty matrix has no columns and a nil Values.
type CorrMatrix struct {
	Columns []string
	Values  *mat.SymDense
}

// Empty reports whether the matrix has no columns.
func (m *CorrMatrix) Empty() bool { return m == nil || len(m.Columns) == 0 }

// At returns the coefficient for columns i and j; NaN when undefined.
func (m *CorrMatrix) At(i, j int) float64 { return m.Values.At(i, j) }

// CorrPair is one unordered pair of columns with its coefficient.
type CorrPair struct {
	A, B string
	R    float64
}

// Correlation computes pairwise Pearson coefficients using, for each pair, only
// the rows where both columns hold a value. The diagonal is 1. Pairs with fewer
// than two complete rows or zero variance are NaN. Fewer than two numeric
// columns, or no rows, give an empty matrix.
func Correlation(t *Table) *CorrMatrix {
	num := t.NumericColumns()
	if len(num) < 2 || t.Rows() == 0 {
		return &CorrMatrix{}
	}
	n := len(num)
	names := make([]string, n)
	for i, c := range num {
		names[i] = c.Name()
	}
	sym := mat.NewSymDense(n, nil)
	for a := 0; a < n; a++ {
		sym.SetSym(a, a, 1)
		for b := a + 1; b < n; b++ {
			sym.SetSym(a, b, pairwisePearson(num[a], num[b]))
		}
	}
	return &CorrMatrix{Columns: names, Values: sym}
}

func pairwisePearson(x, y NumericColumn) float64 {
	xs := make([]float64, 0, x.Len())
	ys := make([]float64, 0, y.Len())
	for i := 0; i < x.Len(); i++ {
		if x.IsMissing(i) || y.IsMissing(i) {
			continue
		}
		xs = append(xs, x.Float(i))
		ys = append(ys, y.Float(i))
	}
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// TopCorrelations lists each unordered pair once (i<j), keeps pairs with
// |r| >= minAbs, sorts by descending |r| keeping enumeration order on ties,
// and truncates to k. Undefined (NaN) coefficients are never listed.
func TopCorrelations(m *CorrMatrix, k int, minAbs float64) []CorrPair {
	if m.Empty() || k <= 0 {
		return nil
	}
	var pairs []CorrPair
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := m.At(i, j)
			if math.Abs(r) >= minAbs {
				pairs = append(pairs, CorrPair{A: m.Columns[i], B: m.Columns[j], R: r})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	if len(pairs) > k {
		pairs = pairs[:k]
	}
	return pairs
}
