package analysis

import (
	"bytes"
	"math"

	"github.com/montanaflynn/stats"
)

// Summary is the per-run dataset summary written to summary.json.
// Outliers, OutlierMethod and OutlierParam are filled in by SetOutliers.
type Summary struct {
	Rows          int                `json:"rows"`
	Cols          int                `json:"cols"`
	Dtypes        ColumnMap[string]  `json:"dtypes"`
	NAPercent     ColumnMap[float64] `json:"na_percent"`
	Describe      Describe           `json:"describe"`
	Outliers      OutlierCounts      `json:"outliers"`
	OutlierMethod string             `json:"outlier_method"`
	OutlierParam  string             `json:"outlier_param"`
}

// ColumnStats holds the descriptive statistics of one column. Fields that do
// not apply to the column's kind are nil.
type ColumnStats struct {
	Count  int
	Unique *int
	Top    *string
	Freq   *int
	Mean   *float64
	Std    *float64
	Min    *float64
	Q1     *float64
	Median *float64
	Q3     *float64
	Max    *float64
}

// StatNames lists describe statistics in output order.
var StatNames = []string{"count", "unique", "top", "freq", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Value returns the named statistic, or nil when it does not apply.
func (s ColumnStats) Value(stat string) any {
	switch stat {
	case "count":
		return s.Count
	case "unique":
		return ptrAny(s.Unique)
	case "top":
		return ptrAny(s.Top)
	case "freq":
		return ptrAny(s.Freq)
	case "mean":
		return ptrAny(s.Mean)
	case "std":
		return ptrAny(s.Std)
	case "min":
		return ptrAny(s.Min)
	case "25%":
		return ptrAny(s.Q1)
	case "50%":
		return ptrAny(s.Median)
	case "75%":
		return ptrAny(s.Q3)
	case "max":
		return ptrAny(s.Max)
	}
	return nil
}

func ptrAny[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// Describe is the ragged statistics table: one ColumnStats per column.
type Describe struct {
	ColumnMap[ColumnStats]
}

// MarshalJSON emits statistic -> column -> value. Columns a statistic does not
// apply to are left out, and statistics no column has are omitted entirely.
func (d Describe) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, stat := range StatNames {
		var inner ColumnMap[any]
		for _, col := range d.keys {
			if v := d.vals[col].Value(stat); v != nil {
				inner.Set(col, v)
			}
		}
		if inner.Len() == 0 {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeMember(&buf, stat, inner); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Summarize computes counts, type labels, missing percentages and descriptive
// statistics for every column of t.
func Summarize(t *Table) *Summary {
	s := &Summary{Rows: t.Rows(), Cols: len(t.Columns)}
	for _, c := range t.Columns {
		s.Dtypes.Set(c.Name(), c.Kind().String())
		pct := 0.0
		if t.Rows() > 0 {
			pct = float64(c.Missing()) / float64(t.Rows()) * 100
		}
		s.NAPercent.Set(c.Name(), pct)
		s.Describe.Set(c.Name(), describeColumn(c))
	}
	return s
}

func describeColumn(c Column) ColumnStats {
	st := ColumnStats{Count: c.Len() - c.Missing()}
	if n, ok := AsNumeric(c); ok {
		vals := n.Values()
		if len(vals) == 0 {
			return st
		}
		mean, _ := stats.Mean(vals)
		std, _ := stats.StandardDeviationSample(vals)
		lo, _ := stats.Min(vals)
		hi, _ := stats.Max(vals)
		st.Mean = finite(mean)
		st.Std = finite(std)
		st.Min = finite(lo)
		st.Max = finite(hi)
		q := quantiles(vals, 0.25, 0.5, 0.75)
		st.Q1 = finite(q[0])
		st.Median = finite(q[1])
		st.Q3 = finite(q[2])
		return st
	}

	counts := map[string]int{}
	var order []string
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		v := c.Format(i)
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}
	unique := len(order)
	st.Unique = &unique
	if unique == 0 {
		return st
	}
	// ties go to the value seen first
	top := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[top] {
			top = v
		}
	}
	freq := counts[top]
	st.Top = &top
	st.Freq = &freq
	return st
}

// finite returns nil for NaN and infinities, which JSON cannot carry.
func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
