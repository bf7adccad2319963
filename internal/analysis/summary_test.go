package analysis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_NumericAndText(t *testing.T) {
	tbl, err := NewTable("t",
		NewIntColumn("a", []int64{1, 2, 3, 100}, nil),
		NewFloatColumn("b", []float64{1.5, 0, 2.5, 3.5}, []bool{false, true, false, false}),
		NewTextColumn("label", []string{"x", "y", "x", ""}, []bool{false, false, false, true}),
	)
	require.NoError(t, err)

	s := Summarize(tbl)
	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 3, s.Cols)

	dt, _ := s.Dtypes.Get("a")
	assert.Equal(t, "integer", dt)
	pct, _ := s.NAPercent.Get("b")
	assert.InDelta(t, 25.0, pct, 1e-12)
	pct, _ = s.NAPercent.Get("a")
	assert.Equal(t, 0.0, pct)

	a, ok := s.Describe.Get("a")
	require.True(t, ok)
	assert.Equal(t, 4, a.Count)
	assert.InDelta(t, 26.5, *a.Mean, 1e-12)
	assert.InDelta(t, 49.00680, *a.Std, 1e-4)
	assert.Equal(t, 1.0, *a.Min)
	assert.InDelta(t, 1.75, *a.Q1, 1e-12)
	assert.InDelta(t, 2.5, *a.Median, 1e-12)
	assert.InDelta(t, 27.25, *a.Q3, 1e-12)
	assert.Equal(t, 100.0, *a.Max)
	assert.Nil(t, a.Unique)
	assert.Nil(t, a.Top)

	b, _ := s.Describe.Get("b")
	assert.Equal(t, 3, b.Count)

	label, _ := s.Describe.Get("label")
	assert.Equal(t, 3, label.Count)
	require.NotNil(t, label.Unique)
	assert.Equal(t, 2, *label.Unique)
	assert.Equal(t, "x", *label.Top)
	assert.Equal(t, 2, *label.Freq)
	assert.Nil(t, label.Mean)
}

func TestSummarize_ModeTieKeepsFirstSeen(t *testing.T) {
	tbl, err := NewTable("t", NewTextColumn("c", []string{"q", "p", "p", "q"}, nil))
	require.NoError(t, err)

	st, _ := Summarize(tbl).Describe.Get("c")
	assert.Equal(t, "q", *st.Top)
	assert.Equal(t, 2, *st.Freq)
}

func TestSummarize_SingleValueHasNoStd(t *testing.T) {
	tbl, err := NewTable("t", NewFloatColumn("v", []float64{4}, nil))
	require.NoError(t, err)

	st, _ := Summarize(tbl).Describe.Get("v")
	assert.Nil(t, st.Std)
	assert.Equal(t, 4.0, *st.Mean)
}

func TestSummarize_NAPercentBounds(t *testing.T) {
	tbl, err := NewTable("t",
		NewFloatColumn("none", []float64{1, 2, 3}, nil),
		NewFloatColumn("some", []float64{1, 0, 3}, []bool{false, true, false}),
		NewFloatColumn("all", []float64{0, 0, 0}, []bool{true, true, true}),
	)
	require.NoError(t, err)

	s := Summarize(tbl)
	for _, name := range s.NAPercent.Keys() {
		v, _ := s.NAPercent.Get(name)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
		c, _ := tbl.column(name)
		assert.Equal(t, c.Missing() == 0, v == 0, "column %s", name)
	}
	all, _ := s.NAPercent.Get("all")
	assert.Equal(t, 100.0, all)
}

func TestSummarize_HeaderOnlyTable(t *testing.T) {
	p := writeCSV(t, "empty.csv", "a,b\n")
	tbl, err := ReadCSV(p, DefaultReadOptions())
	require.NoError(t, err)

	s := Summarize(tbl)
	assert.Equal(t, 0, s.Rows)
	assert.Equal(t, 2, s.Cols)
	for _, name := range s.NAPercent.Keys() {
		v, _ := s.NAPercent.Get(name)
		assert.Equal(t, 0.0, v)
		st, _ := s.Describe.Get(name)
		assert.Equal(t, 0, st.Count)
		assert.Nil(t, st.Top)
		assert.Nil(t, st.Mean)
	}
	assert.Equal(t, 0, OutlierCountsFor(tbl, DefaultOutlierOptions()).Len())
	assert.True(t, Correlation(tbl).Empty())
}

func TestSummary_JSONShape(t *testing.T) {
	tbl, err := NewTable("t",
		NewIntColumn("n", []int64{1, 2, 3}, nil),
		NewTextColumn("şehir", []string{"İzmir", "Ankara", "İzmir"}, nil),
	)
	require.NoError(t, err)
	s := Summarize(tbl)
	opt := DefaultOutlierOptions()
	s.SetOutliers(OutlierCountsFor(tbl, opt), opt)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"top":{"şehir":"İzmir"}`)
	assert.Contains(t, string(b), `"dtypes":{"n":"integer","şehir":"text"}`)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	for _, key := range []string{"rows", "cols", "dtypes", "na_percent", "describe", "outliers", "outlier_method", "outlier_param"} {
		assert.Contains(t, got, key)
	}
	desc := got["describe"].(map[string]any)
	assert.Contains(t, desc["mean"], "n")
	assert.NotContains(t, desc["mean"], "şehir")
	assert.Contains(t, desc["count"], "şehir")
	assert.Equal(t, "Z-score", got["outlier_method"])
	assert.Equal(t, "Z>3.0", got["outlier_param"])
	assert.Equal(t, map[string]any{"n": float64(0)}, got["outliers"])
}

func TestQuantile_LinearInterpolation(t *testing.T) {
	vals := []float64{100, 1, 3, 2}
	q := quantiles(vals, 0, 0.25, 0.5, 1)
	assert.Equal(t, 1.0, q[0])
	assert.InDelta(t, 1.75, q[1], 1e-12)
	assert.InDelta(t, 2.5, q[2], 1e-12)
	assert.Equal(t, 100.0, q[3])
	assert.Equal(t, []float64{100, 1, 3, 2}, vals)
	assert.Equal(t, 0.1, quantiles([]float64{0.1, 0.1, 0.1}, 0.3)[0])
	assert.True(t, math.IsNaN(quantiles(nil, 0.5)[0]))
}
