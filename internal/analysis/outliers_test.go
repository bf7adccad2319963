package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioTable(t *testing.T) *Table {
	t.Helper()
	p := writeCSV(t, "scenario.csv", "a,b\n1,10\n2,20\n3,30\n100,5\n")
	tbl, err := ReadCSV(p, DefaultReadOptions())
	require.NoError(t, err)
	return tbl
}

func count(t *testing.T, c OutlierCounts, name string) int {
	t.Helper()
	n, ok := c.Get(name)
	require.True(t, ok, "column %s not keyed", name)
	return n
}

func TestOutlierCounts_ZScore(t *testing.T) {
	tbl := scenarioTable(t)

	// sample std of a is 49.0068, so z(100) = 73.5/49.0068 = 1.4998
	got := OutlierCountsFor(tbl, OutlierOptions{Method: MethodZScore, ZThresh: 1.4})
	assert.Equal(t, 1, count(t, got, "a"))
	assert.Equal(t, 0, count(t, got, "b"))

	got = OutlierCountsFor(tbl, OutlierOptions{Method: MethodZScore, ZThresh: 1.5})
	assert.Equal(t, 0, count(t, got, "a"))
}

func TestOutlierCounts_IQR(t *testing.T) {
	tbl := scenarioTable(t)

	got := OutlierCountsFor(tbl, OutlierOptions{Method: MethodIQR, IQRMult: 1.5})
	assert.Equal(t, 1, count(t, got, "a"))
	assert.Equal(t, 0, count(t, got, "b"))

	got = OutlierCountsFor(tbl, OutlierOptions{Method: MethodIQR, IQRMult: 3})
	assert.Equal(t, 0, count(t, got, "a"))
}

func TestOutlierCounts_DegenerateColumns(t *testing.T) {
	tbl, err := NewTable("t",
		NewFloatColumn("const", []float64{0.1, 0.1, 0.1, 0.1, 0.1}, nil),
		NewFloatColumn("gaps", []float64{0, 0, 0, 0, 0}, []bool{true, true, true, true, true}),
		NewFloatColumn("single", []float64{7, 0, 0, 0, 0}, []bool{false, true, true, true, true}),
		NewTextColumn("txt", []string{"a", "b", "c", "d", "e"}, nil),
	)
	require.NoError(t, err)

	for _, opt := range []OutlierOptions{
		{Method: MethodZScore, ZThresh: 0.1},
		{Method: MethodIQR, IQRMult: 0},
	} {
		got := OutlierCountsFor(tbl, opt)
		assert.Equal(t, []string{"const", "gaps", "single"}, got.Keys(), "method %s", opt.Method)
		for _, k := range got.Keys() {
			assert.Equal(t, 0, count(t, got, k), "method %s column %s", opt.Method, k)
		}
	}
}

func TestOutlierCounts_MonotoneInThreshold(t *testing.T) {
	vals := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5, 9, 15, -8, 30, 2.5, 3.3}
	tbl, err := NewTable("t", NewFloatColumn("v", vals, nil))
	require.NoError(t, err)

	prev := len(vals) + 1
	for th := 0.0; th <= 4; th += 0.25 {
		n := count(t, OutlierCountsFor(tbl, OutlierOptions{Method: MethodZScore, ZThresh: th}), "v")
		assert.LessOrEqual(t, n, prev, "z threshold %.2f", th)
		prev = n
	}
	prev = len(vals) + 1
	for m := 0.0; m <= 4; m += 0.25 {
		n := count(t, OutlierCountsFor(tbl, OutlierOptions{Method: MethodIQR, IQRMult: m}), "v")
		assert.LessOrEqual(t, n, prev, "iqr mult %.2f", m)
		prev = n
	}
}

func TestParseOutlierMethod(t *testing.T) {
	m, err := ParseOutlierMethod("IQR")
	require.NoError(t, err)
	assert.Equal(t, MethodIQR, m)
	_, err = ParseOutlierMethod("mad")
	assert.Error(t, err)
}

func TestOutlierOptions_Param(t *testing.T) {
	assert.Equal(t, "Z>3.0", OutlierOptions{Method: MethodZScore, ZThresh: 3}.Param())
	assert.Equal(t, "Z>2.75", OutlierOptions{Method: MethodZScore, ZThresh: 2.75}.Param())
	assert.Equal(t, "mult=1.5", OutlierOptions{Method: MethodIQR, IQRMult: 1.5}.Param())
	assert.Equal(t, "IQR", MethodIQR.Label())
}
