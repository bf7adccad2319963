package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumns_FormatAndMissing(t *testing.T) {
	miss := []bool{false, true, false}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cols := []Column{
		NewIntColumn("i", []int64{7, 0, -2}, miss),
		NewFloatColumn("f", []float64{1.5, 0, 2}, miss),
		NewBoolColumn("b", []bool{true, false, false}, miss),
		NewDatetimeColumn("d", []time.Time{day, {}, day.Add(90 * time.Minute)}, miss),
		NewTextColumn("t", []string{"x", "", "y"}, miss),
	}
	want := map[string][]string{
		"i": {"7", "", "-2"},
		"f": {"1.5", "", "2"},
		"b": {"true", "", "false"},
		"d": {"2024-03-01", "", "2024-03-01 01:30:00"},
		"t": {"x", "", "y"},
	}
	for _, c := range cols {
		assert.Equal(t, 3, c.Len(), c.Name())
		assert.Equal(t, 1, c.Missing(), c.Name())
		assert.True(t, c.IsMissing(1), c.Name())
		got := []string{c.Format(0), c.Format(1), c.Format(2)}
		assert.Equal(t, want[c.Name()], got, c.Name())
	}
}

func TestAsNumeric(t *testing.T) {
	i := NewIntColumn("i", []int64{3, 1}, []bool{false, true})
	n, ok := AsNumeric(i)
	require.True(t, ok)
	assert.Equal(t, []float64{3}, n.Values())
	assert.Equal(t, 3.0, n.Float(0))

	_, ok = AsNumeric(NewBoolColumn("b", []bool{true}, nil))
	assert.False(t, ok)
	_, ok = AsNumeric(NewTextColumn("t", []string{"1"}, nil))
	assert.False(t, ok)
}

func TestKindLabels(t *testing.T) {
	assert.Equal(t, "integer", KindInteger.String())
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "boolean", KindBoolean.String())
	assert.Equal(t, "datetime", KindDatetime.String())
	assert.Equal(t, "text", KindText.String())
}

func TestTable_Lookup(t *testing.T) {
	tbl, err := NewTable("t.csv",
		NewTextColumn("name", []string{"a", "b"}, nil),
		NewFloatColumn("v", []float64{1, 2}, nil),
		NewIntColumn("n", []int64{1, 2}, nil),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Rows())

	c, ok := tbl.column("v")
	require.True(t, ok)
	assert.Equal(t, KindFloat, c.Kind())
	_, ok = tbl.column("missing")
	assert.False(t, ok)

	var names []string
	for _, n := range tbl.NumericColumns() {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"v", "n"}, names)
}
