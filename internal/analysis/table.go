package analysis

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBoolean
	KindDatetime
	KindText
)

// String returns the coarse type label reported in summaries.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDatetime:
		return "datetime"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Column is one named, missing-aware series of a Table. The concrete types are
// IntColumn, FloatColumn, BoolColumn, DatetimeColumn and TextColumn.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsMissing(i int) bool
	// Missing returns how many rows hold no value.
	Missing() int
	// Format renders the value at row i; missing rows render as "".
	Format(i int) string
}

// NumericColumn is implemented by columns that support arithmetic statistics.
type NumericColumn interface {
	Column
	// Float returns row i as float64. Only meaningful when !IsMissing(i).
	Float(i int) float64
	// Values returns the non-missing values in row order.
	Values() []float64
}

// AsNumeric reports whether c supports arithmetic statistics.
func AsNumeric(c Column) (NumericColumn, bool) {
	n, ok := c.(NumericColumn)
	return n, ok
}

// nulls is the missing-value mask shared by every column variant.
type nulls []bool

func (n nulls) Len() int { return len(n) }
func (n nulls) IsMissing(i int) bool { return n[i] }
func (n nulls) Missing() int {
	var cnt int
	for _, m := range n {
		if m {
			cnt++
		}
	}
	return cnt
}

type IntColumn struct {
	name string
	vals []int64
	nulls
}

func (c *IntColumn) Name() string { return c.name }
func (c *IntColumn) Kind() Kind { return KindInteger }
func (c *IntColumn) Float(i int) float64 { return float64(c.vals[i]) }
func (c *IntColumn) Values() []float64 { return collect(c.nulls, c.Float) }
func (c *IntColumn) Int(i int) int64 { return c.vals[i] }
func (c *IntColumn) Format(i int) string {
	return formatOr(c.nulls, i, func() string { return strconv.FormatInt(c.Int(i), 10) })
}

type FloatColumn struct {
	name string
	vals []float64
	nulls
}

func (c *FloatColumn) Name() string { return c.name }
func (c *FloatColumn) Kind() Kind { return KindFloat }
func (c *FloatColumn) Float(i int) float64 { return c.vals[i] }
func (c *FloatColumn) Values() []float64 { return collect(c.nulls, c.Float) }
func (c *FloatColumn) Format(i int) string {
	return formatOr(c.nulls, i, func() string { return fmt.Sprint(c.Float(i)) })
}

type BoolColumn struct {
	name string
	vals []bool
	nulls
}

func (c *BoolColumn) Name() string { return c.name }
func (c *BoolColumn) Kind() Kind { return KindBoolean }
func (c *BoolColumn) Bool(i int) bool { return c.vals[i] }
func (c *BoolColumn) Format(i int) string {
	return formatOr(c.nulls, i, func() string { return strconv.FormatBool(c.Bool(i)) })
}

type DatetimeColumn struct {
	name string
	vals []time.Time
	nulls
}

func (c *DatetimeColumn) Name() string { return c.name }
func (c *DatetimeColumn) Kind() Kind { return KindDatetime }
func (c *DatetimeColumn) Time(i int) time.Time { return c.vals[i] }
func (c *DatetimeColumn) Format(i int) string {
	return formatOr(c.nulls, i, func() string {
		t := c.Time(i)
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	})
}

type TextColumn struct {
	name string
	vals []string
	nulls
}

func (c *TextColumn) Name() string { return c.name }
func (c *TextColumn) Kind() Kind { return KindText }
func (c *TextColumn) Text(i int) string { return c.vals[i] }
func (c *TextColumn) Format(i int) string { return formatOr(c.nulls, i, func() string { return c.Text(i) }) }

func collect(n nulls, at func(int) float64) []float64 {
	out := make([]float64, 0, len(n))
	for i, m := range n {
		if !m {
			out = append(out, at(i))
		}
	}
	return out
}

func formatOr(n nulls, i int, f func() string) string {
	if n[i] {
		return ""
	}
	return f()
}

// Table is an ordered set of equal-length, uniquely named columns.
type Table struct {
	Name    string
	Columns []Column
	rows    int
}

// NewTable builds a Table, enforcing equal column lengths and unique names.
func NewTable(name string, cols ...Column) (*Table, error) {
	t := &Table{Name: name, Columns: cols}
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if _, dup := seen[c.Name()]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name())
		}
		seen[c.Name()] = struct{}{}
		if i == 0 {
			t.rows = c.Len()
			continue
		}
		if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name(), c.Len(), t.rows)
		}
	}
	return t, nil
}

// Rows returns the number of data rows.
func (t *Table) Rows() int { return t.rows }

// column returns the column with the given name.
func (t *Table) column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// NumericColumns returns the numeric columns in table order.
func (t *Table) NumericColumns() []NumericColumn {
	var out []NumericColumn
	for _, c := range t.Columns {
		if n, ok := AsNumeric(c); ok {
			out = append(out, n)
		}
	}
	return out
}

func maskOrNone(n int, missing []bool) nulls {
	if missing == nil {
		return make(nulls, n)
	}
	return nulls(missing)
}

// NewIntColumn builds an integer column. A nil missing mask means no missing values.
func NewIntColumn(name string, vals []int64, missing []bool) *IntColumn {
	return &IntColumn{name: name, vals: vals, nulls: maskOrNone(len(vals), missing)}
}

// NewFloatColumn builds a float column. A nil missing mask means no missing values.
func NewFloatColumn(name string, vals []float64, missing []bool) *FloatColumn {
	return &FloatColumn{name: name, vals: vals, nulls: maskOrNone(len(vals), missing)}
}

func NewBoolColumn(name string, vals []bool, missing []bool) *BoolColumn {
	return &BoolColumn{name: name, vals: vals, nulls: maskOrNone(len(vals), missing)}
}

func NewDatetimeColumn(name string, vals []time.Time, missing []bool) *DatetimeColumn {
	return &DatetimeColumn{name: name, vals: vals, nulls: maskOrNone(len(vals), missing)}
}

func NewTextColumn(name string, vals []string, missing []bool) *TextColumn {
	return &TextColumn{name: name, vals: vals, nulls: maskOrNone(len(vals), missing)}
}
