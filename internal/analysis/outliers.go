package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// OutlierMethod selects how numeric values are flagged.
type OutlierMethod string

const (
	MethodZScore OutlierMethod = "z"
	MethodIQR    OutlierMethod = "iqr"
)

// ParseOutlierMethod accepts "z" or "iqr" (case-insensitive).
func ParseOutlierMethod(s string) (OutlierMethod, error) {
	switch OutlierMethod(strings.ToLower(strings.TrimSpace(s))) {
	case MethodZScore:
		return MethodZScore, nil
	case MethodIQR:
		return MethodIQR, nil
	}
	return "", fmt.Errorf("unknown outlier method %q (use z or iqr)", s)
}

// Label is the human-readable method name stored in summaries.
func (m OutlierMethod) Label() string {
	if m == MethodIQR {
		return "IQR"
	}
	return "Z-score"
}

// OutlierOptions configures OutlierCountsFor.
type OutlierOptions struct {
	Method OutlierMethod
	// ZThresh flags |value-mean|/std > ZThresh under the z-score method.
	ZThresh float64
	// IQRMult widens the [Q1, Q3] fence by IQRMult*IQR under the IQR method.
	IQRMult float64
}

// DefaultOutlierOptions is the z-score method with a threshold of 3.
func DefaultOutlierOptions() OutlierOptions {
	return OutlierOptions{Method: MethodZScore, ZThresh: 3.0, IQRMult: 1.5}
}

// Param describes the active threshold, e.g. "Z>3.0" or "mult=1.5".
func (o OutlierOptions) Param() string {
	if o.Method == MethodIQR {
		return "mult=" + formatDecimal(o.IQRMult)
	}
	return "Z>" + formatDecimal(o.ZThresh)
}

// formatDecimal prints the shortest representation, keeping at least one decimal.
func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// OutlierCounts maps numeric column names to the number of flagged values.
type OutlierCounts = ColumnMap[int]

// OutlierCountsFor counts outliers per numeric column. Non-numeric columns are
// not keyed. Constant columns and columns with no values count 0.
func OutlierCountsFor(t *Table, opt OutlierOptions) OutlierCounts {
	var counts OutlierCounts
	for _, c := range t.NumericColumns() {
		vals := c.Values()
		var n int
		switch opt.Method {
		case MethodIQR:
			n = iqrOutliers(vals, opt.IQRMult)
		default:
			n = zOutliers(vals, opt.ZThresh)
		}
		counts.Set(c.Name(), n)
	}
	return counts
}

func zOutliers(vals []float64, thresh float64) int {
	if len(vals) < 2 || constant(vals) {
		return 0
	}
	mean, std := stat.MeanStdDev(vals, nil)
	if std == 0 || math.IsNaN(std) {
		return 0
	}
	var n int
	for _, v := range vals {
		if math.Abs(v-mean)/std > thresh {
			n++
		}
	}
	return n
}

func iqrOutliers(vals []float64, mult float64) int {
	if len(vals) == 0 {
		return 0
	}
	q := quantiles(vals, 0.25, 0.75)
	q1, q3 := q[0], q[1]
	iqr := q3 - q1
	if iqr == 0 {
		return 0
	}
	lower := q1 - mult*iqr
	upper := q3 + mult*iqr
	var n int
	for _, v := range vals {
		if v < lower || v > upper {
			n++
		}
	}
	return n
}

func constant(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}

// SetOutliers merges outlier results and the method description into s.
func (s *Summary) SetOutliers(counts OutlierCounts, opt OutlierOptions) {
	s.Outliers = counts
	s.OutlierMethod = opt.Method.Label()
	s.OutlierParam = opt.Param()
}
