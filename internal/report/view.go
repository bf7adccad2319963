package report

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/KaramelBytes/csv-inspector/internal/analysis"
)

// ReportData is everything the HTML report and the Markdown summary show.
type ReportData struct {
	Title      string
	Summary    *analysis.Summary
	Histograms []string // image paths; only base names are embedded
	Heatmap    string   // image path, empty when no heatmap was drawn
	TopPairs   []analysis.CorrPair
}

type columnRow struct {
	Name      string
	Dtype     string
	NAPercent string
	Outliers  string
}

type describeRow struct {
	Column string
	Cells  []string
}

type describeTable struct {
	Stats []string
	Rows  []describeRow
}

type pairRow struct {
	A, B string
	R    string
}

// reportView is the flattened form handed to templates.
type reportView struct {
	Title         string
	Rows, Cols    int
	OutlierMethod string
	OutlierParam  string
	Columns       []columnRow
	Describe      describeTable
	Histograms    []string
	Heatmap       string
	TopPairs      []pairRow
}

func newReportView(d ReportData) reportView {
	s := d.Summary
	v := reportView{
		Title:         d.Title,
		Rows:          s.Rows,
		Cols:          s.Cols,
		OutlierMethod: s.OutlierMethod,
		OutlierParam:  s.OutlierParam,
		Columns:       columnRows(s),
		Describe:      describeView(s),
	}
	for _, h := range d.Histograms {
		v.Histograms = append(v.Histograms, filepath.Base(h))
	}
	if d.Heatmap != "" {
		v.Heatmap = filepath.Base(d.Heatmap)
	}
	for _, p := range d.TopPairs {
		v.TopPairs = append(v.TopPairs, pairRow{A: p.A, B: p.B, R: fmt.Sprintf("%.3f", p.R)})
	}
	return v
}

func columnRows(s *analysis.Summary) []columnRow {
	var out []columnRow
	for _, name := range s.Dtypes.Keys() {
		dt, _ := s.Dtypes.Get(name)
		na, _ := s.NAPercent.Get(name)
		row := columnRow{Name: name, Dtype: dt, NAPercent: fmt.Sprintf("%.1f%%", na), Outliers: "-"}
		if n, ok := s.Outliers.Get(name); ok {
			row.Outliers = strconv.Itoa(n)
		}
		out = append(out, row)
	}
	return out
}

// describeView lays the ragged describe table out column-per-row, keeping
// only statistics at least one column has. Inapplicable cells are empty.
func describeView(s *analysis.Summary) describeTable {
	var t describeTable
	cols := s.Describe.Keys()
	for _, stat := range analysis.StatNames {
		for _, c := range cols {
			cs, _ := s.Describe.Get(c)
			if cs.Value(stat) != nil {
				t.Stats = append(t.Stats, stat)
				break
			}
		}
	}
	for _, c := range cols {
		cs, _ := s.Describe.Get(c)
		row := describeRow{Column: c}
		for _, stat := range t.Stats {
			row.Cells = append(row.Cells, formatStat(cs.Value(stat)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func formatStat(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'g', 6, 64)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	}
	return fmt.Sprint(v)
}
