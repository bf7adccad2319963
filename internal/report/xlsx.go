package report

import (
	"math"
	"path/filepath"

	"github.com/KaramelBytes/csv-inspector/internal/analysis"
	"github.com/KaramelBytes/csv-inspector/internal/utils"
	"github.com/xuri/excelize/v2"
)

// WorkbookFileName is the spreadsheet export of the summary.
const WorkbookFileName = "summary.xlsx"

const (
	sheetOverview    = "Overview"
	sheetDescribe    = "Describe"
	sheetCorrelation = "Correlation"
)

// SaveWorkbook writes the summary and the correlation matrix to summary.xlsx
// in outDir. The Correlation sheet is left out when m is empty.
func SaveWorkbook(s *analysis.Summary, m *analysis.CorrMatrix, outDir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetOverview); err != nil {
		return "", renderErr(WorkbookFileName, err)
	}
	if err := writeOverview(f, s); err != nil {
		return "", renderErr(WorkbookFileName, err)
	}
	if _, err := f.NewSheet(sheetDescribe); err != nil {
		return "", renderErr(WorkbookFileName, err)
	}
	if err := writeDescribe(f, s); err != nil {
		return "", renderErr(WorkbookFileName, err)
	}
	if !m.Empty() {
		if _, err := f.NewSheet(sheetCorrelation); err != nil {
			return "", renderErr(WorkbookFileName, err)
		}
		if err := writeCorrelation(f, m); err != nil {
			return "", renderErr(WorkbookFileName, err)
		}
	}

	path := filepath.Join(outDir, WorkbookFileName)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", renderErr(WorkbookFileName, err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return "", renderErr(WorkbookFileName, err)
	}
	return path, nil
}

func writeOverview(f *excelize.File, s *analysis.Summary) error {
	rows := [][]any{
		{"rows", s.Rows},
		{"cols", s.Cols},
		{"outlier_method", s.OutlierMethod},
		{"outlier_param", s.OutlierParam},
		{},
		{"column", "dtype", "na_percent", "outliers"},
	}
	for _, c := range s.Dtypes.Keys() {
		dt, _ := s.Dtypes.Get(c)
		na, _ := s.NAPercent.Get(c)
		row := []any{c, dt, na}
		if n, ok := s.Outliers.Get(c); ok {
			row = append(row, n)
		}
		rows = append(rows, row)
	}
	return setRows(f, sheetOverview, rows)
}

func writeDescribe(f *excelize.File, s *analysis.Summary) error {
	t := describeView(s)
	header := []any{"column"}
	for _, st := range t.Stats {
		header = append(header, st)
	}
	rows := [][]any{header}
	for _, c := range s.Describe.Keys() {
		cs, _ := s.Describe.Get(c)
		row := []any{c}
		for _, st := range t.Stats {
			v := cs.Value(st)
			if v == nil {
				v = ""
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return setRows(f, sheetDescribe, rows)
}

func writeCorrelation(f *excelize.File, m *analysis.CorrMatrix) error {
	header := []any{""}
	for _, c := range m.Columns {
		header = append(header, c)
	}
	rows := [][]any{header}
	for i, c := range m.Columns {
		row := []any{c}
		for j := range m.Columns {
			r := m.At(i, j)
			if math.IsNaN(r) {
				row = append(row, "")
				continue
			}
			row = append(row, r)
		}
		rows = append(rows, row)
	}
	return setRows(f, sheetCorrelation, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
