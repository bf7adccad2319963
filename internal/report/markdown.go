package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/csv-inspector/internal/utils"
)

// MarkdownFileName is the plain-text summary written when Markdown output is on.
const MarkdownFileName = "summary.md"

// Markdown renders a compact, sectioned dataset summary.
func Markdown(d ReportData) string {
	v := newReportView(d)
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if v.Title != "" {
		b.WriteString(fmt.Sprintf("Title: %s\n", v.Title))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", v.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", v.Cols))

	b.WriteString("[SCHEMA]\n")
	for _, c := range v.Columns {
		b.WriteString(fmt.Sprintf("- %s: %s (missing %s)", c.Name, c.Dtype, c.NAPercent))
		if c.Outliers != "-" {
			b.WriteString(fmt.Sprintf("; outliers: %s", c.Outliers))
		}
		b.WriteString("\n")
	}

	if len(v.Describe.Stats) > 0 {
		b.WriteString("\n[DESCRIBE]\n")
		for _, r := range v.Describe.Rows {
			var parts []string
			for i, cell := range r.Cells {
				if cell == "" {
					continue
				}
				parts = append(parts, fmt.Sprintf("%s %s", v.Describe.Stats[i], cell))
			}
			b.WriteString(fmt.Sprintf("- %s: %s\n", r.Column, strings.Join(parts, ", ")))
		}
	}

	b.WriteString(fmt.Sprintf("\n[OUTLIERS]\nMethod: %s (%s)\n", v.OutlierMethod, v.OutlierParam))

	if len(v.TopPairs) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range v.TopPairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%s\n", p.A, p.B, p.R))
		}
	}

	if v.Heatmap != "" || len(v.Histograms) > 0 {
		b.WriteString("\n[FIGURES]\n")
		if v.Heatmap != "" {
			b.WriteString(fmt.Sprintf("- %s\n", v.Heatmap))
		}
		for _, h := range v.Histograms {
			b.WriteString(fmt.Sprintf("- %s\n", h))
		}
	}
	return b.String()
}

// SaveMarkdown writes the Markdown summary into outDir.
func SaveMarkdown(d ReportData, outDir string) (string, error) {
	path := filepath.Join(outDir, MarkdownFileName)
	if err := utils.SafeWriteFile(path, []byte(Markdown(d))); err != nil {
		return "", renderErr(MarkdownFileName, err)
	}
	return path, nil
}
