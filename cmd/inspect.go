package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/csv-inspector/internal/analysis"
	cfgpkg "github.com/KaramelBytes/csv-inspector/internal/config"
	"github.com/KaramelBytes/csv-inspector/internal/report"
	"github.com/KaramelBytes/csv-inspector/internal/utils"
)

// runInspect runs the pipeline: ingest, summarize, outliers, correlation,
// histograms, heatmap, JSON, optional HTML/XLSX/Markdown, console report.
func runInspect(w io.Writer, r *cfgpkg.Run) error {
	start := time.Now()
	t, err := analysis.ReadCSV(r.CSVPath, analysis.ReadOptions{Separator: r.Separator(), MaxRows: r.Limit})
	if err != nil {
		return err
	}
	slog.Info("ingested table", "path", r.CSVPath, "rows", t.Rows(), "cols", len(t.Columns))
	if err := utils.EnsureDir(r.OutDir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	s := analysis.Summarize(t)
	method, err := analysis.ParseOutlierMethod(r.OutlierMethod)
	if err != nil {
		return &cfgpkg.ConfigError{Field: "outlier_method", Reason: err.Error()}
	}
	opt := analysis.OutlierOptions{Method: method, ZThresh: r.ZThresh, IQRMult: r.IQRMult}
	s.SetOutliers(analysis.OutlierCountsFor(t, opt), opt)

	corr := analysis.Correlation(t)
	pairs := analysis.TopCorrelations(corr, r.TopK, r.CorrMin)
	slog.Debug("correlation", "columns", len(corr.Columns), "pairs", len(pairs))

	hists, err := report.SaveHistograms(t, r.OutDir, r.MaxHist)
	if err != nil {
		return err
	}
	heat, err := report.SaveCorrHeatmap(corr, r.OutDir)
	if err != nil {
		return err
	}
	jsonPath := filepath.Join(r.OutDir, report.SummaryFileName)
	if err := report.SaveJSON(s, jsonPath); err != nil {
		return err
	}
	slog.Debug("wrote artifact", "path", jsonPath)

	data := report.ReportData{Title: r.Title, Summary: s, Histograms: hists, Heatmap: heat, TopPairs: pairs}
	if r.HTML {
		p, err := report.RenderHTMLReport(report.NewFSRenderer(r.TemplatesDir), data, r.OutDir)
		if err != nil {
			return err
		}
		slog.Debug("wrote artifact", "path", p)
	}
	if r.XLSX {
		p, err := report.SaveWorkbook(s, corr, r.OutDir)
		if err != nil {
			return err
		}
		slog.Debug("wrote artifact", "path", p)
	}
	if r.Markdown {
		p, err := report.SaveMarkdown(data, r.OutDir)
		if err != nil {
			return err
		}
		slog.Debug("wrote artifact", "path", p)
	}

	if r.CorrMin > 0 {
		fmt.Fprintf(w, "Top corr pairs (|r|>=%g): %s\n", r.CorrMin, formatPairs(pairs))
	}
	printReport(w, s, heat, hists)
	slog.Info("inspection complete", "out", r.OutDir, "histograms", len(hists), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func printReport(w io.Writer, s *analysis.Summary, heat string, hists []string) {
	fmt.Fprintln(w, "--- CSV INSPECTOR REPORT ---")
	fmt.Fprintf(w, "Rows: %d, Cols: %d\n", s.Rows, s.Cols)
	fmt.Fprintf(w, "Outliers (per numeric column): %s\n", formatCounts(s.Outliers))
	if heat != "" {
		fmt.Fprintf(w, "Correlation heatmap: %s\n", heat)
	}
	fmt.Fprintf(w, "Histograms: [%s]\n", strings.Join(hists, ", "))
}

func formatCounts(c analysis.OutlierCounts) string {
	parts := make([]string, 0, c.Len())
	for _, k := range c.Keys() {
		n, _ := c.Get(k)
		parts = append(parts, fmt.Sprintf("%s=%d", k, n))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatPairs(pairs []analysis.CorrPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s~%s r=%.3f", p.A, p.B, p.R))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
