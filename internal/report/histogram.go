package report

import (
	"bytes"
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/csv-inspector/internal/analysis"
	"github.com/KaramelBytes/csv-inspector/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// HistogramBins is the number of equal-width bins spanning each column's range.
const HistogramBins = 30

// HistogramFileName is the image name used for a column's histogram.
func HistogramFileName(column string) string {
	return "hist_" + utils.SanitizeFileName(column) + ".png"
}

// uniqueFileName returns name, or name with a _1, _2, ... suffix before the
// extension when an earlier column already claimed it.
func uniqueFileName(name string, used map[string]struct{}) string {
	out := name
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		if _, taken := used[out]; !taken {
			break
		}
		out = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
	used[out] = struct{}{}
	return out
}

// SaveHistograms renders one frequency histogram per numeric column, in table
// order, for at most maxCols columns. Columns whose names sanitise to the same
// file name get numbered suffixes in table order. It stops at the first
// failure and returns the paths written so far.
func SaveHistograms(t *analysis.Table, outDir string, maxCols int) ([]string, error) {
	if err := utils.EnsureDir(outDir); err != nil {
		return nil, renderErr("histograms", err)
	}
	var paths []string
	used := map[string]struct{}{}
	for i, c := range t.NumericColumns() {
		if i >= maxCols {
			break
		}
		p := filepath.Join(outDir, uniqueFileName(HistogramFileName(c.Name()), used))
		if err := saveHistogram(c.Name(), c.Values(), p); err != nil {
			return paths, renderErr(filepath.Base(p), err)
		}
		slog.Debug("wrote histogram", "column", c.Name(), "path", p)
		paths = append(paths, p)
	}
	return paths, nil
}

func saveHistogram(name string, vals []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Histogram: " + name
	p.X.Label.Text = name
	p.Y.Label.Text = "Frequency"
	// a column without values still gets its (empty) frame
	if len(vals) > 0 {
		h, err := plotter.NewHist(plotter.Values(vals), HistogramBins)
		if err != nil {
			return fmt.Errorf("bin values: %w", err)
		}
		h.FillColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
		p.Add(h)
	}
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
