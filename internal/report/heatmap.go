package report

import (
	"bytes"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/KaramelBytes/csv-inspector/internal/analysis"
	"github.com/KaramelBytes/csv-inspector/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// HeatmapFileName is the image name of the correlation heatmap.
const HeatmapFileName = "corr_heatmap.png"

const (
	heatmapWidth  = 7 * vg.Inch
	heatmapHeight = 5.5 * vg.Inch
	colorBarWidth = 1.1 * vg.Inch
	heatmapDPI    = 150
)

// corrGrid exposes a correlation matrix as a plotter.GridXYZ with matrix row 0
// drawn at the top.
type corrGrid struct{ m *analysis.CorrMatrix }

func (g corrGrid) Dims() (c, r int) {
	n := len(g.m.Columns)
	return n, n
}
func (g corrGrid) Z(c, r int) float64 { return g.m.At(len(g.m.Columns)-1-r, c) }
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }
func (g corrGrid) Min() float64 { return -1 }
func (g corrGrid) Max() float64 { return 1 }

// SaveCorrHeatmap renders m as a colour-mapped grid with a colour bar. An
// empty matrix produces no file and returns "".
func SaveCorrHeatmap(m *analysis.CorrMatrix, outDir string) (string, error) {
	if m.Empty() {
		return "", nil
	}
	if err := utils.EnsureDir(outDir); err != nil {
		return "", renderErr(HeatmapFileName, err)
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	hm := plotter.NewHeatMap(corrGrid{m}, cm.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 200}

	p := plot.New()
	p.Title.Text = "Correlation Heatmap"
	p.Add(hm)
	n := len(m.Columns)
	xt := make([]plot.Tick, n)
	yt := make([]plot.Tick, n)
	for i, name := range m.Columns {
		xt[i] = plot.Tick{Value: float64(i), Label: name}
		yt[i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xt)
	p.Y.Tick.Marker = plot.ConstantTicks(yt)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Padding, p.Y.Padding = 0, 0

	bar := plot.New()
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	bar.HideX()
	bar.Title.Text = "r"

	img := vgimg.NewWith(vgimg.UseWH(heatmapWidth, heatmapHeight), vgimg.UseDPI(heatmapDPI))
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, -colorBarWidth, 0, 0))
	bar.Draw(draw.Crop(dc, heatmapWidth-colorBarWidth, 0, 0, 0))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return "", renderErr(HeatmapFileName, fmt.Errorf("encode png: %w", err))
	}
	path := filepath.Join(outDir, HeatmapFileName)
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return "", renderErr(HeatmapFileName, err)
	}
	slog.Debug("wrote heatmap", "columns", n, "path", path)
	return path, nil
}
