package chart

import (
	"fmt"
	"math"

	"github.com/user/mysql-charts-go/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Figure sizes.
var (
	ComparisonSize  = Size{W: 16 * vg.Inch, H: 8 * vg.Inch}
	ScalabilitySize = Size{W: 12 * vg.Inch, H: 8 * vg.Inch}
	StabilitySize   = Size{W: 14 * vg.Inch, H: 8 * vg.Inch}
	RadarSize       = Size{W: 10 * vg.Inch, H: 10 * vg.Inch}
	CostSize        = Size{W: 14 * vg.Inch, H: 6 * vg.Inch}
)

// Size is a figure size.
type Size struct{ W, H vg.Length }

// Pixels returns the raster dimensions of sz at dpi.
func (sz Size) Pixels(dpi int) (w, h int) {
	return int(sz.W/vg.Inch*vg.Length(dpi) + 0.5), int(sz.H/vg.Inch*vg.Length(dpi) + 0.5)
}

const barAlpha = 0.8

var barWidth = vg.Points(18)

// PerformanceComparison renders read-only and write-only grouped bars side by side.
func PerformanceComparison(st *Style, data models.PerformanceComparison, path string) error {
	read, err := st.groupedBars(data.ReadOnly, "Database Version", "TPS (transactions/sec)")
	if err != nil {
		return fmt.Errorf("read-only panel: %w", err)
	}
	write, err := st.groupedBars(data.WriteOnly, "Database Version", "TPS (transactions/sec)")
	if err != nil {
		return fmt.Errorf("write-only panel: %w", err)
	}
	return st.save(path, ComparisonSize.W, ComparisonSize.H, read, write)
}

// groupedBars draws one bar per series for every category. Zero values are
// drawn as zero-height bars so categories stay aligned across series.
func (st *Style) groupedBars(ds models.Dataset, xLabel, yLabel string) (*plot.Plot, error) {
	if len(ds.Series) == 0 {
		return nil, fmt.Errorf("dataset %q has no series", ds.Name)
	}
	p := st.newPlot(ds.Name)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(st.grid())

	n := len(ds.Series)
	for i, s := range ds.Series {
		if len(s.Values) != len(ds.Categories) {
			return nil, fmt.Errorf("series %q has %d values for %d categories", s.Label, len(s.Values), len(ds.Categories))
		}
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), barWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to create bars for %s: %w", s.Label, err)
		}
		offset := barWidth * vg.Length(float64(i)-float64(n-1)/2)
		bars.Offset = offset
		bars.Color = fade(st.Color(i), barAlpha)
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add(s.Label, bars)

		labels, err := st.newLabels(BarLabels(s.Values, 0, "%.0f"), vg.Point{X: offset, Y: vg.Points(3)}, st.AnnotationSize)
		if err != nil {
			return nil, fmt.Errorf("labels for %s: %w", s.Label, err)
		}
		if labels != nil {
			p.Add(labels)
		}
	}

	p.NominalX(ds.Categories...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Min = -0.5
	p.X.Max = float64(len(ds.Categories)) - 0.5
	p.Y.Min = 0
	p.Y.Max = maxValue(ds) * 1.12
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(6)
	return p, nil
}

func maxValue(ds models.Dataset) float64 {
	m := 0.0
	for _, s := range ds.Series {
		for _, v := range s.Values {
			m = math.Max(m, v)
		}
	}
	return m
}
