package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/user/mysql-charts-go/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Marker shapes cycle in this order, one per series.
var markers = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.SquareGlyph{},
	draw.TriangleGlyph{},
	draw.PyramidGlyph{},
}

var (
	seriesWidth  = vg.Points(3)
	markerRadius = vg.Points(4)
)

// IdealScaling projects perfect linear scaling from a single-thread baseline.
func IdealScaling(baseline float64, threads []float64) []float64 {
	out := make([]float64, len(threads))
	for i, t := range threads {
		out[i] = baseline * t
	}
	return out
}

// Scalability renders TPS against thread count on a base-2 logarithmic axis,
// with a dashed ideal-linear-scaling reference line.
func Scalability(st *Style, data models.Scalability, path string) error {
	p := st.newPlot("Multi-Thread Scalability (Read Load)")
	p.X.Label.Text = "Concurrent Threads"
	p.Y.Label.Text = "TPS (transactions/sec)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = threadTicks(data.Threads)
	p.Add(st.grid())

	for i, s := range data.Series {
		if err := st.addMarkedLine(p, s, i); err != nil {
			return err
		}
	}

	ideal, err := plotter.NewLine(xys(data.Threads, IdealScaling(data.Baseline, data.Threads)))
	if err != nil {
		return fmt.Errorf("failed to create ideal scaling line: %w", err)
	}
	ideal.Color = fade(color.Gray{Y: 128}, 0.5)
	ideal.Width = vg.Points(2)
	ideal.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(ideal)
	p.Legend.Add("Ideal linear scaling", ideal)

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(6)
	return st.save(path, ScalabilitySize.W, ScalabilitySize.H, p)
}

// threadTicks labels exactly the measured thread counts.
func threadTicks(threads []float64) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(threads))
	for i, t := range threads {
		ticks[i] = plot.Tick{Value: t, Label: strconv.FormatFloat(t, 'f', -1, 64)}
	}
	return ticks
}

// Stability renders TPS over a long running test with a decay annotation.
func Stability(st *Style, data models.Stability, path string) error {
	p := st.newPlot("24-Hour Long-Term Stability Test")
	p.X.Label.Text = "Elapsed Time (hours)"
	p.Y.Label.Text = "TPS (transactions/sec)"
	p.Add(st.grid())

	for i, s := range data.Series {
		if err := st.addMarkedLine(p, s, i); err != nil {
			return err
		}
	}

	note := st.newArrow(data.Annotation, st.Color(0))
	p.Add(note)

	p.X.Min = 0
	p.X.Max = data.MaxHours
	p.Legend.Top = true
	p.Legend.XOffs = -vg.Points(6)
	return st.save(path, StabilitySize.W, StabilitySize.H, p)
}

func (st *Style) addMarkedLine(p *plot.Plot, s models.XYSeries, i int) error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("series %q has %d x values and %d y values", s.Label, len(s.X), len(s.Y))
	}
	line, points, err := plotter.NewLinePoints(xys(s.X, s.Y))
	if err != nil {
		return fmt.Errorf("failed to create line for %s: %w", s.Label, err)
	}
	line.Color = st.Color(i)
	line.Width = seriesWidth
	points.Color = st.Color(i)
	points.Radius = markerRadius
	points.Shape = markers[i%len(markers)]
	p.Add(line, points)
	p.Legend.Add(s.Label, line, points)
	return nil
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return pts
}

// Arrow is a text annotation with an arrow pointing at a data point.
type Arrow struct {
	Text      string
	Target    plotter.XY
	TextAt    plotter.XY
	TextStyle text.Style
	LineStyle draw.LineStyle
	HeadSize  vg.Length
}

func (st *Style) newArrow(a models.Annotation, clr color.Color) *Arrow {
	ts := st.textStyle(st.AnnotationSize+1, false)
	ts.Color = clr
	ts.XAlign = draw.XLeft
	ts.YAlign = draw.YBottom
	return &Arrow{
		Text:      a.Text,
		Target:    plotter.XY{X: a.X, Y: a.Y},
		TextAt:    plotter.XY{X: a.TextX, Y: a.TextY},
		TextStyle: ts,
		LineStyle: draw.LineStyle{Color: fade(clr, 0.7), Width: vg.Points(1)},
		HeadSize:  vg.Points(6),
	}
}

// Plot implements plot.Plotter.
func (a *Arrow) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	from := vg.Point{X: trX(a.TextAt.X), Y: trY(a.TextAt.Y)}
	to := vg.Point{X: trX(a.Target.X), Y: trY(a.Target.Y)}

	c.FillText(a.TextStyle, from, a.Text)
	c.StrokeLines(a.LineStyle, []vg.Point{from, to})

	// Arrow head: two strokes 25 degrees either side of the shaft.
	angle := math.Atan2(float64(from.Y-to.Y), float64(from.X-to.X))
	for _, d := range []float64{-25, 25} {
		th := angle + d*math.Pi/180
		tip := vg.Point{
			X: to.X + a.HeadSize*vg.Length(math.Cos(th)),
			Y: to.Y + a.HeadSize*vg.Length(math.Sin(th)),
		}
		c.StrokeLines(a.LineStyle, []vg.Point{to, tip})
	}
}

// DataRange implements plot.DataRanger.
func (a *Arrow) DataRange() (xmin, xmax, ymin, ymax float64) {
	return math.Min(a.Target.X, a.TextAt.X), math.Max(a.Target.X, a.TextAt.X),
		math.Min(a.Target.Y, a.TextAt.Y), math.Max(a.Target.Y, a.TextAt.Y)
}
