package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/user/mysql-charts-go/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	radarFillAlpha = 0.25
	circleSegments = 120
	// labelReach is how far past the outer ring category labels sit.
	labelReach = 1.08
	// ringLabelAngle matches the usual polar-axis placement of radial tick labels.
	ringLabelAngle = math.Pi / 8
)

// RadarAngles returns n evenly spaced angles over a full turn, followed by the
// first angle again so the polygon closes. The result has n+1 entries.
func RadarAngles(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n+1)
	for i := 0; i < n; i++ {
		out[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	out[n] = out[0]
	return out
}

// ClosePolygon returns a copy of values with the first value appended.
func ClosePolygon(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values), len(values)+1)
	copy(out, values)
	return append(out, values[0])
}

func polar(theta, r float64) (x, y float64) {
	return r * math.Cos(theta), r * math.Sin(theta)
}

// polarTransform maps (theta, r) onto c with one scale on both axes, so rings
// stay circular when the data area is not square.
func polarTransform(c *draw.Canvas, plt *plot.Plot) func(theta, r float64) vg.Point {
	trX, trY := plt.Transforms(c)
	center := vg.Point{X: trX(0), Y: trY(0)}
	unit := min(trX(1)-center.X, trY(1)-center.Y)
	return func(theta, r float64) vg.Point {
		x, y := polar(theta, r)
		return vg.Point{X: center.X + unit*vg.Length(x), Y: center.Y + unit*vg.Length(y)}
	}
}

// RadarGrid draws the rings, spokes and category labels of a radar chart.
type RadarGrid struct {
	Categories []string
	Max        float64
	Step       float64

	LineStyle  draw.LineStyle
	LabelStyle text.Style
	TickStyle  text.Style
}

// Plot implements plot.Plotter.
func (g *RadarGrid) Plot(c draw.Canvas, plt *plot.Plot) {
	at := polarTransform(&c, plt)

	for r := g.Step; r <= g.Max+1e-9; r += g.Step {
		ring := make([]vg.Point, circleSegments+1)
		for i := range ring {
			ring[i] = at(2*math.Pi*float64(i)/circleSegments, r)
		}
		c.StrokeLines(g.LineStyle, ring)
		c.FillText(g.TickStyle, at(ringLabelAngle, r), strconv.FormatFloat(r, 'f', -1, 64))
	}

	angles := RadarAngles(len(g.Categories))
	for i, name := range g.Categories {
		theta := angles[i]
		c.StrokeLines(g.LineStyle, []vg.Point{at(theta, 0), at(theta, g.Max)})

		ts := g.LabelStyle
		ts.XAlign, ts.YAlign = labelAlign(theta)
		c.FillText(ts, at(theta, g.Max*labelReach), name)
	}
}

// labelAlign anchors a category label so it grows away from the chart center.
func labelAlign(theta float64) (draw.XAlignment, draw.YAlignment) {
	x, y := math.Cos(theta), math.Sin(theta)
	xa, ya := draw.XCenter, draw.YCenter
	switch {
	case x > 0.1:
		xa = draw.XLeft
	case x < -0.1:
		xa = draw.XRight
	}
	switch {
	case y > 0.1:
		ya = draw.YBottom
	case y < -0.1:
		ya = draw.YTop
	}
	return xa, ya
}

// DataRange implements plot.DataRanger. The range is square and leaves room
// for the category labels.
func (g *RadarGrid) DataRange() (xmin, xmax, ymin, ymax float64) {
	m := g.Max * 1.3
	return -m, m, -m, m
}

// RadarSeries is one closed, filled polygon on a radar chart.
type RadarSeries struct {
	// Angles and Values are closed: the last entry repeats the first.
	Angles []float64
	Values []float64

	draw.LineStyle
	FillColor  color.Color
	GlyphStyle draw.GlyphStyle
}

// NewRadarSeries closes scores into a polygon over evenly spaced spokes.
func NewRadarSeries(scores []float64) (*RadarSeries, error) {
	if len(scores) < 3 {
		return nil, fmt.Errorf("radar series needs at least 3 categories, got %d", len(scores))
	}
	for i, v := range scores {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid radar score %v at index %d", v, i)
		}
	}
	return &RadarSeries{
		Angles: RadarAngles(len(scores)),
		Values: ClosePolygon(scores),
	}, nil
}

func (rs *RadarSeries) points(at func(theta, r float64) vg.Point) []vg.Point {
	pts := make([]vg.Point, len(rs.Values))
	for i, v := range rs.Values {
		pts[i] = at(rs.Angles[i], v)
	}
	return pts
}

// Plot implements plot.Plotter.
func (rs *RadarSeries) Plot(c draw.Canvas, plt *plot.Plot) {
	pts := rs.points(polarTransform(&c, plt))
	if rs.FillColor != nil {
		c.FillPolygon(rs.FillColor, pts)
	}
	c.StrokeLines(rs.LineStyle, pts)
	if rs.GlyphStyle.Shape != nil {
		for _, pt := range pts[:len(pts)-1] {
			c.DrawGlyph(rs.GlyphStyle, pt)
		}
	}
}

// DataRange implements plot.DataRanger.
func (rs *RadarSeries) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for i, v := range rs.Values {
		x, y := polar(rs.Angles[i], v)
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
	}
	return xmin, xmax, ymin, ymax
}

// Thumbnail implements plot.Thumbnailer.
func (rs *RadarSeries) Thumbnail(c *draw.Canvas) {
	if rs.FillColor != nil {
		c.FillPolygon(rs.FillColor, []vg.Point{
			{X: c.Min.X, Y: c.Min.Y},
			{X: c.Min.X, Y: c.Max.Y},
			{X: c.Max.X, Y: c.Max.Y},
			{X: c.Max.X, Y: c.Min.Y},
		})
	}
	y := c.Center().Y
	c.StrokeLine2(rs.LineStyle, c.Min.X, y, c.Max.X, y)
	if rs.GlyphStyle.Shape != nil {
		c.DrawGlyph(rs.GlyphStyle, c.Center())
	}
}

// EngineRadar renders engine capability scores as overlapping filled polygons.
func EngineRadar(st *Style, data models.EngineScores, path string) error {
	p := st.newPlot("Storage Engine Overall Comparison")
	p.Title.Padding = vg.Points(20)
	p.HideAxes()

	labelStyle := st.textStyle(st.LegendSize, false)
	tickStyle := st.textStyle(st.TickSize, false)
	tickStyle.Color = color.Gray{Y: 90}
	p.Add(&RadarGrid{
		Categories: data.Categories,
		Max:        data.MaxScore,
		Step:       2,
		LineStyle:  draw.LineStyle{Color: color.Gray{Y: 200}, Width: vg.Points(0.8)},
		LabelStyle: labelStyle,
		TickStyle:  tickStyle,
	})

	for i, s := range data.Series {
		if len(s.Values) != len(data.Categories) {
			return fmt.Errorf("series %q has %d scores for %d categories", s.Label, len(s.Values), len(data.Categories))
		}
		rs, err := NewRadarSeries(s.Values)
		if err != nil {
			return fmt.Errorf("radar series %s: %w", s.Label, err)
		}
		rs.LineStyle = draw.LineStyle{Color: st.Color(i), Width: seriesWidth}
		rs.FillColor = fade(st.Color(i), radarFillAlpha)
		rs.GlyphStyle = draw.GlyphStyle{Color: st.Color(i), Radius: markerRadius, Shape: markers[i%len(markers)]}
		p.Add(rs)
		p.Legend.Add(s.Label, rs)
	}

	p.Legend.Top = true
	return st.save(path, RadarSize.W, RadarSize.H, p)
}
