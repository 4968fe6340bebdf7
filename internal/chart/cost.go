package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/user/mysql-charts-go/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Scatter marker areas, one per configuration. An area is the square of the
// marker diameter in points.
var costMarkerAreas = []float64{100, 200, 300}

// costPalette maps configurations to palette indices.
var costPalette = []int{1, 0, 2}

func costColor(st *Style, i int) color.Color {
	return fade(st.Color(costPalette[i%len(costPalette)]), 0.7)
}

// areaRadius converts a marker area to a glyph radius.
func areaRadius(area float64) vg.Length {
	return vg.Points(math.Sqrt(area) / 2)
}

// CostBenefit renders cost against TPS next to a cost-per-TPS bar chart.
func CostBenefit(st *Style, data models.CostBenefit, path string) error {
	if len(data.Configs) != len(data.Costs) || len(data.Costs) != len(data.Performance) {
		return fmt.Errorf("cost data is misaligned: %d configs, %d costs, %d performance values",
			len(data.Configs), len(data.Costs), len(data.Performance))
	}
	scatter, err := st.costScatter(data)
	if err != nil {
		return err
	}
	bars, err := st.costPerTPSBars(data)
	if err != nil {
		return err
	}
	return st.save(path, CostSize.W, CostSize.H, scatter, bars)
}

func (st *Style) costScatter(data models.CostBenefit) (*plot.Plot, error) {
	p := st.newPlot("Cost vs Performance")
	p.X.Label.Text = "Hardware Cost (RMB)"
	p.Y.Label.Text = "Performance (TPS)"
	p.Add(st.grid())

	pts := xys(data.Costs, data.Performance)
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost scatter: %w", err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		area := costMarkerAreas[i%len(costMarkerAreas)]
		return draw.GlyphStyle{
			Color:  costColor(st, i),
			Radius: areaRadius(area),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(sc)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: data.Configs})
	if err != nil {
		return nil, fmt.Errorf("failed to create config labels: %w", err)
	}
	for i := range names.TextStyle {
		names.TextStyle[i] = st.textStyle(st.LegendSize, false)
	}
	names.Offset = vg.Point{X: vg.Points(10), Y: vg.Points(10)}
	p.Add(names)

	// Leave room for the labels to the right of the last point.
	p.X.Max *= 1.15
	p.Y.Max *= 1.1
	return p, nil
}

func (st *Style) costPerTPSBars(data models.CostBenefit) (*plot.Plot, error) {
	p := st.newPlot("Cost Effectiveness")
	p.Y.Label.Text = "Cost per TPS (RMB)"
	g := st.grid()
	g.Vertical.Color = nil
	p.Add(g)

	perTPS := data.CostPerTPS()
	for i, v := range perTPS {
		bar, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(60))
		if err != nil {
			return nil, fmt.Errorf("failed to create bar for %s: %w", data.Configs[i], err)
		}
		bar.XMin = float64(i)
		bar.Color = costColor(st, i)
		bar.LineStyle.Width = 0
		p.Add(bar)
	}

	labels, err := st.newLabels(BarLabels(perTPS, 0, "¥%.1f"), vg.Point{Y: vg.Points(3)}, st.LegendSize)
	if err != nil {
		return nil, err
	}
	if labels != nil {
		p.Add(labels)
	}

	p.NominalX(data.Configs...)
	p.X.Min = -0.5
	p.X.Max = float64(len(perTPS)) - 0.5
	p.Y.Min = 0
	p.Y.Max *= 1.15
	return p, nil
}
