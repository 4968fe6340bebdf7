package chart

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// BarLabels builds value labels for a bar series whose first bar sits at xmin.
// Bars with a zero (or negative) value get no label, so placeholder bars stay blank.
func BarLabels(values []float64, xmin float64, format string) plotter.XYLabels {
	var out plotter.XYLabels
	for i, v := range values {
		if v <= 0 {
			continue
		}
		out.XYs = append(out.XYs, plotter.XY{X: xmin + float64(i), Y: v})
		out.Labels = append(out.Labels, fmt.Sprintf(format, v))
	}
	return out
}

// newLabels returns centered labels sitting offset points above their anchors.
// It returns nil when there is nothing to label.
func (st *Style) newLabels(xyl plotter.XYLabels, offset vg.Point, size vg.Length) (*plotter.Labels, error) {
	if len(xyl.Labels) == 0 {
		return nil, nil
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, fmt.Errorf("failed to create labels: %w", err)
	}
	for i := range labels.TextStyle {
		ts := st.textStyle(size, false)
		ts.XAlign = draw.XCenter
		ts.YAlign = draw.YBottom
		labels.TextStyle[i] = ts
	}
	labels.Offset = offset
	return labels, nil
}
