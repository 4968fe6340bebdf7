package chart

import (
	"bytes"
	"image"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/mysql-charts-go/internal/benchdata"
	"github.com/user/mysql-charts-go/internal/models"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// testDPI keeps rendering fast while preserving figure proportions.
const testDPI = 20

func testStyle(t *testing.T) *Style {
	t.Helper()
	st := DefaultStyle()
	st.DPI = testDPI
	if err := st.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return st
}

type renderCase struct {
	name   string
	size   Size
	render func(st *Style, path string) error
}

func renderCases() []renderCase {
	return []renderCase{
		{"comparison", ComparisonSize, func(st *Style, path string) error {
			return PerformanceComparison(st, benchdata.Performance(), path)
		}},
		{"scalability", ScalabilitySize, func(st *Style, path string) error {
			return Scalability(st, benchdata.Scalability(), path)
		}},
		{"stability", StabilitySize, func(st *Style, path string) error {
			return Stability(st, benchdata.Stability(), path)
		}},
		{"radar", RadarSize, func(st *Style, path string) error {
			return EngineRadar(st, benchdata.EngineScores(), path)
		}},
		{"cost", CostSize, func(st *Style, path string) error {
			return CostBenefit(st, benchdata.CostBenefit(), path)
		}},
	}
}

func TestChartsWritePNGWithFigureSize(t *testing.T) {
	st := testStyle(t)
	dir := t.TempDir()

	for _, tc := range renderCases() {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, st.Filename(tc.name))
			if err := tc.render(st, path); err != nil {
				t.Fatalf("render error = %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("Failed to open %s: %v", path, err)
			}
			defer f.Close()
			cfg, format, err := image.DecodeConfig(f)
			if err != nil {
				t.Fatalf("DecodeConfig() error = %v", err)
			}
			if format != "png" {
				t.Errorf("format = %q, want png", format)
			}
			wantW, wantH := tc.size.Pixels(testDPI)
			if cfg.Width != wantW || cfg.Height != wantH {
				t.Errorf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, wantW, wantH)
			}
		})
	}
}

func TestChartsAreDeterministic(t *testing.T) {
	st := testStyle(t)
	dir := t.TempDir()

	for _, tc := range renderCases() {
		t.Run(tc.name, func(t *testing.T) {
			a := filepath.Join(dir, tc.name+"_a.png")
			b := filepath.Join(dir, tc.name+"_b.png")
			if err := tc.render(st, a); err != nil {
				t.Fatalf("first render error = %v", err)
			}
			if err := tc.render(st, b); err != nil {
				t.Fatalf("second render error = %v", err)
			}
			da, _ := os.ReadFile(a)
			db, _ := os.ReadFile(b)
			if !bytes.Equal(da, db) {
				t.Errorf("two renders of %s differ", tc.name)
			}
		})
	}
}

func TestVectorFormats(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{FormatSVG, FormatPDF} {
		t.Run(format, func(t *testing.T) {
			st := testStyle(t)
			st.Format = format
			path := filepath.Join(dir, st.Filename("radar"))
			if err := EngineRadar(st, benchdata.EngineScores(), path); err != nil {
				t.Fatalf("EngineRadar() error = %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("Stat() error = %v", err)
			}
			if info.Size() == 0 {
				t.Errorf("%s output is empty", format)
			}
			if format == FormatPDF {
				head, _ := os.ReadFile(path)
				if !bytes.HasPrefix(head, []byte("%PDF")) {
					t.Error("pdf output has no PDF header")
				}
			}
		})
	}
}

func TestTextStyleWeight(t *testing.T) {
	tests := []struct {
		format string
		want   xfont.Weight
	}{
		{FormatPNG, xfont.WeightBold},
		{FormatSVG, xfont.WeightBold},
		{FormatPDF, xfont.WeightNormal},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			st := testStyle(t)
			st.Format = tt.format
			if got := st.textStyle(st.TitleSize, true).Font.Weight; got != tt.want {
				t.Errorf("bold title weight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderIntoMissingDirectoryFails(t *testing.T) {
	st := testStyle(t)
	path := filepath.Join(t.TempDir(), "missing", "chart.png")
	if err := CostBenefit(st, benchdata.CostBenefit(), path); err == nil {
		t.Error("CostBenefit() into a missing directory should fail")
	}
}

func TestBarLabels(t *testing.T) {
	got := BarLabels([]float64{1245.67, 0, 1198.45, 1180.96}, 0, "%.0f")

	wantLabels := []string{"1246", "1198", "1181"}
	wantX := []float64{0, 2, 3}
	if len(got.Labels) != len(wantLabels) {
		t.Fatalf("got %d labels, want %d: %v", len(got.Labels), len(wantLabels), got.Labels)
	}
	for i := range wantLabels {
		if got.Labels[i] != wantLabels[i] {
			t.Errorf("label %d = %q, want %q", i, got.Labels[i], wantLabels[i])
		}
		if got.XYs[i].X != wantX[i] {
			t.Errorf("label %d x = %v, want %v", i, got.XYs[i].X, wantX[i])
		}
	}
}

func TestBarLabelsCurrency(t *testing.T) {
	got := BarLabels(benchdata.CostBenefit().CostPerTPS(), 0, "¥%.1f")
	want := []string{"¥12.5", "¥12.5", "¥17.8"}
	for i := range want {
		if got.Labels[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, got.Labels[i], want[i])
		}
	}
}

func TestRadarAngles(t *testing.T) {
	angles := RadarAngles(6)
	if len(angles) != 7 {
		t.Fatalf("len(RadarAngles(6)) = %d, want 7", len(angles))
	}
	if angles[0] != angles[6] {
		t.Errorf("last angle %v does not close onto first %v", angles[6], angles[0])
	}
	step := 2 * math.Pi / 6
	for i := 1; i < 6; i++ {
		if d := angles[i] - angles[i-1]; math.Abs(d-step) > 1e-12 {
			t.Errorf("angle step %d = %v, want %v", i, d, step)
		}
	}
	if RadarAngles(0) != nil {
		t.Error("RadarAngles(0) should be nil")
	}
}

func TestPolarTransformKeepsRingsCircular(t *testing.T) {
	p := plot.New()
	p.X.Min, p.X.Max = -1, 1
	p.Y.Min, p.Y.Max = -1, 1
	c := draw.Canvas{Rectangle: vg.Rectangle{Max: vg.Point{X: 200, Y: 100}}}

	at := polarTransform(&c, p)
	center := at(0, 0)
	if center.X != 100 || center.Y != 50 {
		t.Fatalf("center = %v, want (100, 50)", center)
	}
	dist := func(pt vg.Point) float64 {
		return math.Hypot(float64(pt.X-center.X), float64(pt.Y-center.Y))
	}
	right, top := dist(at(0, 1)), dist(at(math.Pi/2, 1))
	if math.Abs(right-top) > 1e-9 {
		t.Errorf("ring radius is %v horizontally and %v vertically", right, top)
	}
	if math.Abs(top-50) > 1e-9 {
		t.Errorf("unit ring radius = %v, want 50", top)
	}
}

func TestClosePolygon(t *testing.T) {
	in := []float64{9, 6, 7}
	got := ClosePolygon(in)
	if len(got) != 4 || got[3] != 9 {
		t.Errorf("ClosePolygon(%v) = %v", in, got)
	}
	got[0] = 1
	if in[0] != 9 {
		t.Error("ClosePolygon modified its input")
	}
}

func TestNewRadarSeriesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
	}{
		{"too few", []float64{1, 2}},
		{"negative", []float64{1, -2, 3}},
		{"nan", []float64{1, math.NaN(), 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRadarSeries(tt.scores); err == nil {
				t.Errorf("NewRadarSeries(%v) expected error", tt.scores)
			}
		})
	}
}

func TestEngineRadarRejectsMisalignedScores(t *testing.T) {
	st := testStyle(t)
	data := benchdata.EngineScores()
	data.Series[0].Values = data.Series[0].Values[:3]
	if err := EngineRadar(st, data, filepath.Join(t.TempDir(), "r.png")); err == nil {
		t.Error("EngineRadar() with misaligned scores expected error")
	}
}

func TestIdealScaling(t *testing.T) {
	got := IdealScaling(178.5, []float64{1, 2, 4, 8, 16, 32})
	want := []float64{178.5, 357, 714, 1428, 2856, 5712}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("IdealScaling[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAreaRadius(t *testing.T) {
	tests := []struct {
		area float64
		want vg.Length
	}{
		{100, 5},
		{400, 10},
		{0, 0},
	}
	for _, tt := range tests {
		if got := areaRadius(tt.area); math.Abs(float64(got-tt.want)) > 1e-9 {
			t.Errorf("areaRadius(%v) = %v, want %v", tt.area, got, tt.want)
		}
	}
}

func TestCostColorCyclesPalette(t *testing.T) {
	st := testStyle(t)
	for i, idx := range costPalette {
		if got, want := costColor(st, i), fade(st.Color(idx), 0.7); got != want {
			t.Errorf("costColor(%d) = %v, want %v", i, got, want)
		}
	}
	if costColor(st, len(costPalette)) != costColor(st, 0) {
		t.Error("costColor does not wrap around the palette")
	}
}

func TestCostPerTPS(t *testing.T) {
	cb := models.CostBenefit{
		Configs:     []string{"a", "b"},
		Costs:       []float64{15000, 100},
		Performance: []float64{1200, 0},
	}
	got := cb.CostPerTPS()
	if got[0] != 12.5 {
		t.Errorf("CostPerTPS()[0] = %v, want 12.5", got[0])
	}
	if got[1] != 0 {
		t.Errorf("CostPerTPS()[1] = %v, want 0 for zero performance", got[1])
	}
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Style)
	}{
		{"zero dpi", func(st *Style) { st.DPI = 0 }},
		{"bad format", func(st *Style) { st.Format = "gif" }},
		{"empty palette", func(st *Style) { st.Palette = nil }},
		{"no handler", func(st *Style) { st.Handler = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := DefaultStyle()
			tt.mutate(st)
			if err := st.Validate(); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestParsePalette(t *testing.T) {
	if _, err := ParsePalette([]string{"#1f77b4", "nope"}); err == nil {
		t.Error("ParsePalette() with invalid color expected error")
	}
	if _, err := ParsePalette(nil); err == nil {
		t.Error("ParsePalette(nil) expected error")
	}
	p, err := ParsePalette([]string{" #ff0000 "})
	if err != nil {
		t.Fatalf("ParsePalette() error = %v", err)
	}
	r, g, b, _ := p[0].RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("ParsePalette(#ff0000) = %v", p[0])
	}
}

func TestSizePixels(t *testing.T) {
	w, h := ComparisonSize.Pixels(300)
	if w != 4800 || h != 2400 {
		t.Errorf("ComparisonSize.Pixels(300) = %dx%d, want 4800x2400", w, h)
	}
}
