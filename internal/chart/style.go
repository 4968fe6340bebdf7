package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// DefaultPalette matches the colors used across the published benchmark charts.
var DefaultPalette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728"}

// Style carries every rendering setting a chart needs. Chart functions never
// touch the plot package defaults.
type Style struct {
	DPI    int
	Format string

	Font    font.Font
	Handler text.Handler

	Palette   []color.Color
	GridColor color.Color

	TitleSize      vg.Length
	LabelSize      vg.Length
	TickSize       vg.Length
	LegendSize     vg.Length
	AnnotationSize vg.Length
}

// DefaultStyle returns a 300 DPI PNG style using Liberation Sans.
func DefaultStyle() *Style {
	palette, err := ParsePalette(DefaultPalette)
	if err != nil {
		panic(err) // constant input
	}
	return &Style{
		DPI:            300,
		Format:         FormatPNG,
		Font:           font.Font{Typeface: "Liberation", Variant: "Sans"},
		Handler:        text.Plain{Fonts: font.NewCache(liberation.Collection())},
		Palette:        palette,
		GridColor:      color.NRGBA{R: 128, G: 128, B: 128, A: 77},
		TitleSize:      14,
		LabelSize:      12,
		TickSize:       10,
		LegendSize:     11,
		AnnotationSize: 9,
	}
}

// ParsePalette converts "#rrggbb" strings into colors.
func ParsePalette(hex []string) ([]color.Color, error) {
	if len(hex) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	out := make([]color.Color, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(strings.TrimSpace(h))
		if err != nil {
			return nil, fmt.Errorf("invalid palette color %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		out = append(out, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return out, nil
}

// Validate checks the style can produce output.
func (st *Style) Validate() error {
	if st.DPI <= 0 {
		return fmt.Errorf("DPI must be positive, got %d", st.DPI)
	}
	switch st.Format {
	case FormatPNG, FormatSVG, FormatPDF:
	default:
		return fmt.Errorf("unsupported image format %q", st.Format)
	}
	if len(st.Palette) == 0 {
		return fmt.Errorf("palette is empty")
	}
	if st.Handler == nil {
		return fmt.Errorf("text handler is not set")
	}
	return nil
}

// Filename appends the style's image extension to base.
func (st *Style) Filename(base string) string {
	return base + "." + st.Format
}

// Color returns the i-th palette color, wrapping around.
func (st *Style) Color(i int) color.Color {
	return st.Palette[i%len(st.Palette)]
}

// fade returns c with its alpha set to a (0..1).
func fade(c color.Color, a float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(a*255 + 0.5)
	return n
}

func (st *Style) textStyle(size vg.Length, bold bool) text.Style {
	fnt := font.From(st.Font, size)
	// vgpdf registers each face without a style, so a bold face cannot be
	// selected in PDF output.
	if bold && st.Format != FormatPDF {
		fnt.Weight = xfont.WeightBold
	}
	return text.Style{
		Color:   color.Black,
		Font:    fnt,
		XAlign:  draw.XLeft,
		YAlign:  draw.YBottom,
		Handler: st.Handler,
	}
}

// restyle swaps the font and handler of ts, keeping alignment and rotation.
func (st *Style) restyle(ts *text.Style, size vg.Length, bold bool) {
	base := st.textStyle(size, bold)
	ts.Font = base.Font
	ts.Handler = base.Handler
}

// newPlot returns a plot whose every text element uses the style's fonts.
func (st *Style) newPlot(title string) *plot.Plot {
	p := plot.New()
	p.TextHandler = st.Handler
	p.Title.Text = title
	p.Title.Padding = vg.Points(8)
	st.restyle(&p.Title.TextStyle, st.TitleSize, true)
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		st.restyle(&ax.Label.TextStyle, st.LabelSize, false)
		st.restyle(&ax.Tick.Label, st.TickSize, false)
	}
	st.restyle(&p.Legend.TextStyle, st.LegendSize, false)
	return p
}

func (st *Style) grid() *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Color = st.GridColor
	g.Horizontal.Color = st.GridColor
	return g
}

// canvas creates a writable canvas of the configured format.
func (st *Style) canvas(w, h vg.Length) (vg.CanvasWriterTo, error) {
	switch st.Format {
	case FormatPNG:
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(st.DPI))}, nil
	case FormatSVG:
		return vgsvg.New(w, h), nil
	case FormatPDF:
		return vgpdf.New(w, h), nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", st.Format)
	}
}

// save draws one row of panels side by side and writes them to path.
func (st *Style) save(path string, w, h vg.Length, panels ...*plot.Plot) error {
	if len(panels) == 0 {
		return fmt.Errorf("no panels to render for %s", path)
	}
	c, err := st.canvas(w, h)
	if err != nil {
		return err
	}
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(panels),
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(6),
		PadX:      vg.Points(24),
	}
	canvases := plot.Align([][]*plot.Plot{panels}, tiles, dc)
	for i, p := range panels {
		p.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", filepath.Base(path), err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write chart %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chart file %s: %w", filepath.Base(path), err)
	}
	return nil
}
