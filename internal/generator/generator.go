// Package generator runs the chart steps in order, then writes the reports
// that reference their output.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"github.com/user/mysql-charts-go/internal/benchdata"
	"github.com/user/mysql-charts-go/internal/chart"
	"github.com/user/mysql-charts-go/internal/collector"
	"github.com/user/mysql-charts-go/internal/models"
	"github.com/user/mysql-charts-go/internal/report"
)

// Step names that are not chart steps.
const (
	StepStyle      = "chart style"
	StepOutputDir  = "create output directory"
	StepHTMLReport = "HTML report"
	StepJSONReport = "JSON report"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const rule = "=================================================="

// StepError reports which step of a run failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Options configures a run. Zero values pick sensible defaults except Style,
// which is required.
type Options struct {
	OutputDir string
	Style     *chart.Style
	WriteJSON bool

	// Now supplies the report timestamp. Defaults to time.Now.
	Now func() time.Time
	// Out receives the status lines. Defaults to io.Discard.
	Out       io.Writer
	Logger    *charmlog.Logger
	Collector *collector.MetadataCollector
	// Data overrides the built-in benchmark results.
	Data *models.Benchmarks
}

// Result describes a finished run.
type Result struct {
	// OutputDir is absolute.
	OutputDir string
	Artifacts []models.Artifact
	Metadata  models.RunMetadata
}

// Run creates the output directory, renders every chart into it and writes the
// reports. It stops at the first failing step and returns a *StepError; files
// from completed steps are left in place.
func Run(ctx context.Context, opts Options) (*Result, error) {
	r := &runner{opts: opts}
	r.defaults()
	res, err := r.run(ctx)
	if err != nil {
		r.printf("%s\n", failStyle.Render(fmt.Sprintf("❌ Chart generation failed at step %s: %v", stepOf(err), unwrapStep(err))))
		return nil, err
	}
	return res, nil
}

type runner struct {
	opts Options
	log  *charmlog.Logger
	out  io.Writer
}

func (r *runner) defaults() {
	if r.opts.Now == nil {
		r.opts.Now = time.Now
	}
	r.out = r.opts.Out
	if r.out == nil {
		r.out = io.Discard
	}
	r.log = r.opts.Logger
	if r.log == nil {
		r.log = charmlog.New(io.Discard)
	}
	if r.opts.OutputDir == "" {
		r.opts.OutputDir = "charts"
	}
}

func (r *runner) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *runner) run(ctx context.Context) (*Result, error) {
	st := r.opts.Style
	if st == nil {
		return nil, &StepError{Step: StepStyle, Err: fmt.Errorf("no chart style configured")}
	}
	if err := st.Validate(); err != nil {
		return nil, &StepError{Step: StepStyle, Err: err}
	}

	data := benchdata.All()
	if r.opts.Data != nil {
		data = *r.opts.Data
	}

	r.printf("%s\n%s\n", headerStyle.Render("🚀 Generating MySQL performance test charts..."), rule)

	dir, err := filepath.Abs(r.opts.OutputDir)
	if err != nil {
		return nil, &StepError{Step: StepOutputDir, Err: err}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StepError{Step: StepOutputDir, Err: fmt.Errorf("failed to create output directory: %w", err)}
	}
	r.log.Debug("output directory ready", "dir", dir)

	res := &Result{OutputDir: dir}
	var sections []models.Section
	for _, cs := range Charts() {
		if err := ctx.Err(); err != nil {
			return nil, &StepError{Step: cs.Step, Err: err}
		}
		art := models.Artifact{Filename: st.Filename(cs.Base), Kind: models.ArtifactImage, Description: cs.Label}
		start := time.Now()
		if err := cs.Render(st, data, filepath.Join(dir, art.Filename)); err != nil {
			return nil, &StepError{Step: cs.Step, Err: err}
		}
		r.log.Debug("chart rendered", "step", cs.Step, "file", art.Filename, "elapsed", time.Since(start))
		r.printf("%s\n", okStyle.Render(fmt.Sprintf("✅ %s generated: %s", cs.Label, art.Filename)))

		section := cs.Section
		section.Image = art
		sections = append(sections, section)
		res.Artifacts = append(res.Artifacts, art)
	}

	if r.opts.Collector != nil {
		res.Metadata = r.opts.Collector.Collect(r.opts.Now())
	} else {
		res.Metadata = models.RunMetadata{GeneratedAt: r.opts.Now(), Version: collector.Version}
	}

	reportData := &models.ReportData{
		Metadata:  res.Metadata,
		Databases: benchdata.Products(),
		Engines:   benchdata.Engines(),
		Tools:     benchdata.Tools(),
		Sections:  sections,
		Artifacts: res.Artifacts,
	}

	html := models.Artifact{Filename: HTMLReportFile, Kind: models.ArtifactHTML, Description: "HTML summary report"}
	if err := r.writeReport(ctx, StepHTMLReport, &report.HTMLReportAdapter{}, reportData, filepath.Join(dir, html.Filename)); err != nil {
		return nil, err
	}
	res.Artifacts = append(res.Artifacts, html)
	r.printf("%s\n", okStyle.Render("✅ HTML chart report generated: "+html.Filename))

	if r.opts.WriteJSON {
		js := models.Artifact{Filename: JSONReportFile, Kind: models.ArtifactJSON, Description: "JSON report"}
		reportData.Artifacts = append(append([]models.Artifact(nil), res.Artifacts...), js)
		reportData.Benchmarks = &data
		if err := r.writeReport(ctx, StepJSONReport, &report.JSONReportAdapter{}, reportData, filepath.Join(dir, js.Filename)); err != nil {
			return nil, err
		}
		res.Artifacts = append(res.Artifacts, js)
		r.printf("%s\n", okStyle.Render("✅ JSON report generated: "+js.Filename))
	}

	r.summary(res)
	return res, nil
}

func (r *runner) writeReport(ctx context.Context, step string, adapter report.ReportAdapter, data *models.ReportData, path string) error {
	if err := ctx.Err(); err != nil {
		return &StepError{Step: step, Err: err}
	}
	if err := adapter.PrepareData(data); err != nil {
		return &StepError{Step: step, Err: err}
	}
	if err := adapter.Write(path); err != nil {
		return &StepError{Step: step, Err: err}
	}
	r.log.Debug("report written", "step", step, "path", path)
	return nil
}

func (r *runner) summary(res *Result) {
	width := 0
	for _, a := range res.Artifacts {
		width = max(width, len(a.Filename))
	}
	r.printf("%s\n", rule)
	r.printf("%s\n", headerStyle.Render("🎉 All charts generated!"))
	r.printf("📁 Output directory: %s\n", res.OutputDir)
	r.printf("📊 Files:\n")
	for _, a := range res.Artifacts {
		pad := strings.Repeat(" ", width-len(a.Filename))
		r.printf("  - %s%s  %s\n", a.Filename, pad, mutedStyle.Render("("+a.Description+")"))
	}
}

func stepOf(err error) string {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return "unknown"
}

func unwrapStep(err error) error {
	var se *StepError
	if errors.As(err, &se) {
		return se.Err
	}
	return err
}
