package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/user/mysql-charts-go/internal/benchdata"
	"github.com/user/mysql-charts-go/internal/chart"
	"github.com/user/mysql-charts-go/internal/report"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

func testOptions(t *testing.T, dir string) (Options, *bytes.Buffer) {
	t.Helper()
	st := chart.DefaultStyle()
	st.DPI = 20
	var out bytes.Buffer
	return Options{
		OutputDir: dir,
		Style:     st,
		Now:       func() time.Time { return fixedNow },
		Out:       &out,
	}, &out
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s) error = %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestRunProducesSixFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	opts, out := testOptions(t, dir)

	res, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{
		"mysql_charts_report.html",
		"mysql_cost_benefit.png",
		"mysql_engine_radar.png",
		"mysql_performance_comparison.png",
		"mysql_scalability_chart.png",
		"mysql_stability_chart.png",
	}
	got := listFiles(t, dir)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("files = %v, want %v", got, want)
	}
	for _, name := range got {
		info, _ := os.Stat(filepath.Join(dir, name))
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	if !filepath.IsAbs(res.OutputDir) {
		t.Errorf("OutputDir %q is not absolute", res.OutputDir)
	}
	if len(res.Artifacts) != 6 {
		t.Errorf("got %d artifacts, want 6", len(res.Artifacts))
	}

	status := out.String()
	if n := strings.Count(status, "✅"); n != 6 {
		t.Errorf("status has %d success lines, want 6:\n%s", n, status)
	}
	if !strings.Contains(status, res.OutputDir) {
		t.Errorf("status does not mention output directory %s", res.OutputDir)
	}
}

func TestRunHTMLReferencesChartsAndTimestamp(t *testing.T) {
	dir := t.TempDir()
	opts, _ := testOptions(t, dir)
	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, HTMLReportFile))
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	html := string(content)

	srcs := regexp.MustCompile(`<img src="([^"]+)"`).FindAllStringSubmatch(html, -1)
	if len(srcs) != len(Charts()) {
		t.Fatalf("found %d <img src>, want %d", len(srcs), len(Charts()))
	}
	for i, cs := range Charts() {
		if srcs[i][1] != cs.Base+".png" {
			t.Errorf("img %d src = %q, want %q", i, srcs[i][1], cs.Base+".png")
		}
		if _, err := os.Stat(filepath.Join(dir, srcs[i][1])); err != nil {
			t.Errorf("referenced image %s missing: %v", srcs[i][1], err)
		}
	}

	if !strings.Contains(html, fixedNow.Format("2006-01-02 15:04")) {
		t.Errorf("report does not contain run timestamp %s", fixedNow.Format(report.TimestampLayout))
	}
}

func TestRunWithJSON(t *testing.T) {
	dir := t.TempDir()
	opts, _ := testOptions(t, dir)
	opts.WriteJSON = true

	res, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(listFiles(t, dir)) != 7 {
		t.Errorf("files = %v, want 7 with JSON", listFiles(t, dir))
	}
	content, err := os.ReadFile(filepath.Join(dir, JSONReportFile))
	if err != nil {
		t.Fatalf("Failed to read JSON report: %v", err)
	}
	if !bytes.Contains(content, []byte(`"benchmarks"`)) || !bytes.Contains(content, []byte(JSONReportFile)) {
		t.Error("JSON report is missing benchmarks or its own artifact entry")
	}
	if last := res.Artifacts[len(res.Artifacts)-1]; last.Filename != JSONReportFile {
		t.Errorf("last artifact = %s, want %s", last.Filename, JSONReportFile)
	}
}

func TestRunBlockedOutputDir(t *testing.T) {
	parent := t.TempDir()
	blocked := filepath.Join(parent, "charts")
	if err := os.WriteFile(blocked, []byte("not a directory"), 0644); err != nil {
		t.Fatalf("Failed to create blocking file: %v", err)
	}
	opts, out := testOptions(t, blocked)

	_, err := Run(context.Background(), opts)
	if err == nil {
		t.Fatal("Run() into a blocked output directory expected error")
	}
	var se *StepError
	if !errors.As(err, &se) || se.Step != StepOutputDir {
		t.Errorf("error = %v, want StepError at %q", err, StepOutputDir)
	}
	if got := listFiles(t, parent); len(got) != 1 {
		t.Errorf("files = %v, want only the blocking file", got)
	}
	if !strings.Contains(out.String(), "❌ Chart generation failed at step "+StepOutputDir) {
		t.Errorf("status does not report the failing step:\n%s", out.String())
	}
}

func TestRunStopsAtFailingStep(t *testing.T) {
	dir := t.TempDir()
	opts, _ := testOptions(t, dir)
	b := benchdata.All()
	b.Engines.Series[0].Values = b.Engines.Series[0].Values[:2]
	opts.Data = &b

	_, err := Run(context.Background(), opts)
	var se *StepError
	if !errors.As(err, &se) || se.Step != "engine radar" {
		t.Fatalf("error = %v, want StepError at engine radar", err)
	}
	// Earlier charts stay; later steps never ran.
	got := listFiles(t, dir)
	want := []string{"mysql_performance_comparison.png", "mysql_scalability_chart.png", "mysql_stability_chart.png"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts, _ := testOptions(t, t.TempDir())

	_, err := Run(ctx, opts)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunRequiresStyle(t *testing.T) {
	bad := chart.DefaultStyle()
	bad.DPI = 0
	tests := []struct {
		name  string
		style *chart.Style
	}{
		{"nil style", nil},
		{"invalid dpi", bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "charts")
			opts, out := testOptions(t, dir)
			opts.Style = tt.style

			_, err := Run(context.Background(), opts)
			var se *StepError
			if !errors.As(err, &se) || se.Step != StepStyle {
				t.Fatalf("error = %v, want StepError at %q", err, StepStyle)
			}
			if _, err := os.Stat(dir); !os.IsNotExist(err) {
				t.Errorf("output directory was created for a bad style")
			}
			if !strings.Contains(out.String(), "failed at step "+StepStyle) {
				t.Errorf("status does not report the style step:\n%s", out.String())
			}
		})
	}
}

func TestRunPDFFormat(t *testing.T) {
	dir := t.TempDir()
	opts, _ := testOptions(t, dir)
	opts.Style.Format = chart.FormatPDF

	res, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() with pdf format error = %v", err)
	}
	want := []string{
		"mysql_charts_report.html",
		"mysql_cost_benefit.pdf",
		"mysql_engine_radar.pdf",
		"mysql_performance_comparison.pdf",
		"mysql_scalability_chart.pdf",
		"mysql_stability_chart.pdf",
	}
	if got := listFiles(t, dir); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("files = %v, want %v", got, want)
	}
	for _, a := range res.Artifacts[:len(Charts())] {
		content, err := os.ReadFile(filepath.Join(dir, a.Filename))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", a.Filename, err)
		}
		if !bytes.HasPrefix(content, []byte("%PDF")) {
			t.Errorf("%s is not a PDF document", a.Filename)
		}
	}
}

func TestChartsOrder(t *testing.T) {
	want := []string{
		"mysql_performance_comparison",
		"mysql_scalability_chart",
		"mysql_stability_chart",
		"mysql_engine_radar",
		"mysql_cost_benefit",
	}
	specs := Charts()
	if len(specs) != len(want) {
		t.Fatalf("got %d chart steps, want %d", len(specs), len(want))
	}
	for i, cs := range specs {
		if cs.Base != want[i] {
			t.Errorf("step %d = %s, want %s", i, cs.Base, want[i])
		}
		if len(cs.Section.Bullets) != 3 {
			t.Errorf("%s has %d bullets, want 3", cs.Base, len(cs.Section.Bullets))
		}
	}
}
