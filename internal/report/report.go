package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/mysql-charts-go/internal/models"
)

// TimestampLayout is how the generation time appears in reports.
const TimestampLayout = "2006-01-02 15:04:05"

//go:embed templates/report.html.tmpl
var templateFS embed.FS

const templateName = "report.html.tmpl"

// ReportAdapter defines the interface for generating different report formats.
type ReportAdapter interface {
	PrepareData(data *models.ReportData) error
	Write(outputFilePath string) error
}

// --- JSON Report Adapter ---

// JSONReportAdapter writes the run manifest and datasets as JSON.
type JSONReportAdapter struct {
	reportData []byte
}

// PrepareData marshals the report data into indented JSON.
func (jra *JSONReportAdapter) PrepareData(data *models.ReportData) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data to JSON: %w", err)
	}
	jra.reportData = append(jsonData, '\n')
	return nil
}

// Write saves the JSON report data to the specified output file.
func (jra *JSONReportAdapter) Write(outputFilePath string) error {
	return writeFile(outputFilePath, jra.reportData)
}

// --- HTML Report Adapter ---

// HTMLReportAdapter renders a static page that embeds the chart images by filename.
type HTMLReportAdapter struct {
	reportBuf bytes.Buffer
}

var templateFuncs = template.FuncMap{
	"FormatDateTime": func(t time.Time) string {
		return t.Format(TimestampLayout)
	},
	"ShortSha": func(sha string) string {
		if len(sha) > 8 {
			return sha[:8]
		}
		return sha
	},
	"CommitMsgShort": func(msg string) string {
		return strings.SplitN(msg, "\n", 2)[0]
	},
	"Join": func(items []string) string {
		return strings.Join(items, ", ")
	},
	"Inc": func(i int) int { return i + 1 },
}

func parseTemplate() (*template.Template, error) {
	return template.New(templateName).Funcs(templateFuncs).ParseFS(templateFS, "templates/"+templateName)
}

// PrepareData renders the HTML page into memory. Every section image must be
// one of the artifacts of the same run.
func (hra *HTMLReportAdapter) PrepareData(data *models.ReportData) error {
	produced := make(map[string]bool, len(data.Artifacts))
	for _, a := range data.Artifacts {
		if a.Kind == models.ArtifactImage {
			produced[a.Filename] = true
		}
	}
	for _, s := range data.Sections {
		if !produced[s.Image.Filename] {
			return fmt.Errorf("section %q references %s, which this run did not produce", s.Heading, s.Image.Filename)
		}
	}

	tmpl, err := parseTemplate()
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	hra.reportBuf.Reset()
	if err := tmpl.Execute(&hra.reportBuf, data); err != nil {
		return fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return nil
}

// Write saves the HTML report data to the specified output file.
func (hra *HTMLReportAdapter) Write(outputFilePath string) error {
	return writeFile(outputFilePath, hra.reportBuf.Bytes())
}

func writeFile(path string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("report for %s is empty; call PrepareData first", filepath.Base(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", path, err)
	}
	return nil
}
