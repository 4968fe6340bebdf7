package models

import "time"

// Series is one labelled row of measurements, aligned with the categories of its Dataset.
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Dataset is a named set of category labels with one or more series.
// A zero value inside a series is a placeholder for "not applicable".
type Dataset struct {
	Name       string   `json:"name"`
	Unit       string   `json:"unit,omitempty"`
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
}

// XYSeries is a series plotted against a numeric X axis (threads, hours).
type XYSeries struct {
	Label string    `json:"label"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

// Annotation is a text note with an arrow pointing at a data point.
type Annotation struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	TextX float64 `json:"text_x"`
	TextY float64 `json:"text_y"`
}

// PerformanceComparison holds the OLTP read-only and write-only TPS by database and engine.
type PerformanceComparison struct {
	ReadOnly  Dataset `json:"read_only"`
	WriteOnly Dataset `json:"write_only"`
}

// Scalability holds TPS per thread count for several database/engine pairs.
type Scalability struct {
	Threads  []float64  `json:"threads"`
	Series   []XYSeries `json:"series"`
	Baseline float64    `json:"baseline"`
}

// Stability holds TPS sampled over a long-running test.
type Stability struct {
	Series     []XYSeries `json:"series"`
	MaxHours   float64    `json:"max_hours"`
	Annotation Annotation `json:"annotation"`
}

// EngineScores holds per-engine scores (0 to MaxScore) across capability categories.
type EngineScores struct {
	Dataset
	MaxScore float64 `json:"max_score"`
}

// CostBenefit holds hardware configurations with their cost and measured performance.
type CostBenefit struct {
	Configs     []string  `json:"configs"`
	Costs       []float64 `json:"costs"`
	Performance []float64 `json:"performance"`
}

// CostPerTPS returns cost divided by performance for every configuration.
func (cb CostBenefit) CostPerTPS() []float64 {
	out := make([]float64, len(cb.Costs))
	for i := range cb.Costs {
		if i < len(cb.Performance) && cb.Performance[i] != 0 {
			out[i] = cb.Costs[i] / cb.Performance[i]
		}
	}
	return out
}

// Benchmarks bundles every dataset rendered by one run.
type Benchmarks struct {
	Performance PerformanceComparison `json:"performance"`
	Scalability Scalability           `json:"scalability"`
	Stability   Stability             `json:"stability"`
	Engines     EngineScores          `json:"engines"`
	Cost        CostBenefit           `json:"cost"`
}

// ArtifactKind classifies files written by a run.
type ArtifactKind string

const (
	ArtifactImage ArtifactKind = "image"
	ArtifactHTML  ArtifactKind = "html"
	ArtifactJSON  ArtifactKind = "json"
)

// Artifact is a file produced by a run, relative to the output directory.
type Artifact struct {
	Filename    string       `json:"filename"`
	Kind        ArtifactKind `json:"kind"`
	Description string       `json:"description"`
}

// Section is one chart section of the report.
type Section struct {
	Icon    string   `json:"icon"`
	Heading string   `json:"heading"`
	Image   Artifact `json:"image"`
	Intro   string   `json:"intro"`
	Bullets []Bullet `json:"bullets"`
}

// Bullet is a bold label followed by commentary.
type Bullet struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// RunMetadata describes when, where and from which revision a report was generated.
type RunMetadata struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Version     string        `json:"version"`
	User        string        `json:"user"`
	Hostname    string        `json:"hostname"`
	Platform    string        `json:"platform"`
	GoVersion   string        `json:"go_version"`
	Repo        *RepoMetadata `json:"repo,omitempty"`
}

// RepoMetadata contains details about the repository the tool ran in.
type RepoMetadata struct {
	URL    string        `json:"url,omitempty"`
	Branch string        `json:"branch"`
	Commit CommitDetails `json:"commit"`
}

// CommitDetails holds information about a specific commit, typically HEAD.
type CommitDetails struct {
	SHA         string    `json:"sha"`
	Date        time.Time `json:"date"`
	Contributor string    `json:"contributor"` // Format: "Name (email)"
	Message     string    `json:"message"`
}

// ReportData is everything a report adapter needs.
type ReportData struct {
	Metadata   RunMetadata `json:"metadata"`
	Databases  []string    `json:"databases"`
	Engines    []string    `json:"engines"`
	Tools      []string    `json:"tools"`
	Sections   []Section   `json:"sections"`
	Artifacts  []Artifact  `json:"artifacts"`
	Benchmarks *Benchmarks `json:"benchmarks,omitempty"`
}
