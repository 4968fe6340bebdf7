package generator

import (
	"github.com/user/mysql-charts-go/internal/chart"
	"github.com/user/mysql-charts-go/internal/models"
)

// Output filenames that do not depend on the image format.
const (
	HTMLReportFile = "mysql_charts_report.html"
	JSONReportFile = "mysql_charts_report.json"
)

// ChartSpec is one chart step: what to render, where, and how the report describes it.
type ChartSpec struct {
	Step    string
	Base    string
	Label   string
	Section models.Section
	Render  func(st *chart.Style, b models.Benchmarks, path string) error
}

// Charts returns the chart steps in the order they run.
func Charts() []ChartSpec {
	return []ChartSpec{
		{
			Step:  "performance comparison",
			Base:  "mysql_performance_comparison",
			Label: "Performance comparison chart",
			Render: func(st *chart.Style, b models.Benchmarks, path string) error {
				return chart.PerformanceComparison(st, b.Performance, path)
			},
			Section: models.Section{
				Icon:    "📊",
				Heading: "Overall Performance Comparison",
				Intro:   "The chart shows how each database version performs under OLTP read and write workloads. Key findings:",
				Bullets: []models.Bullet{
					{Label: "Read performance", Text: "The MyISAM engine generally leads by 15-20%"},
					{Label: "Write performance", Text: "The RocksDB engine performs best, 30-50% ahead"},
					{Label: "Overall ranking", Text: "Percona Server 8.0 performs best overall"},
				},
			},
		},
		{
			Step:  "scalability",
			Base:  "mysql_scalability_chart",
			Label: "Scalability chart",
			Render: func(st *chart.Style, b models.Benchmarks, path string) error {
				return chart.Scalability(st, b.Scalability, path)
			},
			Section: models.Section{
				Icon:    "📈",
				Heading: "Multi-Thread Scalability Analysis",
				Intro:   "The chart analyzes how each database scales with concurrency:",
				Bullets: []models.Bullet{
					{Label: "Scaling efficiency", Text: "All databases reach 90%+ scaling efficiency at 32 threads"},
					{Label: "Best configuration", Text: "16 threads is the most cost-effective concurrency level"},
					{Label: "Top performer", Text: "Percona Server 8.0 shows the best scalability"},
				},
			},
		},
		{
			Step:  "stability",
			Base:  "mysql_stability_chart",
			Label: "Stability chart",
			Render: func(st *chart.Style, b models.Benchmarks, path string) error {
				return chart.Stability(st, b.Stability, path)
			},
			Section: models.Section{
				Icon:    "⏱️",
				Heading: "Long-Term Stability Test",
				Intro:   "Results of the 24-hour continuous load test:",
				Bullets: []models.Bullet{
					{Label: "Performance decay", Text: "All databases lose less than 2% over 24 hours"},
					{Label: "Stability ranking", Text: "Percona 8.0 > Oracle 8.0 > MariaDB > Facebook 5.6"},
					{Label: "Production readiness", Text: "All tested databases are stable enough for production"},
				},
			},
		},
		{
			Step:  "engine radar",
			Base:  "mysql_engine_radar",
			Label: "Storage engine radar chart",
			Render: func(st *chart.Style, b models.Benchmarks, path string) error {
				return chart.EngineRadar(st, b.Engines, path)
			},
			Section: models.Section{
				Icon:    "🎯",
				Heading: "Storage Engine Comparison",
				Intro:   "Storage engine characteristics:",
				Bullets: []models.Bullet{
					{Label: "InnoDB", Text: "Balanced overall performance with full transaction support"},
					{Label: "MyISAM", Text: "Excellent read performance and high memory efficiency"},
					{Label: "RocksDB", Text: "Outstanding write performance and the best storage efficiency"},
				},
			},
		},
		{
			Step:  "cost benefit",
			Base:  "mysql_cost_benefit",
			Label: "Cost-benefit chart",
			Render: func(st *chart.Style, b models.Benchmarks, path string) error {
				return chart.CostBenefit(st, b.Cost, path)
			},
			Section: models.Section{
				Icon:    "💰",
				Heading: "Cost-Benefit Analysis",
				Intro:   "Return on hardware investment:",
				Bullets: []models.Bullet{
					{Label: "Entry configuration", Text: "Suits small applications, average value"},
					{Label: "Standard configuration", Text: "Best value, recommended for mid-sized businesses"},
					{Label: "High-performance configuration", Text: "Suits core workloads with a significant performance gain"},
				},
			},
		},
	}
}
