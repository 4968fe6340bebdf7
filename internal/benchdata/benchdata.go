// Package benchdata holds the MySQL benchmark results rendered by the charts.
// Every function returns fresh slices so callers may modify them freely.
package benchdata

import "github.com/user/mysql-charts-go/internal/models"

var (
	databases = []string{"Percona 8.0", "Oracle 8.0", "MariaDB 10.x", "Facebook 5.6"}
	engines   = []string{"InnoDB", "MyISAM", "RocksDB"}
)

// Databases returns the database versions under test.
func Databases() []string { return append([]string(nil), databases...) }

// Engines returns the storage engines under test.
func Engines() []string { return append([]string(nil), engines...) }

// Products returns the full product names of the databases under test.
func Products() []string {
	return []string{"Percona Server 8.0", "Oracle MySQL 8.0", "MariaDB 10.x", "Facebook MySQL 5.6"}
}

// Tools returns the load generators that produced the results.
func Tools() []string {
	return []string{"sysbench 1.0.20", "custom performance test suite"}
}

// Performance returns OLTP read-only and write-only TPS per database and engine.
// Oracle MySQL does not ship RocksDB, so its entry is a zero placeholder.
func Performance() models.PerformanceComparison {
	return models.PerformanceComparison{
		ReadOnly: models.Dataset{
			Name:       "OLTP Read-Only Performance",
			Unit:       "TPS",
			Categories: Databases(),
			Series: []models.Series{
				{Label: "InnoDB", Values: []float64{1420.85, 1380.92, 1320.67, 1250.43}},
				{Label: "MyISAM", Values: []float64{1620.45, 1580.76, 1520.34, 1450.28}},
				{Label: "RocksDB", Values: []float64{1245.67, 0, 1198.45, 1180.96}},
			},
		},
		WriteOnly: models.Dataset{
			Name:       "OLTP Write-Only Performance",
			Unit:       "TPS",
			Categories: Databases(),
			Series: []models.Series{
				{Label: "InnoDB", Values: []float64{1025.89, 985.23, 920.67, 890.45}},
				{Label: "MyISAM", Values: []float64{495.34, 485.67, 465.78, 450.23}},
				{Label: "RocksDB", Values: []float64{1320.67, 0, 1285.45, 1250.89}},
			},
		},
	}
}

// Scalability returns read-load TPS as the thread count doubles.
func Scalability() models.Scalability {
	threads := []float64{1, 2, 4, 8, 16, 32}
	xs := func() []float64 { return append([]float64(nil), threads...) }
	return models.Scalability{
		Threads:  xs(),
		Baseline: 178.5,
		Series: []models.XYSeries{
			{Label: "Percona 8.0 (InnoDB)", X: xs(), Y: []float64{178.5, 348.7, 685.3, 1325.8, 2450.7, 4250.3}},
			{Label: "Percona 8.0 (RocksDB)", X: xs(), Y: []float64{162.4, 315.8, 620.9, 1205.4, 2180.6, 3780.9}},
			{Label: "Oracle 8.0 (InnoDB)", X: xs(), Y: []float64{172.8, 335.9, 660.2, 1280.5, 2380.9, 4120.6}},
			{Label: "MariaDB 10.x (InnoDB)", X: xs(), Y: []float64{165.7, 318.4, 620.8, 1205.6, 2250.3, 3890.2}},
		},
	}
}

// Stability returns TPS sampled every two hours over a 24 hour run.
func Stability() models.Stability {
	hours := func() []float64 {
		hs := make([]float64, 0, 13)
		for h := 0; h <= 24; h += 2 {
			hs = append(hs, float64(h))
		}
		return hs
	}
	return models.Stability{
		MaxHours: 24,
		Series: []models.XYSeries{
			{Label: "Percona Server 8.0", X: hours(), Y: []float64{1325.8, 1322.4, 1318.9, 1315.2, 1312.7, 1310.1, 1308.5, 1307.2, 1306.1, 1305.3, 1304.8, 1304.2, 1303.9}},
			{Label: "Oracle MySQL 8.0", X: hours(), Y: []float64{1280.5, 1276.8, 1273.1, 1269.4, 1266.8, 1264.2, 1262.3, 1260.8, 1259.5, 1258.4, 1257.6, 1256.9, 1256.3}},
			{Label: "MariaDB 10.x", X: hours(), Y: []float64{1205.6, 1201.2, 1198.7, 1195.1, 1192.6, 1190.1, 1188.4, 1186.9, 1185.7, 1184.6, 1183.8, 1183.1, 1182.5}},
			{Label: "Facebook MySQL 5.6", X: hours(), Y: []float64{1125.4, 1121.8, 1118.5, 1115.2, 1112.7, 1110.1, 1108.9, 1107.5, 1106.3, 1105.4, 1104.7, 1104.1, 1103.6}},
		},
		Annotation: models.Annotation{
			Text: "Performance decay: 1.3%",
			X:    20, Y: 1305,
			TextX: 16, TextY: 1315,
		},
	}
}

// EngineScores returns 0-10 capability scores per storage engine.
func EngineScores() models.EngineScores {
	return models.EngineScores{
		MaxScore: 10,
		Dataset: models.Dataset{
			Name: "Storage Engine Comparison",
			Unit: "score",
			Categories: []string{
				"Read Performance", "Write Performance", "Concurrency",
				"Memory Efficiency", "Storage Efficiency", "Transactions",
			},
			Series: []models.Series{
				{Label: "InnoDB", Values: []float64{8, 8, 9, 6, 7, 10}},
				{Label: "MyISAM", Values: []float64{10, 4, 4, 9, 8, 0}},
				{Label: "RocksDB", Values: []float64{6, 10, 8, 7, 10, 7}},
			},
		},
	}
}

// CostBenefit returns hardware cost (RMB) against measured TPS.
func CostBenefit() models.CostBenefit {
	return models.CostBenefit{
		Configs:     []string{"Entry", "Standard", "High Performance"},
		Costs:       []float64{15000, 35000, 80000},
		Performance: []float64{1200, 2800, 4500},
	}
}

// All returns every dataset rendered by one run.
func All() models.Benchmarks {
	return models.Benchmarks{
		Performance: Performance(),
		Scalability: Scalability(),
		Stability:   Stability(),
		Engines:     EngineScores(),
		Cost:        CostBenefit(),
	}
}
