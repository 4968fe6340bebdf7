package benchdata

import (
	"testing"

	"github.com/user/mysql-charts-go/internal/models"
)

func TestPerformanceSeriesAlignWithDatabases(t *testing.T) {
	perf := Performance()
	for _, ds := range []struct {
		name string
		n    int
		lens []int
	}{
		{"read", len(perf.ReadOnly.Categories), seriesLens(perf.ReadOnly.Series)},
		{"write", len(perf.WriteOnly.Categories), seriesLens(perf.WriteOnly.Series)},
	} {
		for i, l := range ds.lens {
			if l != ds.n {
				t.Errorf("%s series %d has %d values, want %d", ds.name, i, l, ds.n)
			}
		}
	}
	// Oracle does not support RocksDB.
	if got := perf.ReadOnly.Series[2].Values[1]; got != 0 {
		t.Errorf("Oracle RocksDB read placeholder = %v, want 0", got)
	}
}

func TestStabilityCoversFullDay(t *testing.T) {
	st := Stability()
	for _, s := range st.Series {
		if len(s.X) != 13 || len(s.Y) != 13 {
			t.Fatalf("series %q has %d/%d points, want 13", s.Label, len(s.X), len(s.Y))
		}
		if s.X[0] != 0 || s.X[12] != 24 {
			t.Errorf("series %q spans %v..%v, want 0..24", s.Label, s.X[0], s.X[12])
		}
	}
}

func TestFreshSlices(t *testing.T) {
	a := Databases()
	a[0] = "changed"
	if Databases()[0] != "Percona 8.0" {
		t.Error("Databases() returned shared backing array")
	}
	sc := Scalability()
	sc.Series[0].X[0] = 99
	if Scalability().Threads[0] != 1 {
		t.Error("Scalability() returned shared thread slice")
	}
}

func seriesLens(ss []models.Series) []int {
	lens := make([]int, len(ss))
	for i, s := range ss {
		lens[i] = len(s.Values)
	}
	return lens
}
