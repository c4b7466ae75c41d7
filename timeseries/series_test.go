package timeseries

import (
	"math"
	"testing"
	"time"
)

func TestNewSeries(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	series := New(values)

	if series.Len() != 5 {
		t.Errorf("Expected length 5, got %d", series.Len())
	}
	if len(series.Timestamps) != 5 {
		t.Errorf("Expected 5 timestamps, got %d", len(series.Timestamps))
	}
}

func TestNewSeriesDeterministicIndex(t *testing.T) {
	a := New([]float64{1, 2, 3})
	b := New([]float64{4, 5, 6})

	for i := range a.Timestamps {
		if !a.Timestamps[i].Equal(b.Timestamps[i]) {
			t.Fatalf("Series created from the same positions should share an index, differ at %d", i)
		}
	}
}

func TestNewWithTimestampsMismatch(t *testing.T) {
	timestamps := []time.Time{time.Unix(0, 0), time.Unix(3600, 0)}
	_, err := NewWithTimestamps(timestamps, []float64{1, 2, 3})
	if err == nil {
		t.Fatal("Expected error for mismatched lengths")
	}
}

func TestSeriesStats(t *testing.T) {
	series := New([]float64{2, 4, 6, 8})

	if math.Abs(series.Mean()-5) > 1e-10 {
		t.Errorf("Expected mean 5, got %f", series.Mean())
	}
	if math.Abs(series.Min()-2) > 1e-10 {
		t.Errorf("Expected min 2, got %f", series.Min())
	}
	if math.Abs(series.Max()-8) > 1e-10 {
		t.Errorf("Expected max 8, got %f", series.Max())
	}

	// Sample variance of {2,4,6,8} is 20/3.
	if math.Abs(series.Variance()-20.0/3.0) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", 20.0/3.0, series.Variance())
	}
}

func TestSeriesStatsIgnoreNaN(t *testing.T) {
	series := New([]float64{math.NaN(), 4, 6})

	if math.Abs(series.Mean()-5) > 1e-10 {
		t.Errorf("Mean should ignore NaN entries, got %f", series.Mean())
	}
}

func TestLagN(t *testing.T) {
	series := Named("y", []float64{10, 20, 30, 40})
	lagged := series.LagN(2)

	if lagged.Len() != 4 {
		t.Fatalf("LagN should preserve length, got %d", lagged.Len())
	}
	if !math.IsNaN(lagged.Values[0]) || !math.IsNaN(lagged.Values[1]) {
		t.Error("First k entries of a lag-k series should be NaN")
	}
	if lagged.Values[2] != 10 || lagged.Values[3] != 20 {
		t.Errorf("Expected lagged values [10 20], got [%f %f]", lagged.Values[2], lagged.Values[3])
	}
	if lagged.Name != "y.L2" {
		t.Errorf("Expected name y.L2, got %s", lagged.Name)
	}
	if !lagged.Timestamps[0].Equal(series.Timestamps[0]) {
		t.Error("LagN should not shift the index")
	}
}

func TestSlice(t *testing.T) {
	series := New([]float64{1, 2, 3, 4, 5})
	sub := series.Slice(1, 4)

	if sub.Len() != 3 {
		t.Fatalf("Expected length 3, got %d", sub.Len())
	}
	if sub.Values[0] != 2 || sub.Values[2] != 4 {
		t.Errorf("Unexpected slice values: %v", sub.Values)
	}
}

func TestCopyIsDeep(t *testing.T) {
	series := New([]float64{1, 2, 3})
	dup := series.Copy()
	dup.Values[0] = 99

	if series.Values[0] != 1 {
		t.Error("Copy should not share backing storage")
	}
}
