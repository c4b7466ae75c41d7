package stats

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/goarmax/timeseries"
)

func testFrame(t *testing.T) *timeseries.Frame {
	t.Helper()

	// Deterministic pseudo-returns with differing scales and some
	// cross-correlation.
	n := 60
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	for i := 0; i < n; i++ {
		base := math.Sin(float64(i) * 0.7)
		a[i] = 0.01 * base
		b[i] = 0.02*base + 0.005*math.Cos(float64(i)*1.3)
		c[i] = 0.001 * math.Sin(float64(i)*2.1)
	}

	f, err := timeseries.FrameOf(
		timeseries.Named("a", a),
		timeseries.Named("b", b),
		timeseries.Named("c", c),
	)
	if err != nil {
		t.Fatalf("Failed to build frame: %v", err)
	}
	return f
}

func TestLedoitWolfSymmetricPSD(t *testing.T) {
	cov, err := LedoitWolf(testFrame(t), DefaultShrinkageOptions())
	if err != nil {
		t.Fatalf("LedoitWolf failed: %v", err)
	}

	p := cov.SymmetricDim()
	if p != 3 {
		t.Fatalf("Expected 3x3 covariance, got %dx%d", p, p)
	}

	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			if math.Abs(cov.At(i, j)-cov.At(j, i)) > 1e-12 {
				t.Errorf("Covariance not symmetric at (%d,%d)", i, j)
			}
		}
		if cov.At(i, i) < 0 {
			t.Errorf("Negative variance on diagonal at %d: %f", i, cov.At(i, i))
		}
	}

	// PSD: all eigenvalues non-negative.
	var eig mat.EigenSym
	if !eig.Factorize(cov, false) {
		t.Fatal("Eigendecomposition failed")
	}
	for _, v := range eig.Values(nil) {
		if v < -1e-10 {
			t.Errorf("Negative eigenvalue %f, covariance must be PSD", v)
		}
	}
}

func TestLedoitWolfFrequencyScaling(t *testing.T) {
	f := testFrame(t)

	annual, err := LedoitWolf(f, ShrinkageOptions{Frequency: 252})
	if err != nil {
		t.Fatalf("LedoitWolf failed: %v", err)
	}
	raw, err := LedoitWolf(f, ShrinkageOptions{Frequency: 1})
	if err != nil {
		t.Fatalf("LedoitWolf failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(annual.At(i, j)-252*raw.At(i, j)) > 1e-12 {
				t.Errorf("Frequency scaling mismatch at (%d,%d)", i, j)
			}
		}
	}
}

func TestLedoitWolfShrinksTowardMeanVariance(t *testing.T) {
	f := testFrame(t)

	shrunk, err := LedoitWolf(f, ShrinkageOptions{Frequency: 1})
	if err != nil {
		t.Fatalf("LedoitWolf failed: %v", err)
	}

	// The spread of the shrunk diagonal must not exceed the spread of
	// the sample variances: shrinking pulls variances toward their mean.
	rows := f.Values()
	n := len(rows)
	sampleVar := make([]float64, 3)
	for j := 0; j < 3; j++ {
		mean := 0.0
		for i := 0; i < n; i++ {
			mean += rows[i][j]
		}
		mean /= float64(n)
		for i := 0; i < n; i++ {
			d := rows[i][j] - mean
			sampleVar[j] += d * d
		}
		sampleVar[j] /= float64(n)
	}

	sampleSpread := spread(sampleVar)
	shrunkSpread := spread([]float64{shrunk.At(0, 0), shrunk.At(1, 1), shrunk.At(2, 2)})

	if shrunkSpread > sampleSpread+1e-12 {
		t.Errorf("Shrunk variance spread %f exceeds sample spread %f", shrunkSpread, sampleSpread)
	}
}

func TestLedoitWolfSingleColumn(t *testing.T) {
	f, err := timeseries.FrameOf(timeseries.Named("a", []float64{0.01, -0.02, 0.015, 0.005, -0.01}))
	if err != nil {
		t.Fatalf("Failed to build frame: %v", err)
	}

	cov, err := LedoitWolf(f, ShrinkageOptions{Frequency: 1})
	if err != nil {
		t.Fatalf("LedoitWolf failed: %v", err)
	}
	if cov.SymmetricDim() != 1 {
		t.Fatalf("Expected 1x1 covariance, got %d", cov.SymmetricDim())
	}
	if cov.At(0, 0) <= 0 {
		t.Errorf("Expected positive variance, got %f", cov.At(0, 0))
	}
}

func TestLedoitWolfInsufficientData(t *testing.T) {
	f, err := timeseries.FrameOf(timeseries.Named("a", []float64{0.01}))
	if err != nil {
		t.Fatalf("Failed to build frame: %v", err)
	}

	_, err = LedoitWolf(f, DefaultShrinkageOptions())
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func spread(values []float64) float64 {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}
