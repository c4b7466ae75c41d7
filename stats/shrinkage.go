// Package stats provides covariance estimation for state-space model
// construction.
package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goarmax/timeseries"
)

// ErrInsufficientData reports too few observations for covariance
// estimation.
var ErrInsufficientData = errors.New("insufficient data for covariance estimation")

// ShrinkageOptions configures the Ledoit-Wolf estimator.
type ShrinkageOptions struct {
	// Frequency scales the estimated covariance from per-observation to
	// per-period terms, the usual convention for daily returns data.
	// Use 1 for an unscaled estimate.
	Frequency float64
}

// DefaultShrinkageOptions returns the default estimator configuration:
// 252 observation periods per year.
func DefaultShrinkageOptions() ShrinkageOptions {
	return ShrinkageOptions{Frequency: 252}
}

// LedoitWolf estimates a shrinkage covariance matrix from a returns-like
// frame: the sample covariance blended with a constant-variance target
// (the mean variance times the identity), with the blend weight chosen
// analytically from the data.
//
// Reference: Ledoit, O., & Wolf, M. (2004). A well-conditioned estimator
// for large-dimensional covariance matrices.
func LedoitWolf(f *timeseries.Frame, opts ShrinkageOptions) (*mat.SymDense, error) {
	n := f.Len()
	p := len(f.Columns())
	if p == 0 {
		return nil, fmt.Errorf("%w: frame has no columns", ErrInsufficientData)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 rows, got %d", ErrInsufficientData, n)
	}
	if opts.Frequency <= 0 {
		opts.Frequency = 1
	}

	// Demean each column.
	rows := f.Values()
	means := make([]float64, p)
	for j := 0; j < p; j++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = rows[i][j]
		}
		means[j] = stat.Mean(col, nil)
	}
	x := make([][]float64, n)
	for i := 0; i < n; i++ {
		x[i] = make([]float64, p)
		for j := 0; j < p; j++ {
			x[i][j] = rows[i][j] - means[j]
		}
	}

	// Biased sample covariance S = XᵀX / n.
	s := make([][]float64, p)
	for j := range s {
		s[j] = make([]float64, p)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			for k := j; k < p; k++ {
				s[j][k] += x[i][j] * x[i][k]
			}
		}
	}
	for j := 0; j < p; j++ {
		for k := j; k < p; k++ {
			s[j][k] /= float64(n)
			s[k][j] = s[j][k]
		}
	}

	delta := shrinkageIntensity(x, s)

	// Target: mean variance on the diagonal.
	mu := 0.0
	for j := 0; j < p; j++ {
		mu += s[j][j]
	}
	mu /= float64(p)

	shrunk := mat.NewSymDense(p, nil)
	for j := 0; j < p; j++ {
		for k := j; k < p; k++ {
			v := (1 - delta) * s[j][k]
			if j == k {
				v += delta * mu
			}
			shrunk.SetSym(j, k, v*opts.Frequency)
		}
	}
	return shrunk, nil
}

// shrinkageIntensity computes the analytic Ledoit-Wolf blend weight in
// [0, 1] toward the constant-variance target.
func shrinkageIntensity(x [][]float64, s [][]float64) float64 {
	n := len(x)
	p := len(s)

	mu := 0.0
	for j := 0; j < p; j++ {
		mu += s[j][j]
	}
	mu /= float64(p)

	// d² = ||S − μI||²_F / p, the dispersion of S around the target.
	d2 := 0.0
	for j := 0; j < p; j++ {
		for k := 0; k < p; k++ {
			diff := s[j][k]
			if j == k {
				diff -= mu
			}
			d2 += diff * diff
		}
	}
	d2 /= float64(p)

	// b̄² = average squared error of the per-observation outer products
	// around S, capped by d².
	b2 := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			for k := 0; k < p; k++ {
				diff := x[i][j]*x[i][k] - s[j][k]
				b2 += diff * diff
			}
		}
	}
	b2 /= float64(n) * float64(n) * float64(p)
	if b2 > d2 {
		b2 = d2
	}

	if d2 == 0 {
		return 0
	}
	return b2 / d2
}
