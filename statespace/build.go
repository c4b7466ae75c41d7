// Package statespace builds linear-Gaussian state-space models from
// fitted ARMA-X results and runs the sequential Kalman filter over
// them.
package statespace

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/goarmax/armax"
	"github.com/sartorproj/goarmax/stats"
	"github.com/sartorproj/goarmax/timeseries"
)

// ErrNoObservations reports that no usable rows survived lag trimming.
var ErrNoObservations = errors.New("no observations remain after lag trimming")

// Config holds the scalar knobs of the state-space construction.
type Config struct {
	MeasurementNoise  float64 // Diagonal of the measurement-noise matrix H.
	InitialState      float64 // Constant fill of the initial state x0.
	InitialCovariance float64 // Diagonal of the initial covariance P0.

	// Shrinkage configures the Ledoit-Wolf estimator producing the
	// process-noise matrix Q.
	Shrinkage stats.ShrinkageOptions
}

// DefaultConfig returns the standard construction parameters.
func DefaultConfig() Config {
	return Config{
		MeasurementNoise:  0.01,
		InitialState:      0.1,
		InitialCovariance: 0.1,
		Shrinkage:         stats.DefaultShrinkageOptions(),
	}
}

// Model is a fully assembled linear-Gaussian state-space representation
// of a fitted ARMA-X model, ready for filtering.
type Model struct {
	T  *mat.Dense    // Transition matrix, (p+q+d) square.
	Q  *mat.SymDense // Process noise, Ledoit-Wolf estimate of the regressor table.
	Z  *mat.Dense    // Measurement function, identity.
	H  *mat.Dense    // Measurement noise, diagonal.
	X0 *mat.VecDense // Initial state, constant fill.
	P0 *mat.Dense    // Initial covariance, diagonal.

	Obs   *Observations      // Observation sequence / lookahead buffer.
	State *armax.StateVector // Ordered state layout; labels rows and columns everywhere.
	Index []time.Time        // Surviving time index after lag trimming.
}

// Dim returns the state dimension p+q+d.
func (m *Model) Dim() int {
	return m.State.Len()
}

// Build converts a fitted ARMA-X result and its training data into a
// state-space model. endog names the single endogenous column of data;
// the exogenous columns are those declared in the fit.
//
// The joined regressor table (p lags of the endogenous series, q lags
// of the residual series, the raw exogenous columns) both supplies the
// observation rows and feeds the process-noise estimate, so the two
// stay dimensionally consistent by construction. Rows with incomplete
// lag history are dropped, which loses the earliest max(p,q) periods.
//
// The model order requires at least one AR lag; p, q, d outside their
// domains are a precondition violation, not a handled error.
func Build(fit *armax.FitResult, data *timeseries.Frame, endog []string, cfg Config) (*Model, error) {
	if len(endog) != 1 {
		return nil, fmt.Errorf("%w: got %v", armax.ErrEndogenousCardinality, endog)
	}

	sv, err := fit.StateVector()
	if err != nil {
		return nil, err
	}

	order := fit.Order
	dim := sv.Len()

	endogSeries, err := data.Column(endog[0])
	if err != nil {
		return nil, err
	}

	joined, err := regressorTable(endogSeries, fit.Residuals, data, order, fit.Exog)
	if err != nil {
		return nil, err
	}
	trimmed := joined.DropNA()
	if trimmed.Len() == 0 {
		return nil, ErrNoObservations
	}

	q, err := stats.LedoitWolf(trimmed, cfg.Shrinkage)
	if err != nil {
		return nil, err
	}

	m := &Model{
		T:     transitionMatrix(sv, order),
		Q:     q,
		Z:     identity(dim),
		H:     diagonal(dim, cfg.MeasurementNoise),
		X0:    constantVec(dim, cfg.InitialState),
		P0:    diagonal(dim, cfg.InitialCovariance),
		Obs:   newObservations(trimmed.Values(), sv),
		State: sv,
		Index: trimmed.Index(),
	}
	return m, nil
}

// regressorTable joins the lagged endogenous block, the lagged residual
// block, and the raw exogenous columns on the shared time index.
func regressorTable(endog, resid *timeseries.Series, data *timeseries.Frame, order armax.Order, exog []string) (*timeseries.Frame, error) {
	table := timeseries.LagFrame(endog, order.P, armax.ARMarker)

	if order.Q > 0 {
		residNamed := resid.Copy().Rename(armax.ResidualName)
		maFrame := timeseries.LagFrame(residNamed, order.Q, armax.MAMarker)
		joined, err := table.Join(maFrame)
		if err != nil {
			return nil, err
		}
		table = joined
	}

	if len(exog) > 0 {
		exoFrame := timeseries.NewFrame(data.Index())
		for _, name := range exog {
			col, err := data.Column(name)
			if err != nil {
				return nil, err
			}
			if err := exoFrame.AddColumn(name, col.Values); err != nil {
				return nil, err
			}
		}
		joined, err := table.Join(exoFrame)
		if err != nil {
			return nil, err
		}
		table = joined
	}
	return table, nil
}

// transitionMatrix assembles T. Row 0 carries the fitted coefficients
// in state order. The remaining rows are one-hot: the AR block shifts
// each lag down one slot per step, while the MA and exogenous blocks
// carry their slots forward unchanged.
func transitionMatrix(sv *armax.StateVector, order armax.Order) *mat.Dense {
	dim := sv.Len()
	t := mat.NewDense(dim, dim, nil)

	for j, c := range sv.Coeffs() {
		t.Set(0, j, c)
	}

	row := 1
	for lag := 1; lag < order.P; lag++ {
		t.Set(row, sv.LagIndex(armax.GroupAR, lag), 1)
		row++
	}
	for lag := 1; lag <= order.Q; lag++ {
		t.Set(row, sv.LagIndex(armax.GroupMA, lag), 1)
		row++
	}
	for j, c := range sv.Components() {
		if c.Group == armax.GroupExog {
			t.Set(row, j, 1)
			row++
		}
	}
	return t
}

func identity(n int) *mat.Dense {
	return diagonal(n, 1)
}

func diagonal(n int, v float64) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, v)
	}
	return m
}

func constantVec(n int, v float64) *mat.VecDense {
	data := make([]float64, n)
	for i := range data {
		data[i] = v
	}
	return mat.NewVecDense(n, data)
}
