// Package armax carries fitted ARMA-X model results and extracts their
// state-vector layout for state-space filtering.
package armax

import (
	"sort"

	"github.com/sartorproj/goarmax/timeseries"
)

// Naming convention for fitted parameters, following the usual
// estimation-output convention: AR terms are "ar.L1".."ar.Lp", MA terms
// "ma.L1".."ma.Lq", exogenous terms carry their column name. Anything
// else (intercept "const", innovation variance "sigma2") is not part of
// the state vector.
const (
	ARMarker = "ar.L"
	MAMarker = "ma.L"
)

// ResidualName is the column name under which the fitted residual
// series enters the joined regressor table.
const ResidualName = "ma_resid"

// Order is the ARMA-X model order: P autoregressive lags, Q
// moving-average lags, and D exogenous regressors.
type Order struct {
	P int // AR order (number of autoregressive terms)
	Q int // MA order (number of moving average terms)
	D int // Number of exogenous regressors
}

// NoParams returns the total state dimension p+q+d.
func (o Order) NoParams() int {
	return o.P + o.Q + o.D
}

// FitResult is the output of an external ARMA-X estimation routine:
// the model order, the in-sample residual series aligned to the
// training index, and the fitted parameters by name. Fitting itself is
// out of scope here; this type only carries its result.
type FitResult struct {
	Order     Order
	Residuals *timeseries.Series
	Params    map[string]float64
	Exog      []string // Declared exogenous column names, in order.
}

// ParamNames returns the fitted parameter names, sorted.
func (f *FitResult) ParamNames() []string {
	names := make([]string, 0, len(f.Params))
	for name := range f.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StateVector extracts the ordered state-vector descriptor from the
// fitted parameters. See Extract.
func (f *FitResult) StateVector() (*StateVector, error) {
	return Extract(f.Order, f.Exog, f.Params)
}
