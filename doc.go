// Package goarmax converts fitted ARMA-X models into linear-Gaussian
// state-space form and runs Kalman filtering over them.
//
// GoARMAX takes the output of an external ARMA-X estimation routine
// (model order, residual series, and named coefficients) and produces
// filtered state estimates, one-step-ahead predictions, and per-step
// log-likelihood contributions. Because moving-average regressors depend
// on innovations that are not observable in real time, the filter
// approximates them with its own one-step-ahead prediction error and
// back-fills the observation sequence several steps ahead (lookahead
// injection).
//
// # Quick Start
//
// Wrap an externally fitted model and run the filter:
//
//	fit := &armax.FitResult{
//	    Order:     armax.Order{P: 1, Q: 1, D: 1},
//	    Residuals: resid,
//	    Params:    params, // "ar.L1", "ma.L1", exogenous names
//	    Exog:      []string{"rate"},
//	}
//	model, _ := statespace.Build(fit, data, []string{"price"}, statespace.DefaultConfig())
//	result, _ := statespace.Run(model)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - armax: fitted-model carrier and state-vector extraction
//   - statespace: state-space matrix construction and the sequential filter
//   - kalman: linear-Gaussian Kalman filter primitive
//   - stats: Ledoit-Wolf shrinkage covariance estimation
//   - timeseries: time series and frame data structures and utilities
//
// # References
//
//   - Ledoit, O., & Wolf, M. (2004). A well-conditioned estimator for
//     large-dimensional covariance matrices
//   - Durbin, J., & Koopman, S. J. (2012). Time Series Analysis by
//     State Space Methods
package goarmax
