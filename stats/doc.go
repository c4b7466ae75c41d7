// Package stats provides covariance estimation for state-space model
// construction.
//
// The Ledoit-Wolf shrinkage estimator blends the sample covariance of a
// returns-like frame with a constant-variance target, trading a little
// bias for a much better conditioned matrix. The process-noise matrix Q
// of the ARMA-X state-space model is estimated this way from the joined
// regressor table.
//
//	opts := stats.DefaultShrinkageOptions()
//	q, err := stats.LedoitWolf(frame, opts)
//
// The result is scaled by opts.Frequency (252 by default); pass
// Frequency 1 for an unscaled per-observation estimate.
package stats
