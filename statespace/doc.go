// Package statespace builds linear-Gaussian state-space models from
// fitted ARMA-X results and runs the sequential Kalman filter over them.
//
// Build assembles the transition matrix (coefficient row plus lag-shift
// and carry-forward rows), the measurement matrices, a Ledoit-Wolf
// process-noise estimate, the initial state, and the observation
// sequence from the joined regressor table. Run then drives the
// predict/update cycle, using its own prediction error to back-fill
// the not-yet-observable MA regressors a few steps ahead (lookahead
// injection).
//
//	model, err := statespace.Build(fit, data, []string{"price"}, statespace.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	result, err := statespace.Run(model)
//
// Result carries filtered means and covariances, one-step-ahead
// predictions (one element longer than the data, ending in a true
// forecast), per-step log-likelihoods, the surviving time index, and
// the state-variable names for labeling.
//
// Observation rows with incomplete lag history are dropped at
// construction, so the usable index starts max(p, q) periods into the
// training data. At the tail of the sequence the lookahead injection
// stops once it would run past the buffer; the final steps filter
// without the refresh, which consumers should treat as reduced
// accuracy rather than failure.
package statespace
