// Package kalman implements a linear-Gaussian Kalman filter over gonum
// matrices.
//
// The Filter exposes its system matrices (F, Q, H, R) and state (X, P)
// as mutable fields so callers can assemble an arbitrary linear model
// and drive the predict/update cycle themselves:
//
//	kf := kalman.New(dim, dim)
//	kf.F = transition
//	kf.Q = processNoise
//	kf.H = measurement
//	kf.R = measurementNoise
//	kf.X = x0
//	kf.P = p0
//
//	for _, z := range observations {
//	    kf.Predict()
//	    if err := kf.Update(z); err != nil {
//	        return err
//	    }
//	    ll := kf.LogLikelihood()
//	    _ = ll
//	}
//
// Update records the Gaussian log-density of each innovation, readable
// via LogLikelihood until the next update. Dimensional nonconformance
// between the configured matrices surfaces as errors or panics from
// gonum, unmodified.
package kalman
