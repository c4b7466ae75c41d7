// Package armax carries fitted ARMA-X model results and extracts their
// state-vector layout.
//
// The estimation routine itself is an external collaborator; this
// package consumes its output: a model order (p, q, d), a residual
// series, and a mapping from parameter name to fitted value following
// the "ar.L<k>" / "ma.L<k>" / exogenous-name convention.
//
// # Extracting a state vector
//
//	fit := &armax.FitResult{
//	    Order: armax.Order{P: 2, Q: 1, D: 1},
//	    Params: map[string]float64{
//	        "ar.L1": 0.5, "ar.L2": -0.2,
//	        "ma.L1": 0.3,
//	        "rate":  1.1,
//	        "const": 0.01, // excluded from the state vector
//	    },
//	    Exog: []string{"rate"},
//	}
//	sv, err := fit.StateVector()
//
// The state vector orders components AR lag 1..p, MA lag 1..q, then
// exogenous in declared order, and exposes group masks and lag lookups
// computed once from that single ordering. Parameters that match no
// group (intercept, sigma2) are excluded deliberately and reported via
// Excluded.
//
// Extraction fails with ErrOrderMismatch when the counted group sizes
// differ from the declared order.
package armax
