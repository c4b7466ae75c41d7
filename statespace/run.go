package statespace

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/goarmax/armax"
	"github.com/sartorproj/goarmax/kalman"
)

// Result holds the outputs of a filtering run. All slices share the
// model's trimmed time index; Predicted and PredictedCov are one
// element longer because the run ends with a genuine one-step-ahead
// forecast past the last observation.
type Result struct {
	Filtered       []*mat.VecDense // Posterior state means, one per step.
	FilteredCov    []*mat.Dense    // Posterior state covariances.
	Predicted      []*mat.VecDense // One-step-ahead prior means.
	PredictedCov   []*mat.Dense    // One-step-ahead prior covariances.
	LogLikelihoods []float64       // Per-step innovation log-likelihoods.

	Index     []time.Time // Trimmed time index of the run.
	StateVars []string    // Ordered state-variable names, for labeling.
}

// Run drives the Kalman filter over the model's observation sequence.
//
// Each step predicts, updates against the current observation, and,
// when the model has MA terms, injects the lookahead residual
//
//	residual = obs[next][first MA slot] - x[0]
//
// into the MA slots of the next q rows at lag positions 1..q, so that
// later steps see it as their lagged MA regressor. The residual stands
// in for the unobservable future innovation; the formula is measured
// against the filter's first state coordinate, not against the update
// innovation, and is kept that way deliberately. Near the tail of the
// sequence injection and observation advancement stop, so the last
// steps filter without a lookahead refresh. That is reduced-fidelity
// tail behavior, not an error.
//
// The observation buffer is mutated during the run; Run owns it
// exclusively until it returns. With q == 0 the buffer is never
// touched. Identical inputs produce bit-identical results.
func Run(m *Model) (*Result, error) {
	dim := m.Dim()
	q := 0
	for _, c := range m.State.Components() {
		if c.Group == armax.GroupMA {
			q++
		}
	}

	kf := kalman.New(dim, dim)
	kf.F = m.T
	kf.Q = mat.DenseCopyOf(m.Q)
	kf.H = m.Z
	kf.R = m.H
	kf.X = mat.VecDenseCopyOf(m.X0)
	kf.P = mat.DenseCopyOf(m.P0)

	total := m.Obs.Len()
	res := &Result{
		Filtered:       make([]*mat.VecDense, 0, total),
		FilteredCov:    make([]*mat.Dense, 0, total),
		Predicted:      make([]*mat.VecDense, 0, total+1),
		PredictedCov:   make([]*mat.Dense, 0, total+1),
		LogLikelihoods: make([]float64, 0, total),
		Index:          m.Index,
		StateVars:      m.State.Names(),
	}

	// The first row seeds z; the remaining rows form the working
	// window the step index runs over. Window row w is buffer row w+1.
	z := m.Obs.Vec(0)
	n := total - 1

	for i := 0; i <= n; i++ {
		kf.Predict()
		res.Predicted = append(res.Predicted, mat.VecDenseCopyOf(kf.X))
		res.PredictedCov = append(res.PredictedCov, mat.DenseCopyOf(kf.P))

		if err := kf.Update(z); err != nil {
			return nil, err
		}

		if q > 0 && i+q < n {
			residual := m.Obs.MAFirst(i+2) - kf.X.AtVec(0)
			for lag := 1; lag <= q; lag++ {
				m.Obs.Inject(i+1, lag, residual)
			}
		}

		if i+1 < n {
			z = m.Obs.Vec(i + 2)
		}

		res.Filtered = append(res.Filtered, mat.VecDenseCopyOf(kf.X))
		res.FilteredCov = append(res.FilteredCov, mat.DenseCopyOf(kf.P))
		res.LogLikelihoods = append(res.LogLikelihoods, kf.LogLikelihood())
	}

	// One additional predict past the data: the genuine one-step-ahead
	// forecast.
	kf.Predict()
	res.Predicted = append(res.Predicted, mat.VecDenseCopyOf(kf.X))
	res.PredictedCov = append(res.PredictedCov, mat.DenseCopyOf(kf.P))

	return res, nil
}
