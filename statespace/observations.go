package statespace

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/goarmax/armax"
)

// Observations is the observation sequence consumed by the sequential
// filter: one vector per time step, laid out exactly like the state
// vector. It doubles as a lookahead buffer. MA-slot entries start at
// zero because the residual regressors they stand for are functions of
// prediction errors that do not exist yet; the filter writes them in
// ahead of time via Inject. The buffer is owned exclusively by a
// filter invocation for the duration of a run.
type Observations struct {
	rows  [][]float64
	dim   int
	maIdx []int // State indices of MA lags 1..q, in lag order.
}

// newObservations wraps trimmed regressor rows, zeroing every MA-masked
// entry. Rows are not copied; the joined table hands ownership over.
func newObservations(rows [][]float64, sv *armax.StateVector) *Observations {
	var maIdx []int
	for lag := 1; ; lag++ {
		idx := sv.LagIndex(armax.GroupMA, lag)
		if idx < 0 {
			break
		}
		maIdx = append(maIdx, idx)
	}

	for _, row := range rows {
		for _, idx := range maIdx {
			row[idx] = 0
		}
	}

	return &Observations{
		rows:  rows,
		dim:   sv.Len(),
		maIdx: maIdx,
	}
}

// Len returns the number of observation rows.
func (o *Observations) Len() int {
	return len(o.rows)
}

// Dim returns the length of each observation vector.
func (o *Observations) Dim() int {
	return o.dim
}

// Vec returns row i as a fresh vector.
func (o *Observations) Vec(i int) *mat.VecDense {
	row := make([]float64, o.dim)
	copy(row, o.rows[i])
	return mat.NewVecDense(o.dim, row)
}

// Raw returns a copy of row i.
func (o *Observations) Raw(i int) []float64 {
	row := make([]float64, o.dim)
	copy(row, o.rows[i])
	return row
}

// MAFirst returns the first MA-masked entry of row i. This is the slot
// the lookahead residual is measured against.
func (o *Observations) MAFirst(i int) float64 {
	return o.rows[i][o.maIdx[0]]
}

// Inject writes v into the MA lag-`lag` slot of row step+lag. A
// residual computed at step i lands at lag positions 1..q of the next
// q rows, so future steps observe it as their lagged MA regressor.
// Callers keep step+lag within bounds; near the tail of the sequence
// injection simply stops.
func (o *Observations) Inject(step, lag int, v float64) {
	o.rows[step+lag][o.maIdx[lag-1]] = v
}
