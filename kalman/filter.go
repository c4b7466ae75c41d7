// Package kalman implements a linear-Gaussian Kalman filter over gonum
// matrices.
package kalman

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Filter is a linear-Gaussian Kalman filter with mutable system
// matrices and state. Callers configure F/Q/H/R and the initial X/P,
// then alternate Predict and Update. Matrix dimensions are not
// revalidated per call; nonconformant shapes surface as errors or
// panics from the linear-algebra layer.
type Filter struct {
	F *mat.Dense // State transition
	Q *mat.Dense // Process noise covariance
	H *mat.Dense // Measurement function
	R *mat.Dense // Measurement noise covariance

	X *mat.VecDense // State mean
	P *mat.Dense    // State covariance

	dimX int
	dimZ int

	logLikelihood float64
}

// New creates a filter with dimX state variables and dimZ measurement
// variables. F, Q, P and R start as identities, H and X as zeros; the
// caller overwrites them before filtering.
func New(dimX, dimZ int) *Filter {
	return &Filter{
		F:             eye(dimX),
		Q:             eye(dimX),
		H:             mat.NewDense(dimZ, dimX, nil),
		R:             eye(dimZ),
		X:             mat.NewVecDense(dimX, nil),
		P:             eye(dimX),
		dimX:          dimX,
		dimZ:          dimZ,
		logLikelihood: math.Inf(-1),
	}
}

// DimX returns the state dimension.
func (f *Filter) DimX() int { return f.dimX }

// DimZ returns the measurement dimension.
func (f *Filter) DimZ() int { return f.dimZ }

// Predict advances the state one step through the transition model:
// x ← Fx, P ← FPFᵀ + Q.
func (f *Filter) Predict() {
	var x mat.VecDense
	x.MulVec(f.F, f.X)
	f.X.CopyVec(&x)

	var p mat.Dense
	p.Product(f.F, f.P, f.F.T())
	p.Add(&p, f.Q)
	f.P.Copy(&p)
}

// Update fuses a measurement into the state estimate and records the
// log-likelihood of the innovation. The covariance update uses the
// Joseph form, which stays symmetric under roundoff.
func (f *Filter) Update(z mat.Vector) error {
	// Innovation y = z - Hx and its covariance S = HPHᵀ + R.
	var y mat.VecDense
	y.MulVec(f.H, f.X)
	y.SubVec(z, &y)

	var s mat.Dense
	s.Product(f.H, f.P, f.H.T())
	s.Add(&s, f.R)

	// Gain K = PHᵀS⁻¹, via SᵀKᵀ = (PHᵀ)ᵀ.
	var pht mat.Dense
	pht.Mul(f.P, f.H.T())

	var kt mat.Dense
	if err := kt.Solve(s.T(), pht.T()); err != nil {
		return err
	}
	var k mat.Dense
	k.CloneFrom(kt.T())

	var dx mat.VecDense
	dx.MulVec(&k, &y)
	f.X.AddVec(f.X, &dx)

	// P = (I-KH)P(I-KH)ᵀ + KRKᵀ.
	var kh mat.Dense
	kh.Mul(&k, f.H)
	ikh := eye(f.dimX)
	ikh.Sub(ikh, &kh)

	var p, krk mat.Dense
	p.Product(ikh, f.P, ikh.T())
	krk.Product(&k, f.R, k.T())
	p.Add(&p, &krk)
	f.P.Copy(&p)

	return f.recordLikelihood(&y, &s)
}

// recordLikelihood stores the Gaussian log-density of the innovation y
// under N(0, S).
func (f *Filter) recordLikelihood(y *mat.VecDense, s *mat.Dense) error {
	logDet, sign := mat.LogDet(s)
	if sign <= 0 {
		f.logLikelihood = math.Inf(-1)
		return nil
	}

	var su mat.VecDense
	if err := su.SolveVec(s, y); err != nil {
		return err
	}
	quad := mat.Dot(y, &su)

	f.logLikelihood = -0.5 * (float64(f.dimZ)*math.Log(2*math.Pi) + logDet + quad)
	return nil
}

// LogLikelihood returns the log-likelihood of the most recent update's
// innovation. Before any update it is -Inf.
func (f *Filter) LogLikelihood() float64 {
	return f.logLikelihood
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
