// Package main demonstrates ARMA-X state-space filtering end to end:
// a synthetic ARMA-X(2,1,1) series, a hand-assembled fit result
// standing in for the external estimation routine, state-space
// construction, and the sequential Kalman filter run.
package main

import (
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sartorproj/goarmax/armax"
	"github.com/sartorproj/goarmax/statespace"
	"github.com/sartorproj/goarmax/timeseries"
)

const nObs = 120

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("GoARMAX Demonstration - ARMA-X state-space Kalman filtering")
	fmt.Println(strings.Repeat("=", 72))

	fit, data := synthetic()
	log.WithFields(log.Fields{
		"p": fit.Order.P, "q": fit.Order.Q, "d": fit.Order.D,
		"rows": data.Len(),
	}).Info("assembled fitted-model carrier")

	model, err := statespace.Build(fit, data, []string{"y"}, statespace.DefaultConfig())
	if err != nil {
		log.WithError(err).Fatal("state-space construction failed")
	}

	log.WithFields(log.Fields{
		"state_vars": model.State.Names(),
		"excluded":   model.State.Excluded(),
		"obs":        model.Obs.Len(),
	}).Info("built state-space model")

	fmt.Printf("\nState vector: %v\n", model.State.Names())
	fmt.Printf("Excluded params: %v\n", model.State.Excluded())
	fmt.Printf("Observations after lag trimming: %d of %d\n", model.Obs.Len(), data.Len())

	result, err := statespace.Run(model)
	if err != nil {
		log.WithError(err).Fatal("filtering run failed")
	}

	totalLL := 0.0
	for _, ll := range result.LogLikelihoods {
		totalLL += ll
	}
	log.WithFields(log.Fields{
		"steps":          len(result.Filtered),
		"log_likelihood": totalLL,
	}).Info("filtering run complete")

	fmt.Printf("\nFiltered steps: %d, predicted steps: %d\n", len(result.Filtered), len(result.Predicted))
	fmt.Printf("Total log-likelihood: %.4f\n", totalLL)

	fmt.Println("\nFinal filtered state:")
	last := result.Filtered[len(result.Filtered)-1]
	for i, name := range result.StateVars {
		fmt.Printf("  %-8s %10.6f\n", name, last.AtVec(i))
	}

	fmt.Println("\nOne-step-ahead forecast:")
	forecast := result.Predicted[len(result.Predicted)-1]
	for i, name := range result.StateVars {
		fmt.Printf("  %-8s %10.6f\n", name, forecast.AtVec(i))
	}

	fmt.Println(strings.Repeat("=", 72))
}

// synthetic generates a deterministic ARMA-X(2,1,1) series and wraps
// the generating coefficients as if an external routine had fitted
// them. The innovation sequence doubles as the residual series.
func synthetic() (*armax.FitResult, *timeseries.Frame) {
	const (
		phi1  = 0.55
		phi2  = -0.15
		theta = 0.35
		beta  = 0.8
	)

	y := make([]float64, nObs)
	rate := make([]float64, nObs)
	eps := make([]float64, nObs)

	for i := 0; i < nObs; i++ {
		// Bounded quasi-random innovations; no hidden randomness.
		eps[i] = 0.2 * math.Sin(float64(i)*1.7+0.3) * math.Cos(float64(i)*0.43)
		rate[i] = 0.5 + 0.1*math.Sin(float64(i)*0.21)

		y[i] = eps[i] + beta*rate[i]
		if i >= 1 {
			y[i] += phi1*y[i-1] + theta*eps[i-1]
		}
		if i >= 2 {
			y[i] += phi2 * y[i-2]
		}
	}

	data, err := timeseries.FrameOf(
		timeseries.Named("y", y),
		timeseries.Named("rate", rate),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to assemble data frame")
	}

	fit := &armax.FitResult{
		Order:     armax.Order{P: 2, Q: 1, D: 1},
		Residuals: timeseries.Named(armax.ResidualName, eps),
		Params: map[string]float64{
			"const":  0.0,
			"ar.L1":  phi1,
			"ar.L2":  phi2,
			"ma.L1":  theta,
			"rate":   beta,
			"sigma2": 0.04,
		},
		Exog: []string{"rate"},
	}
	return fit, data
}
