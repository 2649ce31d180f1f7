package elasticity

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/chrissnell/youngslab/internal/constants"
)

// Fit runs a one-pass ordinary least squares of σ on ε:
//
//	slope = (N·Σεσ − Σε·Σσ) / (N·Σε² − (Σε)²)
//	intercept = (Σσ − slope·Σε) / N
//
// A series whose strains are all bit-identical is rejected before the sums are formed,
// since N·Σε² − (Σε)² need not round to zero for it. Otherwise only an exactly zero
// denominator is rejected. Ill-conditioned series with a tiny but non-zero spread in ε
// go through and can produce a very large slope.
func Fit(points []StressStrainPoint) (FitResult, error) {
	if len(points) < constants.MinFitPoints {
		return FitResult{}, fmt.Errorf("%w: %d points", ErrInsufficientFitData, len(points))
	}

	eps := make([]float64, len(points))
	sig := make([]float64, len(points))
	for i, p := range points {
		eps[i] = p.Strain
		sig[i] = p.Stress
	}

	if constantStrain(eps) {
		return FitResult{}, fmt.Errorf("%w: strain has no spread across %d points", ErrDegenerateFit, len(points))
	}

	n := float64(len(points))
	sumX := floats.Sum(eps)
	sumY := floats.Sum(sig)
	sumXY := floats.Dot(eps, sig)
	sumX2 := floats.Dot(eps, eps)

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return FitResult{}, fmt.Errorf("%w: strain has no spread across %d points", ErrDegenerateFit, len(points))
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	return FitResult{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
		N:         len(points),
	}, nil
}

func constantStrain(eps []float64) bool {
	for _, e := range eps[1:] {
		if e != eps[0] {
			return false
		}
	}
	return true
}

// Span returns the strain range the fit line is drawn over: 10% either side of the data.
func Span(points []StressStrainPoint) (lo, hi float64) {
	eps := make([]float64, len(points))
	for i, p := range points {
		eps[i] = p.Strain
	}
	if len(eps) == 0 {
		return 0, 0
	}
	return floats.Min(eps) * 0.9, floats.Max(eps) * 1.1
}
