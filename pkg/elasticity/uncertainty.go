package elasticity

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/youngslab/internal/constants"
)

// TypeB converts an instrument half-width into a standard uncertainty, assuming a
// rectangular distribution.
func TypeB(halfWidth float64) float64 {
	return halfWidth / math.Sqrt(3)
}

// TypeA is the standard deviation of the mean of xs, sqrt(Σ(x−x̄)² / (n(n−1))).
// It is NaN for fewer than two values.
func TypeA(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.StdDev(xs, nil) / math.Sqrt(float64(len(xs)))
}

// Uncertainty propagates the instrument and scatter uncertainties into the fitted modulus.
// The relative terms for d̄, D, L, b and Δn̄ are added in quadrature; the diameter term
// is doubled because the area goes with d². Δn̄ comes from the sample point's reading
// change split over ReadingDeltaObservations differences.
//
// No zero guard is applied beyond intake validation: a zero sample reading change gives
// an infinite or NaN result, which callers can detect with Finite.
func Uncertainty(d DerivedQuantities, fit FitResult, sample StressStrainPoint) UncertaintyResult {
	var u UncertaintyResult

	u.DiameterTypeA = TypeA(d.DiameterTrials)
	u.DiameterTypeB = TypeB(constants.MicrometerPrecision)
	u.Diameter = math.Hypot(u.DiameterTypeA, u.DiameterTypeB)

	u.LengthTypeB = TypeB(constants.RulerPrecision)
	u.ReadingDelta = u.LengthTypeB / math.Sqrt(constants.ReadingDeltaObservations)
	meanDelta := sample.ReadingDelta / constants.ReadingDeltaObservations

	u.Terms = [5]float64{
		2 * u.Diameter / d.AvgDiameter,
		u.LengthTypeB / d.OpticalPath,
		u.LengthTypeB / d.WireLength,
		u.LengthTypeB / d.LeverArm,
		u.ReadingDelta / meanDelta,
	}
	for _, t := range u.Terms {
		u.RelativeSquared += t * t
	}

	u.Relative = math.Sqrt(math.Abs(u.RelativeSquared))
	u.Modulus = fit.Slope * u.Relative

	return u
}
