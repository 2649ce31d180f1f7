package elasticity

import (
	"github.com/chrissnell/youngslab/internal/constants"
)

// Run reads src and takes it through the whole pipeline. Nothing is returned on error.
func Run(src FieldSource) (*Result, error) {
	raw, err := Measure(src)
	if err != nil {
		return nil, err
	}
	return Compute(raw)
}

// Compute validates raw and derives the full result bundle. Each call starts from scratch.
func Compute(raw RawMeasurementSet) (*Result, error) {
	if err := raw.Validate(); err != nil {
		return nil, err
	}

	derived := Derive(raw)

	points, err := StressStrain(derived)
	if err != nil {
		return nil, err
	}

	fit, err := Fit(points)
	if err != nil {
		return nil, err
	}

	sample := ChooseSample(points, derived.Loads)

	// Copy the trials so the bundle does not alias the caller's slice
	raw.DiameterTrials = append([]float64(nil), raw.DiameterTrials...)

	return &Result{
		Raw:         raw,
		Derived:     derived,
		Points:      points,
		Fit:         fit,
		Uncertainty: Uncertainty(derived, fit, points[sample.Index]),
		Sample:      sample,
		Differences: Differences(derived),
	}, nil
}

// ChooseSample picks points[min(3, n-1)] and locates its row in the load table by
// matching ΔM + M₀. The first matching row wins.
func ChooseSample(points []StressStrainPoint, loads [LoadSteps]float64) SamplePoint {
	idx := constants.SamplePointIndex
	if idx > len(points)-1 {
		idx = len(points) - 1
	}

	sp := SamplePoint{Index: idx, LoadIndex: -1}
	target := points[idx].LoadDelta + loads[0]
	for i, m := range loads {
		if m == target {
			sp.LoadIndex = i
			break
		}
	}
	return sp
}
