package elasticity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/youngslab/internal/constants"
)

// ToMeters converts a length entered in millimetres.
func ToMeters(mm float64) float64 {
	return mm * constants.MillimetersToMeters
}

// ToMillimeters converts back for display.
func ToMillimeters(m float64) float64 {
	return m / constants.MillimetersToMeters
}

// Derive converts a validated raw set to SI units and computes the wire cross-section.
func Derive(raw RawMeasurementSet) DerivedQuantities {
	d := DerivedQuantities{
		DiameterTrials: make([]float64, len(raw.DiameterTrials)),
		OpticalPath:    ToMeters(raw.OpticalPath),
		WireLength:     ToMeters(raw.WireLength),
		LeverArm:       ToMeters(raw.LeverArm),
		Loads:          raw.Loads,
	}

	for i, mm := range raw.DiameterTrials {
		d.DiameterTrials[i] = ToMeters(mm)
	}
	d.AvgDiameter = ToMeters(stat.Mean(raw.DiameterTrials, nil))

	for i := 0; i < LoadSteps; i++ {
		d.Midpoints[i] = ToMeters((raw.Loading[i] + raw.Unloading[i]) / 2)
	}

	// A = π·(d̄/2)²
	d.Area = math.Pi * math.Pow(d.AvgDiameter/2, 2)

	return d
}

// StressStrain builds the series against the base load (index 0). Loads that are not
// heavier than the base are skipped, so the series can be shorter than LoadSteps-1.
func StressStrain(d DerivedQuantities) ([]StressStrainPoint, error) {
	baseLoad := d.Loads[0]
	baseReading := d.Midpoints[0]

	points := make([]StressStrainPoint, 0, LoadSteps-1)
	for i := 1; i < LoadSteps; i++ {
		deltaM := d.Loads[i] - baseLoad
		if !(deltaM > 0) {
			continue
		}
		deltaN := d.Midpoints[i] - baseReading

		points = append(points, StressStrainPoint{
			LoadIndex:    i,
			LoadDelta:    deltaM,
			ReadingDelta: deltaN,
			// σ = ΔM·g / A
			Stress: deltaM * constants.Gravity / d.Area,
			// ε = ΔL / L with ΔL = b·Δn / 2D
			Strain: (d.LeverArm * deltaN) / (2 * d.OpticalPath * d.WireLength),
		})
	}

	if len(points) < constants.MinFitPoints {
		return nil, fmt.Errorf("%w: %d points with a positive load change, need %d",
			ErrInsufficientFitData, len(points), constants.MinFitPoints)
	}
	return points, nil
}

// Differences tabulates Δn_j = |n_{j+4} - n_j| for the first half of the table,
// i.e. the reading change for a fixed load step of four masses.
func Differences(d DerivedQuantities) SuccessiveDifferences {
	half := LoadSteps / 2
	diffs := SuccessiveDifferences{
		LoadDelta: d.Loads[half] - d.Loads[0],
		Rows:      make([]SuccessiveDifference, 0, half),
	}

	sum := 0.0
	for j := 0; j < half; j++ {
		upper := ToMillimeters(d.Midpoints[j+half])
		lower := ToMillimeters(d.Midpoints[j])
		delta := math.Abs(upper - lower)
		diffs.Rows = append(diffs.Rows, SuccessiveDifference{
			Upper:   j + half,
			Lower:   j,
			UpperMM: upper,
			LowerMM: lower,
			DeltaMM: delta,
		})
		sum += delta
	}
	diffs.MeanMM = sum / float64(half)

	return diffs
}
