// Package elasticity reduces the readings of an optical-lever Young's modulus experiment
// to a stress-strain series, a least-squares modulus and its propagated uncertainty.
package elasticity

import (
	"math"

	"github.com/chrissnell/youngslab/internal/constants"
)

// LoadSteps is the number of load/reading rows in every measurement set
const LoadSteps = constants.LoadSteps

// RawMeasurementSet holds the operator's entries as typed, in millimetres and kilograms.
// Missing entries never make it in here; intake rejects them first.
type RawMeasurementSet struct {
	DiameterTrials []float64          `json:"diameter_trials_mm"`
	OpticalPath    float64            `json:"optical_path_mm"` // D: mirror to scale
	WireLength     float64            `json:"wire_length_mm"`  // L: unloaded wire length
	LeverArm       float64            `json:"lever_arm_mm"`    // b: optical lever foot spacing
	Loads          [LoadSteps]float64 `json:"loads_kg"`
	Loading        [LoadSteps]float64 `json:"loading_mm"`
	Unloading      [LoadSteps]float64 `json:"unloading_mm"`
}

// DerivedQuantities are the SI versions of the raw set plus the wire cross-section.
type DerivedQuantities struct {
	DiameterTrials []float64          `json:"diameter_trials_m"`
	AvgDiameter    float64            `json:"avg_diameter_m"`
	OpticalPath    float64            `json:"optical_path_m"`
	WireLength     float64            `json:"wire_length_m"`
	LeverArm       float64            `json:"lever_arm_m"`
	Loads          [LoadSteps]float64 `json:"loads_kg"`
	Midpoints      [LoadSteps]float64 `json:"midpoints_m"` // (n' + n'') / 2 per load
	Area           float64            `json:"area_m2"`
}

// AvgDiameterMM returns the mean diameter back in millimetres, for display.
func (d DerivedQuantities) AvgDiameterMM() float64 {
	return d.AvgDiameter / constants.MillimetersToMeters
}

// StressStrainPoint is one load step measured against the base load.
type StressStrainPoint struct {
	LoadIndex    int     `json:"load_index"`
	LoadDelta    float64 `json:"load_delta_kg"`
	ReadingDelta float64 `json:"reading_delta_m"`
	Stress       float64 `json:"stress_pa"`
	Strain       float64 `json:"strain"`
}

// FitResult is the ordinary least-squares line σ = Slope·ε + Intercept.
type FitResult struct {
	Slope     float64 `json:"slope_pa"`
	Intercept float64 `json:"intercept_pa"`
	N         int     `json:"n"`
}

// At evaluates the fitted line at strain x.
func (f FitResult) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// UncertaintyResult carries the diameter uncertainty budget and the propagated modulus uncertainty.
type UncertaintyResult struct {
	DiameterTypeA   float64    `json:"diameter_type_a_m"`
	DiameterTypeB   float64    `json:"diameter_type_b_m"`
	Diameter        float64    `json:"diameter_m"` // combined u(d)
	LengthTypeB     float64    `json:"length_type_b_m"`
	ReadingDelta    float64    `json:"reading_delta_m"` // u(Δn̄)
	Terms           [5]float64 `json:"relative_terms"`  // d̄, D, L, b, Δn̄ in that order
	RelativeSquared float64    `json:"relative_squared"`
	Relative        float64    `json:"relative"`
	Modulus         float64    `json:"modulus_pa"` // u(Y)
}

// Finite reports whether every component came out as a real number.
func (u UncertaintyResult) Finite() bool {
	for _, v := range []float64{u.DiameterTypeA, u.Diameter, u.ReadingDelta, u.Relative, u.Modulus} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SuccessiveDifference is one row of the Δn table: |n[Upper] - n[Lower]|.
type SuccessiveDifference struct {
	Upper   int     `json:"upper"`
	Lower   int     `json:"lower"`
	UpperMM float64 `json:"upper_mm"`
	LowerMM float64 `json:"lower_mm"`
	DeltaMM float64 `json:"delta_mm"`
}

// SuccessiveDifferences groups the Δn table rows with their mean.
type SuccessiveDifferences struct {
	LoadDelta float64                `json:"load_delta_kg"`
	Rows      []SuccessiveDifference `json:"rows"`
	MeanMM    float64                `json:"mean_mm"`
}

// SamplePoint identifies the stress-strain point used for the worked example and Δn̄.
type SamplePoint struct {
	Index     int `json:"index"`      // position in Result.Points
	LoadIndex int `json:"load_index"` // position in the load table
}

// Result is the immutable bundle of one pipeline run. Renderers read it, nobody writes it.
type Result struct {
	Raw         RawMeasurementSet     `json:"raw"`
	Derived     DerivedQuantities     `json:"derived"`
	Points      []StressStrainPoint   `json:"points"`
	Fit         FitResult             `json:"fit"`
	Uncertainty UncertaintyResult     `json:"uncertainty"`
	Sample      SamplePoint           `json:"sample"`
	Differences SuccessiveDifferences `json:"differences"`
}

// Representative returns the stress-strain point chosen as the run's sample.
func (r *Result) Representative() StressStrainPoint {
	return r.Points[r.Sample.Index]
}

// Strains returns ε in point order.
func (r *Result) Strains() []float64 {
	xs := make([]float64, len(r.Points))
	for i, p := range r.Points {
		xs[i] = p.Strain
	}
	return xs
}

// Stresses returns σ in point order.
func (r *Result) Stresses() []float64 {
	ys := make([]float64, len(r.Points))
	for i, p := range r.Points {
		ys[i] = p.Stress
	}
	return ys
}
