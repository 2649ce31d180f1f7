package elasticity

import "github.com/chrissnell/youngslab/internal/constants"

// DefaultDataset is the worked example that pre-fills the entry form.
func DefaultDataset() RawMeasurementSet {
	return RawMeasurementSet{
		DiameterTrials: []float64{0.576, 0.579, 0.577, 0.577, 0.580, 0.578},
		OpticalPath:    1905.0,
		WireLength:     796.2,
		LeverArm:       84.1,
		Loads:          constants.LoadsKg,
		Loading:        [LoadSteps]float64{0.0, 9.8, 19.0, 27.9, 36.8, 45.8, 53.2, 61.2},
		Unloading:      [LoadSteps]float64{0.2, 9.9, 19.1, 28.0, 37.3, 45.8, 53.4, 61.0},
	}
}
