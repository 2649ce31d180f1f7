// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// Version holds the application version information
const Version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

// Physical and instrument constants for the optical-lever rig.
const (
	// Gravity is fixed at 10 m/s^2 by lab convention, it is not measured
	Gravity = 10.0

	// MillimetersToMeters converts every length the operator enters
	MillimetersToMeters = 0.001

	// MicrometerPrecision is the half-width of the micrometer used on the wire diameter (m)
	MicrometerPrecision = 0.001 * MillimetersToMeters

	// RulerPrecision is the half-width of the tape/scale used for D, L, b and the readings (m)
	RulerPrecision = 1 * MillimetersToMeters

	// ReadingDeltaObservations is the number of successive differences averaged into Δn̄
	ReadingDeltaObservations = 4
)

// Shape of the input table.
const (
	LoadSteps        = 8
	MaxDiameterTrial = 6
	MinDiameterTrial = 3
	MinFitPoints     = 2

	// SamplePointIndex picks the worked example out of the stress-strain series
	SamplePointIndex = 3
)

// LoadsKg are the slotted masses hung on the wire, lowest first. Index 0 is the base load.
var LoadsKg = [LoadSteps]float64{2.00, 3.00, 4.00, 5.00, 6.00, 7.00, 8.00, 9.00}

// Input field names, shared by the HTML form, JSON bodies and dataset files.
const (
	FieldDiameterPrefix  = "d_"
	FieldOpticalPath     = "D_1"
	FieldWireLength      = "L_1"
	FieldLeverArm        = "b_1"
	FieldLoadingPrefix   = "n_p_"
	FieldUnloadingPrefix = "n_pp_"
)

// Report defaults
const (
	DefaultReportTitle    = "Young's Modulus Lab Report"
	DefaultReportFilename = "Youngs_Modulus_Report"
	DefaultChartWidthPx   = 800
	DefaultChartHeightPx  = 500
)
