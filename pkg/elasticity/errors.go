package elasticity

import "errors"

// Every pipeline failure wraps exactly one of these. All of them end the run.
var (
	ErrInsufficientGeometry = errors.New("insufficient geometry")
	ErrMissingReading       = errors.New("missing reading")
	ErrInsufficientFitData  = errors.New("insufficient fit data")
	ErrDegenerateFit        = errors.New("degenerate fit")
)

var kinds = []struct {
	err     error
	kind    string
	message string
}{
	{ErrInsufficientGeometry, "insufficient_geometry",
		"Enter at least 3 diameter values and the D, L and b measurements; every length must be greater than zero."},
	{ErrMissingReading, "missing_reading",
		"A load reading is missing or not a number. Check every loading and unloading entry in the reading table."},
	{ErrInsufficientFitData, "insufficient_fit_data",
		"Fewer than 2 usable stress-strain points were produced, so no line can be fitted. Check the reading changes."},
	{ErrDegenerateFit, "degenerate_fit",
		"All strain values are identical, so the least-squares fit has no solution."},
}

// Kind returns a stable key for err, or "internal" when it is not a pipeline error.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}

// Message returns the operator-facing explanation for err.
func Message(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.message
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsInputError reports whether err is one of the four rejection errors, i.e. the fix is in the data.
func IsInputError(err error) bool {
	return Kind(err) != "internal"
}
