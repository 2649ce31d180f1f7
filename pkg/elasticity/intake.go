package elasticity

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/youngslab/internal/constants"
)

// FieldSource is anything that can hand back the raw text of a named input field.
type FieldSource interface {
	Lookup(name string) (string, bool)
}

// MapSource serves fields from a plain map, e.g. a decoded JSON body.
type MapSource map[string]string

// Lookup implements FieldSource
func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// FormSource serves fields from submitted form values. Only the first value of a key counts.
type FormSource url.Values

// Lookup implements FieldSource
func (f FormSource) Lookup(name string) (string, bool) {
	vs, ok := f[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// DiameterField returns the field name of diameter trial i (1-based).
func DiameterField(i int) string {
	return constants.FieldDiameterPrefix + strconv.Itoa(i)
}

// LoadingField returns the field name of the loading reading for load index i (0-based).
func LoadingField(i int) string {
	return constants.FieldLoadingPrefix + strconv.Itoa(i)
}

// UnloadingField returns the field name of the unloading reading for load index i (0-based).
func UnloadingField(i int) string {
	return constants.FieldUnloadingPrefix + strconv.Itoa(i)
}

// ParseField reads one numeric field. Absent, blank, unparsable and non-finite entries
// all come back as NaN, which is the only "missing" marker the pipeline knows.
func ParseField(src FieldSource, name string) float64 {
	raw, ok := src.Lookup(name)
	if !ok {
		return math.NaN()
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// Measure reads every input field from src into a RawMeasurementSet and validates it.
// Diameter trials that are missing are skipped; any missing reading rejects the whole table.
func Measure(src FieldSource) (RawMeasurementSet, error) {
	var raw RawMeasurementSet

	for i := 1; i <= constants.MaxDiameterTrial; i++ {
		d := ParseField(src, DiameterField(i))
		if !math.IsNaN(d) {
			raw.DiameterTrials = append(raw.DiameterTrials, d)
		}
	}

	raw.OpticalPath = ParseField(src, constants.FieldOpticalPath)
	raw.WireLength = ParseField(src, constants.FieldWireLength)
	raw.LeverArm = ParseField(src, constants.FieldLeverArm)

	raw.Loads = constants.LoadsKg
	for i := 0; i < LoadSteps; i++ {
		raw.Loading[i] = ParseField(src, LoadingField(i))
		raw.Unloading[i] = ParseField(src, UnloadingField(i))
	}

	if err := raw.Validate(); err != nil {
		return raw, err
	}
	return raw, nil
}

// Validate enforces the intake invariants: geometry first, then the reading table.
func (raw RawMeasurementSet) Validate() error {
	n := len(raw.DiameterTrials)
	if n < constants.MinDiameterTrial {
		return fmt.Errorf("%w: %d diameter trials, need at least %d", ErrInsufficientGeometry, n, constants.MinDiameterTrial)
	}

	// Comparisons are written as !(x > 0) so that NaN fails them too
	if avg := stat.Mean(raw.DiameterTrials, nil); !(avg > 0) {
		return fmt.Errorf("%w: average diameter %v mm", ErrInsufficientGeometry, avg)
	}
	lengths := []struct {
		name string
		v    float64
	}{
		{"D", raw.OpticalPath},
		{"L", raw.WireLength},
		{"b", raw.LeverArm},
	}
	for _, l := range lengths {
		if !(l.v > 0) {
			return fmt.Errorf("%w: %s = %v mm", ErrInsufficientGeometry, l.name, l.v)
		}
	}

	for i := 0; i < LoadSteps; i++ {
		if math.IsNaN(raw.Loading[i]) || math.IsNaN(raw.Unloading[i]) {
			return fmt.Errorf("%w: row %d (%s / %s)", ErrMissingReading, i, LoadingField(i), UnloadingField(i))
		}
	}
	return nil
}

// Fields renders the set back into input fields, the inverse of Measure.
func (raw RawMeasurementSet) Fields() MapSource {
	fields := MapSource{}
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	for i, d := range raw.DiameterTrials {
		if i >= constants.MaxDiameterTrial {
			break
		}
		fields[DiameterField(i+1)] = format(d)
	}
	fields[constants.FieldOpticalPath] = format(raw.OpticalPath)
	fields[constants.FieldWireLength] = format(raw.WireLength)
	fields[constants.FieldLeverArm] = format(raw.LeverArm)
	for i := 0; i < LoadSteps; i++ {
		fields[LoadingField(i)] = format(raw.Loading[i])
		fields[UnloadingField(i)] = format(raw.Unloading[i])
	}
	return fields
}

// FieldNames lists every input field in form order.
func FieldNames() []string {
	names := make([]string, 0, constants.MaxDiameterTrial+3+2*LoadSteps)
	for i := 1; i <= constants.MaxDiameterTrial; i++ {
		names = append(names, DiameterField(i))
	}
	names = append(names, constants.FieldOpticalPath, constants.FieldWireLength, constants.FieldLeverArm)
	for i := 0; i < LoadSteps; i++ {
		names = append(names, LoadingField(i))
	}
	for i := 0; i < LoadSteps; i++ {
		names = append(names, UnloadingField(i))
	}
	return names
}

// Collect copies the raw text of every known field present in src. Unknown keys are dropped.
func Collect(src FieldSource) MapSource {
	fields := MapSource{}
	for _, name := range FieldNames() {
		if v, ok := src.Lookup(name); ok {
			fields[name] = v
		}
	}
	return fields
}
