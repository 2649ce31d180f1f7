package elasticity

import (
	"errors"
	"math"
	"net/url"
	"testing"
)

func TestParseField(t *testing.T) {
	src := MapSource{
		"plain":    "12.5",
		"padded":   "  3 ",
		"blank":    "   ",
		"text":     "abc",
		"trailing": "12abc",
		"inf":      "Inf",
		"negative": "-4",
	}

	tests := []struct {
		name    string
		field   string
		want    float64
		missing bool
	}{
		{name: "plain number", field: "plain", want: 12.5},
		{name: "surrounding whitespace", field: "padded", want: 3},
		{name: "negative kept", field: "negative", want: -4},
		{name: "absent", field: "nope", missing: true},
		{name: "blank", field: "blank", missing: true},
		{name: "non-numeric", field: "text", missing: true},
		{name: "numeric prefix only", field: "trailing", missing: true},
		{name: "infinity", field: "inf", missing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseField(src, tt.field)
			if tt.missing {
				if !math.IsNaN(got) {
					t.Errorf("ParseField(%q) = %v, want NaN", tt.field, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseField(%q) = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestFormSourceFirstValue(t *testing.T) {
	src := FormSource(url.Values{"D_1": {"1905", "2"}, "empty": {}})

	if v, ok := src.Lookup("D_1"); !ok || v != "1905" {
		t.Errorf("Lookup(D_1) = %q, %v", v, ok)
	}
	if _, ok := src.Lookup("empty"); ok {
		t.Error("Lookup(empty) reported a value")
	}
}

func TestMeasureDefaults(t *testing.T) {
	want := DefaultDataset()

	raw, err := Measure(want.Fields())
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if len(raw.DiameterTrials) != len(want.DiameterTrials) {
		t.Fatalf("got %d diameter trials, want %d", len(raw.DiameterTrials), len(want.DiameterTrials))
	}
	for i := range want.DiameterTrials {
		if raw.DiameterTrials[i] != want.DiameterTrials[i] {
			t.Errorf("trial %d = %v, want %v", i, raw.DiameterTrials[i], want.DiameterTrials[i])
		}
	}
	if raw.OpticalPath != want.OpticalPath || raw.WireLength != want.WireLength || raw.LeverArm != want.LeverArm {
		t.Errorf("lengths = %v/%v/%v", raw.OpticalPath, raw.WireLength, raw.LeverArm)
	}
	if raw.Loading != want.Loading || raw.Unloading != want.Unloading {
		t.Error("reading table does not round trip")
	}
	if raw.Loads != want.Loads {
		t.Errorf("loads = %v", raw.Loads)
	}
}

func TestMeasureSkipsMissingDiameters(t *testing.T) {
	fields := DefaultDataset().Fields()
	fields[DiameterField(2)] = ""
	fields[DiameterField(5)] = "n/a"

	raw, err := Measure(fields)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	want := []float64{0.576, 0.577, 0.577, 0.578}
	if len(raw.DiameterTrials) != len(want) {
		t.Fatalf("trials = %v, want %v", raw.DiameterTrials, want)
	}
	for i := range want {
		if raw.DiameterTrials[i] != want[i] {
			t.Errorf("trial %d = %v, want %v", i, raw.DiameterTrials[i], want[i])
		}
	}
}

func TestMeasureMissingReading(t *testing.T) {
	for i := 0; i < LoadSteps; i++ {
		for _, field := range []string{LoadingField(i), UnloadingField(i)} {
			fields := DefaultDataset().Fields()
			delete(fields, field)

			_, err := Measure(fields)
			if !errors.Is(err, ErrMissingReading) {
				t.Errorf("without %s: err = %v, want ErrMissingReading", field, err)
			}
			if _, err := Run(fields); !errors.Is(err, ErrMissingReading) {
				t.Errorf("Run without %s: err = %v", field, err)
			}
		}
	}
}

func TestMeasureGeometry(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"D zero", "D_1", "0"},
		{"D negative", "D_1", "-1905"},
		{"L zero", "L_1", "0"},
		{"L negative", "L_1", "-3"},
		{"b zero", "b_1", "0"},
		{"b negative", "b_1", "-84.1"},
		{"b missing", "b_1", ""},
		{"L not numeric", "L_1", "long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := DefaultDataset().Fields()
			fields[tt.field] = tt.value

			_, err := Measure(fields)
			if !errors.Is(err, ErrInsufficientGeometry) {
				t.Errorf("err = %v, want ErrInsufficientGeometry", err)
			}
		})
	}
}

func TestMeasureTooFewDiameters(t *testing.T) {
	fields := DefaultDataset().Fields()
	for i := 3; i <= 6; i++ {
		delete(fields, DiameterField(i))
	}

	_, err := Measure(fields)
	if !errors.Is(err, ErrInsufficientGeometry) {
		t.Fatalf("err = %v, want ErrInsufficientGeometry", err)
	}
}

func TestGeometryCheckedBeforeReadings(t *testing.T) {
	fields := DefaultDataset().Fields()
	fields["D_1"] = "0"
	delete(fields, LoadingField(3))

	_, err := Measure(fields)
	if !errors.Is(err, ErrInsufficientGeometry) {
		t.Fatalf("err = %v, want ErrInsufficientGeometry", err)
	}
}

func TestNonPositiveAverageDiameter(t *testing.T) {
	raw := DefaultDataset()
	raw.DiameterTrials = []float64{0.5, -0.5, 0}

	if err := raw.Validate(); !errors.Is(err, ErrInsufficientGeometry) {
		t.Fatalf("err = %v, want ErrInsufficientGeometry", err)
	}
}

func TestFieldNamesAndCollect(t *testing.T) {
	names := FieldNames()
	if len(names) != 25 || names[0] != "d_1" || names[6] != "D_1" || names[9] != "n_p_0" || names[24] != "n_pp_7" {
		t.Fatalf("names = %v", names)
	}

	src := MapSource{"d_1": " 0.5 ", "n_pp_3": "x", "comment": "ignored"}
	got := Collect(src)
	if len(got) != 2 || got["d_1"] != " 0.5 " || got["n_pp_3"] != "x" {
		t.Errorf("Collect = %v", got)
	}
}
