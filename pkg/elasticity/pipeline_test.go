package elasticity

import (
	"errors"
	"testing"
)

func TestRunDefaultDataset(t *testing.T) {
	res, err := Run(DefaultDataset().Fields())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !approx(res.Derived.AvgDiameterMM(), 0.5778, 1e-3) {
		t.Errorf("avg diameter = %v mm", res.Derived.AvgDiameterMM())
	}
	if len(res.Points) != 7 {
		t.Errorf("points = %d, want 7", len(res.Points))
	}
	if !approx(res.Fit.Slope, 160182236275.67062, 1e-9) {
		t.Errorf("slope = %v", res.Fit.Slope)
	}
	if res.Fit.Slope < 1e11 || res.Fit.Slope >= 1e12 {
		t.Errorf("slope %v is not of order 1e11", res.Fit.Slope)
	}
	if !approx(res.Fit.Intercept, -8224303.013436658, 1e-6) {
		t.Errorf("intercept = %v", res.Fit.Intercept)
	}

	if res.Sample.Index != 3 || res.Sample.LoadIndex != 4 {
		t.Errorf("sample = %+v, want index 3 / load 4", res.Sample)
	}
	if got := res.Representative(); got.LoadDelta != 4 {
		t.Errorf("representative load delta = %v", got.LoadDelta)
	}
	if len(res.Differences.Rows) != 4 {
		t.Errorf("differences = %d rows", len(res.Differences.Rows))
	}
}

func TestComputeDoesNotAliasInput(t *testing.T) {
	raw := DefaultDataset()
	res, err := Compute(raw)
	if err != nil {
		t.Fatal(err)
	}
	raw.DiameterTrials[0] = 99
	if res.Raw.DiameterTrials[0] == 99 {
		t.Error("result shares the caller's diameter slice")
	}
}

func TestComputeIsRepeatable(t *testing.T) {
	a, err := Compute(DefaultDataset())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(DefaultDataset())
	if err != nil {
		t.Fatal(err)
	}
	if a.Fit != b.Fit || a.Uncertainty != b.Uncertainty {
		t.Error("two runs over the same data disagree")
	}
}

func TestChooseSample(t *testing.T) {
	loads := [LoadSteps]float64{2, 3, 4, 5, 6, 7, 8, 9}

	tests := []struct {
		name      string
		deltas    []float64
		wantIndex int
		wantLoad  int
	}{
		{"long series uses the fourth point", []float64{1, 2, 3, 4, 5, 6, 7}, 3, 4},
		{"short series uses the last point", []float64{1, 2}, 1, 2},
		{"no matching load", []float64{0.5, 1.5, 2.5, 3.5}, 3, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]StressStrainPoint, len(tt.deltas))
			for i, dm := range tt.deltas {
				points[i] = StressStrainPoint{LoadDelta: dm}
			}
			sp := ChooseSample(points, loads)
			if sp.Index != tt.wantIndex || sp.LoadIndex != tt.wantLoad {
				t.Errorf("got %+v, want index %d load %d", sp, tt.wantIndex, tt.wantLoad)
			}
		})
	}
}

func TestKindAndMessage(t *testing.T) {
	for _, sentinel := range []error{ErrInsufficientGeometry, ErrMissingReading, ErrInsufficientFitData, ErrDegenerateFit} {
		wrapped := errors.Join(errors.New("context"), sentinel)
		if Kind(wrapped) == "internal" {
			t.Errorf("Kind(%v) = internal", sentinel)
		}
		if Message(wrapped) == wrapped.Error() {
			t.Errorf("Message(%v) fell back to the raw error", sentinel)
		}
		if !IsInputError(wrapped) {
			t.Errorf("IsInputError(%v) = false", sentinel)
		}
	}
	if Kind(errors.New("boom")) != "internal" || IsInputError(nil) {
		t.Error("unrelated errors classified as input errors")
	}
}
