package elasticity

import (
	"math"
	"testing"
)

func TestTypeA(t *testing.T) {
	xs := []float64{0.576e-3, 0.579e-3, 0.577e-3, 0.577e-3, 0.580e-3, 0.578e-3}

	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	ss := 0.0
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	want := math.Sqrt(ss / float64(len(xs)*(len(xs)-1)))

	if got := TypeA(xs); !approx(got, want, 1e-9) {
		t.Errorf("TypeA = %v, want %v", got, want)
	}
	if got := TypeA([]float64{1, 1, 1}); got != 0 {
		t.Errorf("TypeA of constant = %v", got)
	}
	if got := TypeA([]float64{1}); !math.IsNaN(got) {
		t.Errorf("TypeA of one value = %v, want NaN", got)
	}
}

func TestTypeB(t *testing.T) {
	if got := TypeB(math.Sqrt(3)); !approx(got, 1, 1e-15) {
		t.Errorf("TypeB(√3) = %v", got)
	}
}

func TestUncertaintyDefaults(t *testing.T) {
	res, err := Compute(DefaultDataset())
	if err != nil {
		t.Fatal(err)
	}
	u := res.Uncertainty

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"type A diameter", u.DiameterTypeA, 6.00925212577335e-07},
		{"type B diameter", u.DiameterTypeB, 1e-6 / math.Sqrt(3)},
		{"combined diameter", u.Diameter, 8.333333333333358e-07},
		{"reading delta", u.ReadingDelta, 1e-3 / math.Sqrt(3) / 2},
		{"relative", u.Relative, 0.032134879325860816},
		{"modulus", u.Modulus, 5147436832.8652},
	}
	for _, tt := range tests {
		if !approx(tt.got, tt.want, 1e-6) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if !u.Finite() {
		t.Error("default uncertainty reported as non-finite")
	}
}

func TestUncertaintyZeroSampleDeltaPropagates(t *testing.T) {
	d := Derive(DefaultDataset())
	fit := FitResult{Slope: 2e11}

	u := Uncertainty(d, fit, StressStrainPoint{ReadingDelta: 0})
	if !math.IsInf(u.Modulus, 1) {
		t.Errorf("modulus uncertainty = %v, want +Inf", u.Modulus)
	}
	if u.Finite() {
		t.Error("Finite() = true for an infinite result")
	}
}

func TestUncertaintyNegativeSampleDelta(t *testing.T) {
	d := Derive(DefaultDataset())
	fit := FitResult{Slope: 2e11}

	pos := Uncertainty(d, fit, StressStrainPoint{ReadingDelta: 0.03})
	neg := Uncertainty(d, fit, StressStrainPoint{ReadingDelta: -0.03})
	if !approx(pos.Modulus, neg.Modulus, 1e-12) {
		t.Errorf("sign of Δn changed u(Y): %v vs %v", pos.Modulus, neg.Modulus)
	}
}
