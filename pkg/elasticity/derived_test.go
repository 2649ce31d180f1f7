package elasticity

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b, relTol float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= relTol*math.Max(math.Abs(a), math.Abs(b))
}

func TestUnitConversionRoundTrip(t *testing.T) {
	for _, mm := range []float64{0.001, 0.577, 84.1, 796.2, 1905.0, 123456.789} {
		if got := ToMillimeters(ToMeters(mm)); !approx(got, mm, 1e-12) {
			t.Errorf("round trip of %v mm = %v", mm, got)
		}
		if got := ToMeters(mm) * 1000; !approx(got, mm, 1e-12) {
			t.Errorf("ToMeters(%v)*1000 = %v", mm, got)
		}
	}
}

func TestDeriveAverageIndependentOfOrder(t *testing.T) {
	orders := [][]float64{
		{0.576, 0.579, 0.577, 0.577, 0.580, 0.578},
		{0.580, 0.578, 0.577, 0.576, 0.579, 0.577},
		{0.577, 0.577, 0.576, 0.578, 0.580, 0.579},
	}

	want := (0.576 + 0.579 + 0.577 + 0.577 + 0.580 + 0.578) / 6 * 0.001
	for _, trials := range orders {
		raw := DefaultDataset()
		raw.DiameterTrials = trials
		d := Derive(raw)
		if !approx(d.AvgDiameter, want, 1e-12) {
			t.Errorf("avg of %v = %v, want %v", trials, d.AvgDiameter, want)
		}
	}
}

func TestDeriveDefaults(t *testing.T) {
	d := Derive(DefaultDataset())

	if !approx(d.AvgDiameterMM(), 0.5778333333, 1e-9) {
		t.Errorf("avg diameter = %v mm", d.AvgDiameterMM())
	}
	if !approx(d.Area, 2.622376617909408e-07, 1e-9) {
		t.Errorf("area = %v", d.Area)
	}
	if !approx(d.OpticalPath, 1.905, 1e-12) || !approx(d.WireLength, 0.7962, 1e-12) || !approx(d.LeverArm, 0.0841, 1e-12) {
		t.Errorf("lengths = %v %v %v", d.OpticalPath, d.WireLength, d.LeverArm)
	}
	// Row 4: (36.8 + 37.3) / 2 mm
	if !approx(d.Midpoints[4], 0.03705, 1e-9) {
		t.Errorf("midpoint 4 = %v", d.Midpoints[4])
	}
}

func TestStressStrainDefaults(t *testing.T) {
	points, err := StressStrain(Derive(DefaultDataset()))
	if err != nil {
		t.Fatalf("StressStrain: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("got %d points, want 7", len(points))
	}

	first := points[0]
	if first.LoadIndex != 1 || first.LoadDelta != 1 {
		t.Errorf("first point = %+v", first)
	}
	if !approx(first.Stress, 38133347.939824626, 1e-9) {
		t.Errorf("first stress = %v", first.Stress)
	}
	if !approx(first.Strain, 0.00027030461621837593, 1e-9) {
		t.Errorf("first strain = %v", first.Strain)
	}

	last := points[6]
	if !approx(last.ReadingDelta, 0.061, 1e-9) || !approx(last.Strain, 0.0016911365732636848, 1e-9) {
		t.Errorf("last point = %+v", last)
	}
}

func TestStressStrainSkipsNonPositiveLoadChange(t *testing.T) {
	d := Derive(DefaultDataset())
	d.Loads = [LoadSteps]float64{5, 5, 4, 6, 5, 7, 3, 5}

	points, err := StressStrain(d)
	if err != nil {
		t.Fatalf("StressStrain: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].LoadIndex != 3 || points[1].LoadIndex != 5 {
		t.Errorf("load indexes = %d, %d", points[0].LoadIndex, points[1].LoadIndex)
	}
}

func TestStressStrainInsufficientPoints(t *testing.T) {
	tests := []struct {
		name  string
		loads [LoadSteps]float64
	}{
		{"all equal", [LoadSteps]float64{2, 2, 2, 2, 2, 2, 2, 2}},
		{"one heavier", [LoadSteps]float64{2, 2, 2, 2, 2, 2, 2, 3}},
		{"descending", [LoadSteps]float64{9, 8, 7, 6, 5, 4, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := DefaultDataset()
			raw.Loads = tt.loads

			if _, err := StressStrain(Derive(raw)); !errors.Is(err, ErrInsufficientFitData) {
				t.Errorf("err = %v, want ErrInsufficientFitData", err)
			}
			if _, err := Compute(raw); !errors.Is(err, ErrInsufficientFitData) {
				t.Errorf("Compute err = %v, want ErrInsufficientFitData", err)
			}
		})
	}
}

func TestDifferences(t *testing.T) {
	diffs := Differences(Derive(DefaultDataset()))

	if diffs.LoadDelta != 4 {
		t.Errorf("load delta = %v", diffs.LoadDelta)
	}
	if len(diffs.Rows) != 4 {
		t.Fatalf("got %d rows", len(diffs.Rows))
	}
	// midpoints in mm: 0.1 9.85 19.05 27.95 37.05 45.8 53.3 61.1
	want := []float64{36.95, 35.95, 34.25, 33.15}
	for i, row := range diffs.Rows {
		if row.Upper != i+4 || row.Lower != i {
			t.Errorf("row %d pairs %d/%d", i, row.Upper, row.Lower)
		}
		if !approx(row.DeltaMM, want[i], 1e-9) {
			t.Errorf("row %d delta = %v, want %v", i, row.DeltaMM, want[i])
		}
	}
	if !approx(diffs.MeanMM, 35.075, 1e-9) {
		t.Errorf("mean = %v", diffs.MeanMM)
	}
}
