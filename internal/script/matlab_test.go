package script

import (
	"strings"
	"testing"

	"github.com/chrissnell/youngslab/pkg/elasticity"
)

func TestMATLAB(t *testing.T) {
	res, err := elasticity.Compute(elasticity.DefaultDataset())
	if err != nil {
		t.Fatal(err)
	}

	out, err := MATLAB(res)
	if err != nil {
		t.Fatalf("MATLAB: %v", err)
	}

	for _, want := range []string{
		"g = 10;",
		"D = 1.905000e+00;",
		"L = 7.962000e-01;",
		"b = 8.410000e-02;",
		"d_avg = 5.778333e-04;",
		"Sigma = [3.813335e+07 ",
		"Epsilon = [2.703046e-04 ",
		"P = polyfit(Epsilon, Sigma, 1);",
		"Reported slope: Y = 1.601822e+11 Pa",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("script missing %q", want)
		}
	}

	sigmaLine := out[strings.Index(out, "Sigma = ["):]
	sigmaLine = sigmaLine[:strings.Index(sigmaLine, "\n")]
	if n := len(strings.Fields(strings.Trim(sigmaLine[len("Sigma = "):], "[];"))); n != len(res.Points) {
		t.Errorf("Sigma has %d values, want %d", n, len(res.Points))
	}
}
