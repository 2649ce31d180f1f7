package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/chrissnell/youngslab/pkg/elasticity"
)

func defaultResult(t *testing.T) *elasticity.Result {
	t.Helper()
	res, err := elasticity.Compute(elasticity.DefaultDataset())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestPolicies(t *testing.T) {
	tests := []struct {
		policy Policy
		value  float64
		want   string
	}{
		{DiameterMM, 0.5778333, "0.578"},
		{LengthMM, 1905, "1905.0"},
		{ReadingDeltaMM, 36.95, "36.95"},
		{LoadKg, 4, "4.00"},
		{SI, 160182236275.67, "1.602e+11"},
		{Headline, 160182236275.67, "1.60e+11"},
		{Headline, 5147436832.8652, "5.15e+09"},
		{Script, 2.622376617909408e-07, "2.622377e-07"},
		{SI, math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		if got := tt.policy.Format(tt.value); got != tt.want {
			t.Errorf("%s.Format(%v) = %q, want %q", tt.policy.Name, tt.value, got, tt.want)
		}
	}
}

func TestBuildSectionOrder(t *testing.T) {
	doc := Build(defaultResult(t), Options{Script: "x = 1;", ChartPNG: []byte{0x89, 'P', 'N', 'G'}})

	want := []string{SectionAbstract, SectionCalculations, SectionChart, SectionScript, SectionConclusion}
	if len(doc.Sections) != len(want) {
		t.Fatalf("got %d sections, want %d", len(doc.Sections), len(want))
	}
	for i, id := range want {
		if doc.Sections[i].ID != id {
			t.Errorf("section %d = %s, want %s", i, doc.Sections[i].ID, id)
		}
	}
	if doc.Title == "" {
		t.Error("default title not applied")
	}
}

func TestBuildWithoutScript(t *testing.T) {
	doc := Build(defaultResult(t), Options{})
	if doc.Section(SectionScript) != nil {
		t.Error("script section present without a script")
	}
	chart := doc.Section(SectionChart)
	if chart == nil || chart.Blocks[0].Kind != Paragraph {
		t.Error("missing chart snapshot did not fall back to a note")
	}
}

func TestFinalResult(t *testing.T) {
	if got := FinalResult(defaultResult(t)); got != "Y = (1.60e+11 ± 5.15e+09) Pa" {
		t.Errorf("FinalResult = %q", got)
	}
}

func TestConclusionNamesLargestTerms(t *testing.T) {
	doc := Build(defaultResult(t), Options{})
	text := doc.Section(SectionConclusion).Blocks[0].Text
	// For the default data Δn̄ (3.1e-2) and b (6.9e-3) lead the budget
	if !strings.Contains(text, "led by the reading change Δn̄ and the lever arm b") {
		t.Errorf("conclusion = %q", text)
	}
}

func TestDominantTerms(t *testing.T) {
	first, second := dominantTerms([5]float64{0.1, 0.5, -0.7, 0.2, 0.05})
	if first != 2 || second != 1 {
		t.Errorf("got %d, %d", first, second)
	}
}

func TestRenderFragment(t *testing.T) {
	doc := Build(defaultResult(t), Options{ChartPNG: []byte("png"), Script: "a = 1 < 2;"})

	var buf bytes.Buffer
	if err := RenderFragment(&buf, doc); err != nil {
		t.Fatalf("RenderFragment: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		`id="results-calculations"`,
		`id="results-conclusion"`,
		"data:image/png;base64,cG5n",
		"a = 1 &lt; 2;",
		"1.60e&#43;11",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("fragment missing %q", want)
		}
	}
	if strings.Contains(html, "<html>") {
		t.Error("fragment contains a full document")
	}
}

func TestRenderPage(t *testing.T) {
	doc := Build(defaultResult(t), Options{Title: "Bench 3"})

	var buf bytes.Buffer
	if err := RenderPage(&buf, doc); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<!DOCTYPE html>") || !strings.Contains(buf.String(), "<h1>Bench 3</h1>") {
		t.Errorf("page = %.200s", buf.String())
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderText(&buf, Build(defaultResult(t), Options{})); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Y = (1.60e+11 ± 5.15e+09) Pa") || !strings.Contains(out, "mean") {
		t.Errorf("text report missing the result or the difference table:\n%s", out)
	}
}
