package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/chrissnell/youngslab/internal/constants"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

// Section IDs
const (
	SectionAbstract     = "abstract"
	SectionCalculations = "calculations"
	SectionChart        = "chart"
	SectionScript       = "script"
	SectionConclusion   = "conclusion"
)

// termNames label UncertaintyResult.Terms
var termNames = [5]string{"wire diameter d̄", "optical path D", "wire length L", "lever arm b", "reading change Δn̄"}

// Options carries the parts of the report that are produced elsewhere
type Options struct {
	Title    string
	ChartPNG []byte // nil when no snapshot could be taken
	Script   string // empty leaves the script section out
}

// Build lays out the report for res. It only reads the bundle.
func Build(res *elasticity.Result, opts Options) *Document {
	title := opts.Title
	if title == "" {
		title = constants.DefaultReportTitle
	}

	doc := &Document{Title: title}
	doc.Sections = append(doc.Sections,
		abstractSection(res),
		calculationSection(res),
		chartSection(res, opts.ChartPNG),
	)
	if opts.Script != "" {
		doc.Sections = append(doc.Sections, Section{
			ID:      SectionScript,
			Heading: "Plotting script",
			Blocks: []Block{
				paragraph("Run the script below in MATLAB to redraw the σ-ε plot and the fitted line."),
				{Kind: Code, Text: opts.Script},
			},
		})
	}
	doc.Sections = append(doc.Sections, conclusionSection(res))

	return doc
}

// FinalResult is the "Y = (a ± b) Pa" line shared by the calculations and the conclusion
func FinalResult(res *elasticity.Result) string {
	return fmt.Sprintf("Y = (%s ± %s) Pa", Headline.Format(res.Fit.Slope), Headline.Format(res.Uncertainty.Modulus))
}

func abstractSection(res *elasticity.Result) Section {
	return Section{
		ID:      SectionAbstract,
		Heading: "Abstract",
		Blocks: []Block{
			paragraph(fmt.Sprintf(
				"The Young's modulus Y of a steel wire was measured with the optical lever method. "+
					"A least-squares line through %d stress (σ) and strain (ε) points taken under increasing load "+
					"gives Y ≈ %s Pa, within the range usually quoted for steel.",
				res.Fit.N, Headline.Format(res.Fit.Slope))),
		},
	}
}

func calculationSection(res *elasticity.Result) Section {
	d := res.Derived
	raw := res.Raw
	blocks := []Block{
		subheading("Mean measured values (SI unit: m)"),
		paragraph(fmt.Sprintf("Mean wire diameter d̄: %s mm (≈ %s m)", DiameterMM.Format(d.AvgDiameterMM()), SI.Format(d.AvgDiameter))),
		paragraph(fmt.Sprintf("Optical path D: %s mm (≈ %s m)", LengthMM.Format(raw.OpticalPath), SI.Format(d.OpticalPath))),
		paragraph(fmt.Sprintf("Wire length L: %s mm (≈ %s m)", LengthMM.Format(raw.WireLength), SI.Format(d.WireLength))),
		paragraph(fmt.Sprintf("Lever arm b: %s mm (≈ %s m)", LengthMM.Format(raw.LeverArm), SI.Format(d.LeverArm))),
	}

	blocks = append(blocks, sampleBlocks(res)...)
	blocks = append(blocks, differenceBlocks(res)...)
	blocks = append(blocks, fitBlocks(res)...)
	blocks = append(blocks, uncertaintyBlocks(res)...)

	return Section{
		ID:      SectionCalculations,
		Heading: "Data reduction",
		Blocks:  blocks,
	}
}

func sampleBlocks(res *elasticity.Result) []Block {
	d := res.Derived
	p := res.Representative()
	dm := LoadKg.Format(p.LoadDelta)

	blocks := []Block{
		subheading(fmt.Sprintf("Worked example: σ and ε at ΔM = %s kg", dm)),
		formula(fmt.Sprintf("ΔM = %s kg", dm)),
		formula(fmt.Sprintf("A = π·d̄²/4 = π·(%s)²/4 ≈ %s m²", SI.Format(d.AvgDiameter), SI.Format(d.Area))),
	}

	if li := res.Sample.LoadIndex; li >= 0 {
		blocks = append(blocks, formula(fmt.Sprintf("Δn = n%s − n0 = %s mm − %s mm = %s mm ≈ %s m",
			strconv.Itoa(li),
			ReadingMM.Format(elasticity.ToMillimeters(d.Midpoints[li])),
			ReadingMM.Format(elasticity.ToMillimeters(d.Midpoints[0])),
			ReadingDeltaMM.Format(elasticity.ToMillimeters(p.ReadingDelta)),
			SI.Format(p.ReadingDelta))))
	} else {
		blocks = append(blocks, formula(fmt.Sprintf("Δn = %s mm ≈ %s m",
			ReadingDeltaMM.Format(elasticity.ToMillimeters(p.ReadingDelta)), SI.Format(p.ReadingDelta))))
	}

	blocks = append(blocks,
		formula(fmt.Sprintf("σ = F/A = ΔM·g/A = %s·%g / %s ≈ %s Pa",
			dm, constants.Gravity, SI.Format(d.Area), SI.Format(p.Stress))),
		formula(fmt.Sprintf("ε = ΔL/L = b·Δn/(2·D·L) = %s·%s / (2·%s·%s) ≈ %s",
			SI.Format(d.LeverArm), SI.Format(p.ReadingDelta), SI.Format(d.OpticalPath), SI.Format(d.WireLength), SI.Format(p.Strain))),
	)
	return blocks
}

func differenceBlocks(res *elasticity.Result) []Block {
	diffs := res.Differences
	table := &Table{Header: []string{"j", "n(j+4) (mm)", "n(j) (mm)", "Δn(j) = |n(j+4) − n(j)| (mm)"}}
	for _, row := range diffs.Rows {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(row.Lower),
			ReadingMM.Format(row.UpperMM),
			ReadingMM.Format(row.LowerMM),
			ReadingDeltaMM.Format(row.DeltaMM),
		})
	}
	table.Rows = append(table.Rows, []string{"mean", "", "", ReadingDeltaMM.Format(diffs.MeanMM)})

	return []Block{
		subheading(fmt.Sprintf("Successive differences of the reading (ΔM = %s kg)", LoadKg.Format(diffs.LoadDelta))),
		{Kind: TableKind, Table: table},
	}
}

func fitBlocks(res *elasticity.Result) []Block {
	points := &Table{Header: []string{"ΔM (kg)", "Δn (mm)", "σ (Pa)", "ε"}}
	for _, p := range res.Points {
		points.Rows = append(points.Rows, []string{
			LoadKg.Format(p.LoadDelta),
			ReadingDeltaMM.Format(elasticity.ToMillimeters(p.ReadingDelta)),
			SI.Format(p.Stress),
			SI.Format(p.Strain),
		})
	}

	return []Block{
		subheading("Least-squares fit for Y"),
		{Kind: TableKind, Table: points},
		formula("σ = Y·ε + C"),
		formula("Y = (N·Σ(εᵢσᵢ) − Σεᵢ·Σσᵢ) / (N·Σεᵢ² − (Σεᵢ)²)"),
		highlight(fmt.Sprintf("Y ≈ %s Pa", SI.Format(res.Fit.Slope))),
		paragraph(fmt.Sprintf("Intercept C ≈ %s Pa over N = %d points.", SI.Format(res.Fit.Intercept), res.Fit.N)),
	}
}

func uncertaintyBlocks(res *elasticity.Result) []Block {
	u := res.Uncertainty

	budget := &Table{Header: []string{"Source", "Relative uncertainty"}}
	for i, t := range u.Terms {
		budget.Rows = append(budget.Rows, []string{termNames[i], SI.Format(t)})
	}

	return []Block{
		subheading("Uncertainty of Y"),
		formula(fmt.Sprintf("u_A(d) = √(Σ(dᵢ − d̄)² / (n(n−1))) ≈ %s m", SI.Format(u.DiameterTypeA))),
		formula(fmt.Sprintf("u_B(d) = Δ_micrometer/√3 ≈ %s m", SI.Format(u.DiameterTypeB))),
		formula(fmt.Sprintf("u(d) = √(u_A²(d) + u_B²(d)) ≈ %s m", SI.Format(u.Diameter))),
		formula("(u(Y)/Y)² ≈ (2·u(d)/d̄)² + (u_B(D)/D)² + (u_B(L)/L)² + (u_B(b)/b)² + (u(Δn̄)/Δn̄)²"),
		{Kind: TableKind, Table: budget},
		formula(fmt.Sprintf("u(Y)/Y ≈ %s", SI.Format(u.Relative))),
		highlight("Final result: " + FinalResult(res)),
	}
}

func chartSection(res *elasticity.Result, png []byte) Section {
	s := Section{ID: SectionChart, Heading: "σ-ε plot"}
	if len(png) == 0 {
		s.Blocks = []Block{paragraph("(The chart snapshot could not be captured; take a screenshot of the plot and paste it here.)")}
		return s
	}
	s.Blocks = []Block{
		{Kind: Image, PNG: png, Text: fmt.Sprintf("Stress against strain with the least-squares line (Y = %s Pa)", SI.Format(res.Fit.Slope))},
	}
	return s
}

func conclusionSection(res *elasticity.Result) Section {
	largest, second := dominantTerms(res.Uncertainty.Terms)
	return Section{
		ID:      SectionConclusion,
		Heading: "Conclusion",
		Blocks: []Block{
			paragraph(fmt.Sprintf(
				"Least-squares fitting gives a final Young's modulus of %s. "+
					"The stress-strain points fall on a straight line, as Hooke's law predicts in the elastic range, "+
					"and the optical lever resolved elongations well below a millimetre. "+
					"The uncertainty budget is led by the %s and the %s, which is where the method can be improved.",
				FinalResult(res), termNames[largest], termNames[second])),
		},
	}
}

// dominantTerms returns the indexes of the two largest relative contributions
func dominantTerms(terms [5]float64) (int, int) {
	first, second := -1, -1
	for i, t := range terms {
		t = math.Abs(t)
		switch {
		case first < 0 || t > math.Abs(terms[first]):
			second = first
			first = i
		case second < 0 || t > math.Abs(terms[second]):
			second = i
		}
	}
	return first, second
}

