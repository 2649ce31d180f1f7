package export

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/chrissnell/youngslab/internal/report"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

// Workbook sheet names
const (
	SheetMeasurements = "Measurements"
	SheetStressStrain = "StressStrain"
)

// WriteWorkbook writes the raw table, the stress-strain series, the fit summary and,
// when chartPNG is non-empty, the chart image into an .xlsx workbook.
func WriteWorkbook(w io.Writer, res *elasticity.Result, chartPNG []byte) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetMeasurements); err != nil {
		return err
	}
	if err := writeMeasurements(f, res); err != nil {
		return fmt.Errorf("error writing %s sheet: %w", SheetMeasurements, err)
	}

	if _, err := f.NewSheet(SheetStressStrain); err != nil {
		return err
	}
	if err := writeStressStrain(f, res); err != nil {
		return fmt.Errorf("error writing %s sheet: %w", SheetStressStrain, err)
	}

	if len(chartPNG) > 0 {
		err := f.AddPictureFromBytes(SheetStressStrain, "G2", &excelize.Picture{
			Extension: ".png",
			File:      chartPNG,
			Format:    &excelize.GraphicOptions{AltText: "Stress-strain chart", ScaleX: 0.75, ScaleY: 0.75},
		})
		if err != nil {
			return fmt.Errorf("error embedding chart: %w", err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func writeMeasurements(f *excelize.File, res *elasticity.Result) error {
	sw, err := f.NewStreamWriter(SheetMeasurements)
	if err != nil {
		return err
	}

	row := 1
	put := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return sw.SetRow(cell, values)
	}

	raw := res.Raw
	if err := put("Trial", "d (mm)"); err != nil {
		return err
	}
	for i, d := range raw.DiameterTrials {
		if err := put(i+1, d); err != nil {
			return err
		}
	}
	if err := put("Mean", res.Derived.AvgDiameterMM()); err != nil {
		return err
	}

	row++
	for _, r := range [][]interface{}{
		{"Quantity", "Value (mm)"},
		{"D (optical path)", raw.OpticalPath},
		{"L (wire length)", raw.WireLength},
		{"b (lever arm)", raw.LeverArm},
	} {
		if err := put(r...); err != nil {
			return err
		}
	}

	row++
	if err := put("i", "M (kg)", "n' loading (mm)", "n'' unloading (mm)", "n mean (mm)"); err != nil {
		return err
	}
	for i := 0; i < elasticity.LoadSteps; i++ {
		err := put(i, raw.Loads[i], raw.Loading[i], raw.Unloading[i], elasticity.ToMillimeters(res.Derived.Midpoints[i]))
		if err != nil {
			return err
		}
	}

	return sw.Flush()
}

func writeStressStrain(f *excelize.File, res *elasticity.Result) error {
	sheet := SheetStressStrain
	header := []interface{}{"ΔM (kg)", "Δn (m)", "σ (Pa)", "ε"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, p := range res.Points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{p.LoadDelta, p.ReadingDelta, p.Stress, p.Strain}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	summary := [][]interface{}{
		{"Slope Y (Pa)", number(res.Fit.Slope)},
		{"Intercept C (Pa)", number(res.Fit.Intercept)},
		{"u(Y) (Pa)", number(res.Uncertainty.Modulus)},
		{"u(Y)/Y", number(res.Uncertainty.Relative)},
		{"Result", report.FinalResult(res)},
	}
	start := len(res.Points) + 3
	for i, values := range summary {
		cell, err := excelize.CoordinatesToCellName(1, start+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// number keeps non-finite values out of numeric cells, which spreadsheet readers reject
func number(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}
