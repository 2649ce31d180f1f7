package restserver

import (
	"math"

	"github.com/chrissnell/youngslab/internal/report"
	"github.com/chrissnell/youngslab/internal/workbench"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

// budgetQuantities label UncertaintyResult.Terms in the API
var budgetQuantities = [5]string{"diameter", "optical_path", "wire_length", "lever_arm", "reading_delta"}

// f64 drops non-finite values, which JSON cannot carry
func f64(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// transformRun converts a workbench run into its API representation
func transformRun(run *workbench.Run) *ResultResponse {
	res := run.Result

	resp := &ResultResponse{
		RunID:         run.ID.String(),
		Finished:      run.Finished.UnixMilli(),
		DurationMS:    float64(run.Took.Microseconds()) / 1000,
		Summary:       report.FinalResult(res),
		Modulus:       f64(res.Fit.Slope),
		Intercept:     f64(res.Fit.Intercept),
		Uncertainty:   f64(res.Uncertainty.Modulus),
		Relative:      f64(res.Uncertainty.Relative),
		Finite:        res.Uncertainty.Finite(),
		AvgDiameterMM: f64(res.Derived.AvgDiameterMM()),
		AreaM2:        f64(res.Derived.Area),
		Points:        make([]PointResponse, 0, len(res.Points)),
		Sample: SampleResponse{
			Index:     res.Sample.Index,
			LoadIndex: res.Sample.LoadIndex,
		},
		Differences: DifferencesResponse{
			LoadDeltaKg: f64(res.Differences.LoadDelta),
			MeanMM:      f64(res.Differences.MeanMM),
		},
	}

	for _, p := range res.Points {
		resp.Points = append(resp.Points, PointResponse{
			LoadIndex:    p.LoadIndex,
			LoadDeltaKg:  f64(p.LoadDelta),
			ReadingDelta: f64(p.ReadingDelta),
			Stress:       f64(p.Stress),
			Strain:       f64(p.Strain),
		})
	}
	for _, row := range res.Differences.Rows {
		resp.Differences.Rows = append(resp.Differences.Rows, f64(row.DeltaMM))
	}
	for i, term := range res.Uncertainty.Terms {
		resp.Budget = append(resp.Budget, BudgetTermResponse{Quantity: budgetQuantities[i], Value: f64(term)})
	}

	return resp
}

// fieldsFromRequest flattens a ComputeRequest into pipeline input
func fieldsFromRequest(req *ComputeRequest) elasticity.MapSource {
	fields := make(elasticity.MapSource, len(req.Fields))
	for k, v := range req.Fields {
		fields[k] = string(v)
	}
	return fields
}
