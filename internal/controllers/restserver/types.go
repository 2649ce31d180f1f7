package restserver

import (
	"encoding/json"

	"github.com/chrissnell/youngslab/pkg/dataset"
)

// ComputeRequest is the JSON body accepted by /api/compute
type ComputeRequest struct {
	Fields map[string]FieldValue `json:"fields" validate:"required,min=1"`
}

// FieldValue accepts a field written either as a JSON string or a JSON number.
// null becomes the empty string, which the pipeline treats as missing.
type FieldValue string

// UnmarshalJSON implements json.Unmarshaler
func (f *FieldValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FieldValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FieldValue(n.String())
	return nil
}

// Float values are pointers so that NaN and ±Inf serialize as null

// ResultResponse is the bundle of one successful run
type ResultResponse struct {
	RunID         string               `json:"run_id"`
	Finished      int64                `json:"ts"`
	DurationMS    float64              `json:"duration_ms"`
	Summary       string               `json:"summary"`
	Modulus       *float64             `json:"modulus_pa"`
	Intercept     *float64             `json:"intercept_pa"`
	Uncertainty   *float64             `json:"uncertainty_pa"`
	Relative      *float64             `json:"relative_uncertainty"`
	Finite        bool                 `json:"uncertainty_finite"`
	AvgDiameterMM *float64             `json:"avg_diameter_mm"`
	AreaM2        *float64             `json:"area_m2"`
	Points        []PointResponse      `json:"points"`
	Sample        SampleResponse       `json:"sample"`
	Differences   DifferencesResponse  `json:"differences"`
	Budget        []BudgetTermResponse `json:"budget"`
}

// PointResponse is one stress-strain point
type PointResponse struct {
	LoadIndex    int      `json:"load_index"`
	LoadDeltaKg  *float64 `json:"load_delta_kg"`
	ReadingDelta *float64 `json:"reading_delta_m"`
	Stress       *float64 `json:"stress_pa"`
	Strain       *float64 `json:"strain"`
}

// SampleResponse identifies the representative point
type SampleResponse struct {
	Index     int `json:"index"`
	LoadIndex int `json:"load_index"`
}

// DifferencesResponse is the successive-difference table
type DifferencesResponse struct {
	LoadDeltaKg *float64   `json:"load_delta_kg"`
	Rows        []*float64 `json:"rows_mm"`
	MeanMM      *float64   `json:"mean_mm"`
}

// BudgetTermResponse is one squared relative term of the uncertainty budget
type BudgetTermResponse struct {
	Quantity string   `json:"quantity"`
	Value    *float64 `json:"value"`
}

// DefaultsResponse pre-fills the entry form
type DefaultsResponse struct {
	Fields  map[string]string `json:"fields"`
	Dataset *dataset.File     `json:"dataset"`
}
