package restserver

import (
	"bytes"
	"encoding/json"
	"errors"
	htmltemplate "html/template"
	"io"
	"mime"
	"net/http"

	"github.com/chrissnell/youngslab/internal/constants"
	"github.com/chrissnell/youngslab/internal/export"
	"github.com/chrissnell/youngslab/internal/log"
	"github.com/chrissnell/youngslab/internal/metrics"
	"github.com/chrissnell/youngslab/internal/report"
	"github.com/chrissnell/youngslab/internal/script"
	"github.com/chrissnell/youngslab/internal/validator"
	"github.com/chrissnell/youngslab/internal/workbench"
	"github.com/chrissnell/youngslab/pkg/dataset"
	"github.com/chrissnell/youngslab/pkg/elasticity"
	"github.com/chrissnell/youngslab/pkg/responseformat"
)

// maxBodyBytes bounds /api/compute request bodies
const maxBodyBytes = 64 << 10

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// Compute runs the calculation on a form-encoded or JSON submission
func (h *Handlers) Compute(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)

	var src elasticity.FieldSource
	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body ComputeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "bad_request", "error decoding request body: "+err.Error())
			return
		}
		if err := validator.Validate(&body); err != nil {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		src = fieldsFromRequest(&body)
	} else {
		if err := req.ParseForm(); err != nil {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "bad_request", "error parsing form: "+err.Error())
			return
		}
		src = elasticity.FormSource(req.PostForm)
	}

	run, err := h.controller.bench.Compute(req.Context(), src)
	if err != nil {
		h.writeRunError(w, req, err)
		return
	}

	h.formatter.WriteResponse(w, req, transformRun(run), map[string]string{"X-Run-Id": run.ID.String()})
}

// GetResult returns the bundle of the latest run
func (h *Handlers) GetResult(w http.ResponseWriter, req *http.Request) {
	run, err := h.controller.bench.Latest()
	if err != nil {
		h.writeRunError(w, req, err)
		return
	}
	h.formatter.WriteResponse(w, req, transformRun(run), map[string]string{"X-Run-Id": run.ID.String()})
}

// GetDefaults returns the worked example that pre-fills the form
func (h *Handlers) GetDefaults(w http.ResponseWriter, req *http.Request) {
	raw := elasticity.DefaultDataset()
	h.formatter.WriteResponse(w, req, DefaultsResponse{
		Fields:  raw.Fields(),
		Dataset: dataset.FromRaw("default", raw),
	}, nil)
}

// GetChart serves the chart snapshot of the latest run
func (h *Handlers) GetChart(w http.ResponseWriter, req *http.Request) {
	png, err := h.controller.bench.ChartPNG()
	if err != nil {
		h.writeRunError(w, req, err)
		return
	}
	metrics.RecordExport("chart")
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// GetReportFragment serves the report as an HTML fragment for the output area of the page
func (h *Handlers) GetReportFragment(w http.ResponseWriter, req *http.Request) {
	doc, err := h.controller.bench.Document()
	if err != nil {
		h.writeRunError(w, req, err)
		return
	}

	var buf bytes.Buffer
	if err := report.RenderFragment(&buf, doc); err != nil {
		log.Errorf("error rendering report fragment: %v", err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "internal", "error rendering report")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// GetReportDoc serves the Word-compatible report
func (h *Handlers) GetReportDoc(w http.ResponseWriter, req *http.Request) {
	h.download(w, req, "doc", export.DocContentType, ".doc", h.controller.bench.WriteDoc)
}

// GetReportWorkbook serves the spreadsheet export
func (h *Handlers) GetReportWorkbook(w http.ResponseWriter, req *http.Request) {
	h.download(w, req, "xlsx", export.XLSXContentType, ".xlsx", h.controller.bench.WriteWorkbook)
}

// GetScript serves the MATLAB plotting script
func (h *Handlers) GetScript(w http.ResponseWriter, req *http.Request) {
	h.download(w, req, "script", "text/x-matlab; charset=utf-8", "", func(out io.Writer) error {
		src, err := h.controller.bench.Script()
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, src)
		return err
	})
}

// download renders an artifact into memory first so that a failure can still
// produce a proper error response
func (h *Handlers) download(w http.ResponseWriter, req *http.Request, kind, contentType, ext string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		h.writeRunError(w, req, err)
		return
	}

	filename := script.Filename
	if ext != "" {
		filename = h.controller.bench.Filename(ext)
	}

	metrics.RecordExport(kind)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	buf.WriteTo(w)
}

// writeRunError maps workbench and pipeline errors onto HTTP statuses
func (h *Handlers) writeRunError(w http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, workbench.ErrNoResult):
		h.formatter.WriteError(w, req, http.StatusNotFound, "no_result", err.Error())
	case elasticity.IsInputError(err):
		h.formatter.WriteError(w, req, http.StatusUnprocessableEntity, elasticity.Kind(err), elasticity.Message(err))
	default:
		log.Errorf("request %s %s failed: %v", req.Method, req.URL.Path, err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "internal", "internal error")
	}
}

// loadRow is one row of the reading table on the entry form
type loadRow struct {
	Index          int
	LoadKg         float64
	LoadingField   string
	UnloadingField string
}

// ServeIndexTemplate serves the entry form
func (h *Handlers) ServeIndexTemplate(w http.ResponseWriter, req *http.Request) {
	view, err := htmltemplate.New("index.html.tmpl").
		Funcs(htmltemplate.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(h.controller.FS, "index.html.tmpl")
	if err != nil {
		log.Error("error parsing index template:", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	diameters := make([]string, 0, constants.MaxDiameterTrial)
	for i := 1; i <= constants.MaxDiameterTrial; i++ {
		diameters = append(diameters, elasticity.DiameterField(i))
	}
	rows := make([]loadRow, 0, elasticity.LoadSteps)
	for i, kg := range constants.LoadsKg {
		rows = append(rows, loadRow{
			Index:          i,
			LoadKg:         kg,
			LoadingField:   elasticity.LoadingField(i),
			UnloadingField: elasticity.UnloadingField(i),
		})
	}

	templateData := struct {
		PageTitle      string
		Version        string
		DiameterFields []string
		OpticalPath    string
		WireLength     string
		LeverArm       string
		Rows           []loadRow
	}{
		PageTitle:      h.controller.bench.Settings().Title,
		Version:        constants.Version,
		DiameterFields: diameters,
		OpticalPath:    constants.FieldOpticalPath,
		WireLength:     constants.FieldWireLength,
		LeverArm:       constants.FieldLeverArm,
		Rows:           rows,
	}

	var buf bytes.Buffer
	if err := view.Execute(&buf, templateData); err != nil {
		log.Error("error executing index template:", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
