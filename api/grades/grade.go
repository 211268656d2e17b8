package grades

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/kilianp07/markbook/core/distribution"
	"github.com/kilianp07/markbook/core/grading"
	"github.com/kilianp07/markbook/core/model"
	"github.com/kilianp07/markbook/core/pipeline"
	"github.com/kilianp07/markbook/core/report"
	"github.com/kilianp07/markbook/pkg/export"
)

// GradeResponse is the JSON body returned by POST /v1/grade.
type GradeResponse struct {
	RunID   string                `json:"run_id"`
	Records []model.StudentRecord `json:"records"`
	Summary distribution.Summary  `json:"summary"`
}

var contentTypes = map[string]string{
	"table": "text/plain; charset=utf-8",
	"csv":   "text/csv",
	"xlsx":  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// NewGradeHandler grades the mark sheet in the request body. The format
// query parameter selects json (default), table, csv or xlsx. Records are
// returned in report order.
func NewGradeHandler(p *pipeline.Pipeline, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = string(export.FormatJSON)
		}
		var exportFmt export.Format
		if format != "table" {
			f, err := export.ParseFormat(format)
			if err != nil {
				respondJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
				return
			}
			exportFmt = f
		}

		name := r.URL.Query().Get("name")
		if name == "" {
			name = "http"
		}
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: err.Error()})
				return
			}
			respondJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		res, err := p.RunReader(r.Context(), name, bytes.NewReader(data))
		if err != nil {
			writeRunError(w, err)
			return
		}

		if exportFmt == export.FormatJSON {
			respondJSON(w, http.StatusOK, GradeResponse{RunID: res.RunID, Records: res.Ranked, Summary: res.Summary})
			return
		}
		var buf bytes.Buffer
		if format == "table" {
			err = report.WriteTable(&buf, res.Ranked)
		} else {
			err = export.Write(&buf, exportFmt, res.Ranked, res.Summary)
		}
		if err != nil {
			respondJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
			return
		}
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Run-ID", res.RunID)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func writeRunError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}
	if k := model.Kind(err); k != nil {
		body.Kind = k.Error()
	}
	var verr *grading.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusUnprocessableEntity, body)
	case errors.Is(err, model.ErrMalformedHeader), errors.Is(err, model.ErrMalformedRow):
		respondJSON(w, http.StatusBadRequest, body)
	default:
		respondJSON(w, http.StatusInternalServerError, body)
	}
}
