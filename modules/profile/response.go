package profile

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

// envelope is the JSON body of every API response.
type envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *errorDetail   `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, envelope{Error: &errorDetail{Code: code, Message: err.Error()}})
}

// writeRejected answers 422 with the report and the failures keyed by field,
// in the shape the form scripts read.
func writeRejected(w http.ResponseWriter, report validator.Report) {
	details := make(map[string][]string)
	for _, v := range report.Failures() {
		details[v.Field] = append(details[v.Field], v.Message)
	}
	writeJSON(w, http.StatusUnprocessableEntity, envelope{
		Data: report,
		Error: &errorDetail{
			Code:    "validation_error",
			Message: report.Err().Error(),
			Details: details,
		},
	})
}
