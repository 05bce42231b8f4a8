package transport

import (
	"encoding/json"
	"net/http"

	"github.com/tmorrell/cruxlog/internal/domain/climb"
)

// ErrorResponse is the JSON body of every non-2xx response. Errors is only
// present for validation failures.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

func writeFieldErrors(w http.ResponseWriter, errs climb.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: "Validation failed",
		Errors:  errs,
	})
}
