// Package respond holds the JSON wire helpers shared by the HTTP handlers.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Writer emits JSON responses. Encode faults are recorded on the injected
// logger; by the time one surfaces the status line is already on the wire,
// so there is nothing further to send.
type Writer struct {
	log zerolog.Logger
}

func NewWriter(log zerolog.Logger) Writer {
	return Writer{log: log}
}

// wireError is the body shape of every non-2xx response.
type wireError struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// JSON writes data with the given status code.
func (wr Writer) JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		wr.log.Error().Err(err).Int("status", statusCode).Msg("response encoding failed")
	}
}

// Error writes the standard error body for the given status code.
func (wr Writer) Error(w http.ResponseWriter, statusCode int, message string) {
	wr.JSON(w, statusCode, wireError{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	})
}

func (wr Writer) BadRequest(w http.ResponseWriter, message string) {
	wr.Error(w, http.StatusBadRequest, message)
}

func (wr Writer) NotFound(w http.ResponseWriter, message string) {
	wr.Error(w, http.StatusNotFound, message)
}

func (wr Writer) Internal(w http.ResponseWriter, message string) {
	wr.Error(w, http.StatusInternalServerError, message)
}
