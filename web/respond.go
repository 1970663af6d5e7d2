// Package web holds the shared request pipeline: JSON responders, the single
// error-to-response boundary, and generic handler adapters that sequence
// decode, validate and invoke for every endpoint.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/usguri/almoxarifado-go/apperror"
)

// WriteJSON serializes data and writes it with the given status. A nil data
// writes an empty body rather than the JSON literal "null".
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response body", "error", err)
	}
}

// WriteError is the single responder boundary for failures. Any error is
// normalized to an *AppError; internal faults are logged with full detail and
// answered with the generic message, while client-error kinds render their
// messages verbatim per the taxonomy.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.Internal() {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", appErr.StatusCode(),
			"error", appErr.Error(),
		)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
