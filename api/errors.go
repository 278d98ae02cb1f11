package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/kfglabs/directory/internal/apperror"
)

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError maps an application error to its HTTP status and emits the
// error envelope. Unclassified errors become opaque 500s; their detail goes
// to the log, not the client.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("internal error", slog.Any("err", err))
		message = "internal server error"
	}

	writeErrorStatus(w, message, status)
}

func writeErrorStatus(w http.ResponseWriter, message string, status int) {
	writeJSON(w, errorEnvelope{Error: errorBody{Message: message, Status: status}}, status)
}

// notFoundHandler answers unmatched routes with the same envelope as any
// other error.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeErrorStatus(w, "Not Found", http.StatusNotFound)
}
