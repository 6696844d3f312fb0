package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ngocdai99/furniture-backend/internal/service/models/apperror"
)

// JSON writes a success envelope. Extra fields are merged next to
// "status": true.
func JSON(w http.ResponseWriter, r *http.Request, fields map[string]any) {
	body := map[string]any{"status": true}
	for k, v := range fields {
		body[k] = v
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(r.Context(), "Error encoding response", "error", err)
	}
}

// Error classifies err through the apperror taxonomy and writes the failure
// envelope with the mapped status code.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.AsError(err)

	slog.ErrorContext(r.Context(), "Request failed",
		"error", err,
		"http_status", appErr.HTTPStatus(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus())
	if encErr := json.NewEncoder(w).Encode(map[string]any{
		"status":  false,
		"message": appErr.Message,
	}); encErr != nil {
		slog.ErrorContext(r.Context(), "Error encoding error response", "error", encErr)
	}
}

// Validation writes a 400 failure envelope for malformed input.
func Validation(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, apperror.Validation(message))
}
