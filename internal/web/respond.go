package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stagecrew/propshelf/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write json response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain errors to HTTP status codes. notFoundMsg is
// the body used for ErrNotFound so each resource keeps its own wording.
func (s *Server) writeDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  verr.Error(),
			"fields": verr.FieldMap(),
		})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrLocationExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeBodyError reports a JSON decoding failure. Type mismatches (such as
// a non-array photos field) name the offending field.
func writeBodyError(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		writeError(w, http.StatusBadRequest, "Invalid value for field: "+typeErr.Field)
		return
	}
	writeError(w, http.StatusBadRequest, "Request must be JSON")
}
