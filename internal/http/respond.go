package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"contabilidad/internal/core"
	"contabilidad/internal/filestore"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps an error from the core, file store or storage
// layers to the response taxonomy: validation failures are the caller's
// problem, missing files are 404, anything else is a storage failure.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, filestore.ErrExtensionNotAllowed):
		writeError(w, http.StatusBadRequest, "Archivo no válido")
	case core.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, filestore.ErrNotFound):
		writeError(w, http.StatusNotFound, "Archivo no encontrado")
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"url", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}
