package http

import (
	"encoding/json"
	"net/http"

	"sisdisfraz-backend/internal/logger"
	"sisdisfraz-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps any error onto the fixed status taxonomy and emits
// the {"error": ..., "suggestion": ...} body clients rely on.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := service.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, body)
}

// decodeBody parses a JSON request body into dst, rejecting malformed
// payloads as a 400 rather than surfacing a decoder error.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, service.BadRequest("request body is not valid JSON"))
		return false
	}
	return true
}
