package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the failure envelope shared by every endpoint.
type errorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, errs []string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message, Errors: errs})
}
