package handler

import (
	"net/http"

	"github.com/folio/backend/internal/repository"
)

// Handler serves the process-level endpoints (health, CORS, 404).
type Handler struct {
	db            repository.DB
	allowedOrigin string
}

func New(db repository.DB, allowedOrigin string) *Handler {
	return &Handler{db: db, allowedOrigin: allowedOrigin}
}

// CORS allows the configured frontend origin, with credentials, and answers
// preflight requests itself.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		if origin := r.Header.Get("Origin"); origin != "" && origin == h.allowedOrigin {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NotFound answers every request no route matched.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found", nil)
}
