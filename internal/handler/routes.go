package handler

import "net/http"

// NewRouter wires every API route. limiter may be nil to disable submission
// rate limiting.
func NewRouter(h *Handler, contacts *ContactHandler, limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	submit := http.Handler(http.HandlerFunc(contacts.Submit))
	if limiter != nil {
		submit = limiter.Middleware(submit)
	}
	mux.Handle("POST /api/contact/submit", submit)
	mux.HandleFunc("GET /api/contact/all", contacts.List)

	mux.HandleFunc("/", NotFound)

	return RequestLogger(SecurityHeaders(h.CORS(mux)))
}
