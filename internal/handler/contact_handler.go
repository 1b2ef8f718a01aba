package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/service"
	"github.com/folio/backend/pkg/contactform"
)

const maxSubmitBodyBytes = 64 << 10

// User-facing messages for the contact endpoints.
const (
	msgSubmitted   = "Thank you for contacting! I will get back to you soon."
	msgInvalidBody = "Invalid request body"
	msgServerError = "Server error. Please try again later."
	msgListFailed  = "Failed to fetch contacts"
)

// ContactHandler handles contact form submission and listing.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type submitData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type submitResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    submitData `json:"data"`
}

// Submit handles POST /api/contact/submit.
// Accepts a JSON body {name, email, message}; form-encoded bodies are accepted too.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBodyBytes)

	candidate, err := decodeCandidate(r)
	if err != nil {
		slog.Info("contact submission unreadable", "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody, nil)
		return
	}

	sub, err := h.contactService.Submit(r.Context(), candidate)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			slog.Info("contact submission rejected", "reason", vErr.Message, "errors", vErr.Errors)
			writeError(w, http.StatusBadRequest, vErr.Message, vErr.Errors)
			return
		}
		slog.Error("contact submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError, nil)
		return
	}

	slog.Info("contact submission stored", "id", sub.ID)
	writeJSON(w, http.StatusCreated, submitResponse{
		Success: true,
		Message: msgSubmitted,
		Data: submitData{
			ID:    sub.ID,
			Name:  sub.Name,
			Email: sub.Email,
		},
	})
}

func decodeCandidate(r *http.Request) (contactform.Candidate, error) {
	var c contactform.Candidate
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return c, err
		}
		c.Name = r.PostForm.Get("name")
		c.Email = r.PostForm.Get("email")
		c.Message = r.PostForm.Get("message")
		return c, nil
	}
	// An empty body is an empty submission, reported field by field.
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, err
	}
	return c, nil
}

// listResponse is the JSON response for GET /api/contact/all.
type listResponse struct {
	Success bool                       `json:"success"`
	Data    []*model.ContactSubmission `json:"data"`
	Total   int                        `json:"total"`
}

// List handles GET /api/contact/all: the newest submissions, at most model.ListLimit.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.contactService.ListRecent(r.Context())
	if err != nil {
		slog.Error("fetch contacts failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgListFailed, nil)
		return
	}

	// Return [] not null for empty lists
	if subs == nil {
		subs = []*model.ContactSubmission{}
	}

	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: subs, Total: len(subs)})
}
