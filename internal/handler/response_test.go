package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folio/backend/internal/service"
	"github.com/sebdah/goldie/v2"
)

// Response bodies are part of the public contract; compare them byte for byte.
func TestResponseBodies_Golden(t *testing.T) {
	g := goldie.New(t)

	t.Run("not_found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NotFound(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
		g.Assert(t, "not_found", rec.Body.Bytes())
	})

	t.Run("missing_fields", func(t *testing.T) {
		h := NewContactHandler(service.NewContactService(nil))
		rec := postSubmit(h, `{"name":"","email":"a@b.com","message":"valid message text"}`)
		g.Assert(t, "missing_fields", rec.Body.Bytes())
	})

	t.Run("submitted", func(t *testing.T) {
		h := NewContactHandler(&mockContactService{})
		rec := postSubmit(h, `{"name":"Jo","email":"jo@x.com","message":"Hello there, testing."}`)
		g.Assert(t, "submitted", rec.Body.Bytes())
	})
}
