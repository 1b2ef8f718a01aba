package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folio/backend/pkg/contactform"
	"github.com/stretchr/testify/require"
)

func newAPIServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api/")
}

func TestClient_SubmitSuccess(t *testing.T) {
	var got contactform.Candidate
	c := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/contact/submit", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Thanks","data":{"id":"abc","name":"Jo","email":"jo@x.com"}}`))
	})

	resp, err := c.Submit(t.Context(), contactform.Candidate{Name: "Jo", Email: "jo@x.com", Message: "Hello there, testing."})
	require.NoError(t, err)
	require.Equal(t, "Thanks", resp.Message)
	require.Equal(t, "abc", resp.Data.ID)
	require.Equal(t, "Jo", got.Name)
	require.Equal(t, "Hello there, testing.", got.Message)
}

func TestClient_SubmitValidationFailure(t *testing.T) {
	c := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Please fill in all required fields","errors":["Name is required"]}`))
	})

	_, err := c.Submit(t.Context(), contactform.Candidate{Email: "a@b.com", Message: "valid message text"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Please fill in all required fields", apiErr.Message)
	require.Equal(t, []string{"Name is required"}, apiErr.Errors)
}

func TestClient_SuccessFalseWith2xxIsAPIError(t *testing.T) {
	c := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
	})

	_, err := c.Submit(t.Context(), contactform.Candidate{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "nope", apiErr.Message)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	c := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.List(t.Context())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Empty(t, apiErr.Message)
}

func TestClient_List(t *testing.T) {
	c := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/contact/all", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"total":1,"data":[{"id":"1","name":"Jo","email":"jo@x.com","message":"hi there friend","createdAt":"2024-01-02T03:04:05Z"}]}`))
	})

	resp, err := c.List(t.Context())
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "Jo", resp.Data[0].Name)
	require.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), resp.Data[0].CreatedAt.UTC())
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Submit(t.Context(), contactform.Candidate{})
	require.ErrorIs(t, err, ErrTransport)
	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr))
}

func TestClient_TimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	_, err := New(srv.URL, WithTimeout(50*time.Millisecond)).List(t.Context())
	require.ErrorIs(t, err, ErrTransport)
}
