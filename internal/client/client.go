// Package client talks to the contact API and drives the contact form
// lifecycle on the visitor side.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/pkg/contactform"
)

// DefaultTimeout bounds a single request round-trip.
const DefaultTimeout = 15 * time.Second

// ErrTransport wraps failures that never produced an HTTP response
// (connection refused, timeout, unreadable body).
var ErrTransport = errors.New("contact api unreachable")

// APIError is a response the server answered with but did not accept.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("contact api: status %d: %s", e.StatusCode, e.Message)
}

// SubmittedContact is the subset of the stored record echoed on success.
type SubmittedContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SubmitResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    SubmittedContact `json:"data"`
}

type ListResponse struct {
	Success bool                       `json:"success"`
	Data    []*model.ContactSubmission `json:"data"`
	Total   int                        `json:"total"`
}

// envelope captures the fields every response shares.
type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// Client is a thin JSON client for the /api/contact endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New returns a Client rooted at baseURL, e.g. "http://localhost:5000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit posts one candidate to /contact/submit.
func (c *Client) Submit(ctx context.Context, cand contactform.Candidate) (*SubmitResponse, error) {
	body, err := json.Marshal(cand)
	if err != nil {
		return nil, fmt.Errorf("encode candidate: %w", err)
	}
	var out SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/contact/submit", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List fetches the most recent submissions from /contact/all.
func (c *Client) List(ctx context.Context) (*ListResponse, error) {
	var out ListResponse
	if err := c.do(ctx, http.MethodGet, "/contact/all", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || decodeErr != nil || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return nil
}
