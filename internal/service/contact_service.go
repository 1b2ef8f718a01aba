package service

import (
	"context"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/pkg/contactform"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates c and stores it as a new ContactSubmission. A rejected
	// submission returns a *ValidationError and stores nothing.
	Submit(ctx context.Context, c contactform.Candidate) (*model.ContactSubmission, error)

	// ListRecent returns up to model.ListLimit submissions, newest first.
	ListRecent(ctx context.Context) ([]*model.ContactSubmission, error)
}
