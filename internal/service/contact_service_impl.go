package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/pkg/contactform"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// Submit re-validates the candidate with the server rules, then hands it to
// the store, which applies its own schema and assigns ID and CreatedAt.
func (s *contactServiceImpl) Submit(ctx context.Context, c contactform.Candidate) (*model.ContactSubmission, error) {
	c = c.Normalize()
	if res := contactform.Server.Validate(c); !res.Valid() {
		msg := MsgValidationFailed
		if res.MissingRequired() {
			msg = MsgMissingFields
		}
		return nil, &ValidationError{Message: msg, Errors: res.Messages()}
	}

	sub := &model.ContactSubmission{
		Name:    c.Name,
		Email:   c.Email,
		Message: c.Message,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		var schemaErr *repository.SchemaError
		if errors.As(err, &schemaErr) {
			return nil, &ValidationError{Message: MsgValidationFailed, Errors: schemaErr.Errors}
		}
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return sub, nil
}

// ListRecent returns the newest submissions, capped at model.ListLimit.
func (s *contactServiceImpl) ListRecent(ctx context.Context) ([]*model.ContactSubmission, error) {
	subs, err := s.repo.ListRecent(ctx, model.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	if len(subs) > model.ListLimit {
		subs = subs[:model.ListLimit]
	}
	return subs, nil
}
