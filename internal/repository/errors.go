package repository

import (
	"errors"
	"strings"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/pkg/contactform"
)

// ErrClosed is returned by a store that has already been closed.
var ErrClosed = errors.New("store closed")

// SchemaError is returned by Create when a record fails the store's own field
// rules. Nothing is written when it is returned.
type SchemaError struct {
	Errors []string
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Errors, "; ")
}

// checkSchema applies contactform.StoreRules to sub.
func checkSchema(sub *model.ContactSubmission) error {
	res := contactform.Store.Validate(contactform.Candidate{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
	})
	if res.Valid() {
		return nil
	}
	return &SchemaError{Errors: res.Messages()}
}
