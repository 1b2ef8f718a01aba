package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/folio/backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapPgError_CheckViolation(t *testing.T) {
	err := mapPgError(&pgconn.PgError{Code: pgCodeCheckViolation, ConstraintName: "contact_submissions_email_check"})

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if len(schemaErr.Errors) != 1 || schemaErr.Errors[0] != "Please provide a valid email address" {
		t.Errorf("unexpected messages: %v", schemaErr.Errors)
	}
}

func TestMapPgError_UnknownConstraint(t *testing.T) {
	err := mapPgError(&pgconn.PgError{Code: pgCodeCheckViolation, ConstraintName: "something_else"})

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if schemaErr.Errors[0] != "Validation failed" {
		t.Errorf("expected generic message, got %q", schemaErr.Errors[0])
	}
}

func TestMapPgError_NotNull(t *testing.T) {
	err := mapPgError(&pgconn.PgError{Code: pgCodeNotNullViolation, ColumnName: "message"})

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if schemaErr.Errors[0] != "Message is required" {
		t.Errorf("expected 'Message is required', got %q", schemaErr.Errors[0])
	}
}

func TestMapPgError_PassThrough(t *testing.T) {
	connErr := errors.New("connection reset")
	if got := mapPgError(connErr); got != connErr {
		t.Errorf("expected error passed through, got %v", got)
	}

	uniqueErr := &pgconn.PgError{Code: "23505"}
	var schemaErr *SchemaError
	if errors.As(mapPgError(uniqueErr), &schemaErr) {
		t.Error("unique violation must not become a SchemaError")
	}
}

// TestPgContactRepository_Integration runs against a real database when
// TEST_DATABASE_URL points at one with the migrations applied.
func TestPgContactRepository_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	repo := NewPgContactRepository(pool)
	defer repo.Close()

	if _, err := pool.Exec(ctx, "TRUNCATE contact_submissions"); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	first := &model.ContactSubmission{Name: "Jo", Email: "jo@x.com", Message: "Hello there, testing."}
	second := &model.ContactSubmission{Name: "Jo", Email: "jo@x.com", Message: "Hello there, testing."}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct ids, got %q and %q", first.ID, second.ID)
	}

	got, err := repo.ListRecent(ctx, model.ListLimit)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", got)
	}
}
