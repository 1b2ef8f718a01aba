package repository

import (
	"context"
	"errors"
	"time"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/pkg/contactform"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

const (
	pgInsertContact = `INSERT INTO contact_submissions (name, email, message)
		 VALUES ($1, $2, $3)
		 RETURNING id::text, created_at`

	pgListRecentContacts = `SELECT id::text, name, email, message, created_at
		  FROM contact_submissions
		  ORDER BY created_at DESC, seq DESC
		  LIMIT $1`
)

// Create inserts a new contact_submissions row. id and created_at come from
// the database RETURNING clause; sub is only touched once the row exists.
func (r *PgContactRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	if err := checkSchema(sub); err != nil {
		return err
	}
	var id string
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, pgInsertContact, sub.Name, sub.Email, sub.Message).
		Scan(&id, &createdAt)
	if err != nil {
		return mapPgError(err)
	}
	sub.ID = id
	sub.CreatedAt = createdAt.UTC()
	return nil
}

// ListRecent returns the newest submissions first, at most limit of them.
func (r *PgContactRepository) ListRecent(ctx context.Context, limit int) ([]*model.ContactSubmission, error) {
	rows, err := r.pool.Query(ctx, pgListRecentContacts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.ContactSubmission
	for rows.Next() {
		var s model.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Message, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.CreatedAt = s.CreatedAt.UTC()
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

// Ping checks the pool can reach the database.
func (r *PgContactRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close releases every pooled connection.
func (r *PgContactRepository) Close() {
	r.pool.Close()
}

// pgCheckMessages maps the table's CHECK constraints to user-facing messages.
var pgCheckMessages = map[string]string{
	"contact_submissions_name_check":      "Name cannot exceed 50 characters",
	"contact_submissions_email_check":     "Please provide a valid email address",
	"contact_submissions_message_check":   "Message cannot exceed 1000 characters",
	"contact_submissions_name_present":    "Name is required",
	"contact_submissions_message_present": "Message is required",
}

const (
	pgCodeNotNullViolation = "23502"
	pgCodeCheckViolation   = "23514"
)

// mapPgError turns constraint violations into a SchemaError and leaves every
// other error untouched.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgCodeCheckViolation:
		msg, ok := pgCheckMessages[pgErr.ConstraintName]
		if !ok {
			msg = "Validation failed"
		}
		return &SchemaError{Errors: []string{msg}}
	case pgCodeNotNullViolation:
		label := contactform.Field(pgErr.ColumnName).Label()
		return &SchemaError{Errors: []string{label + " is required"}}
	default:
		return err
	}
}
