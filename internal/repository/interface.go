package repository

import (
	"context"

	"github.com/folio/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository is the record store for contact submissions.
//
// Create assigns sub.ID and sub.CreatedAt; callers never set them. CreatedAt is
// non-decreasing across records created through the same store. ListRecent
// returns at most limit records ordered newest first, ties broken by insertion
// order (newest first).
type ContactRepository interface {
	DB
	Create(ctx context.Context, sub *model.ContactSubmission) error
	ListRecent(ctx context.Context, limit int) ([]*model.ContactSubmission, error)
	Close()
}
