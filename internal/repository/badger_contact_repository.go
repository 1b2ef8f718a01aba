package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/folio/backend/internal/model"
)

const (
	badgerContactPrefix = "contact:"
	badgerSequenceKey   = "meta:contact_seq"
	badgerSequenceLease = 100
)

// BadgerContactRepository stores submissions in an embedded BadgerDB.
//
// Keys are "contact:{created_at_nanos:019}:{seq:019}" so a reverse prefix scan
// yields newest first, with the persistent sequence breaking timestamp ties in
// insertion order.
type BadgerContactRepository struct {
	db    *badger.DB
	seq   *badger.Sequence
	stamp *stamper

	// mu keeps stamp and sequence allocation in the same order.
	mu sync.Mutex
}

var _ ContactRepository = (*BadgerContactRepository)(nil)

// OpenBadger opens (or creates) a BadgerDB at path. An empty path opens an
// in-memory database.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return db, nil
}

// NewBadgerContactRepository wraps db. The repository owns db from here on and
// closes it in Close.
func NewBadgerContactRepository(db *badger.DB) (*BadgerContactRepository, error) {
	return newBadgerContactRepository(db, time.Now)
}

func newBadgerContactRepository(db *badger.DB, now func() time.Time) (*BadgerContactRepository, error) {
	seq, err := db.GetSequence([]byte(badgerSequenceKey), badgerSequenceLease)
	if err != nil {
		return nil, fmt.Errorf("badger sequence: %w", err)
	}
	r := &BadgerContactRepository{db: db, seq: seq, stamp: newStamper(now)}

	newest, err := r.ListRecent(context.Background(), 1)
	if err != nil {
		_ = seq.Release()
		return nil, err
	}
	if len(newest) == 1 {
		r.stamp.seed(newest[0].CreatedAt)
	}
	return r, nil
}

// badgerRecord is the on-disk JSON value.
type badgerRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func badgerKey(createdAt time.Time, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%019d:%019d", badgerContactPrefix, createdAt.UnixNano(), seq))
}

// Create writes one record in a single transaction.
func (r *BadgerContactRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	if err := checkSchema(sub); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.db.IsClosed() {
		return ErrClosed
	}

	r.mu.Lock()
	id, createdAt, err := r.stamp.next()
	var n uint64
	if err == nil {
		n, err = r.seq.Next()
	}
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("badger: allocate record key: %w", err)
	}

	value, err := json.Marshal(badgerRecord{
		ID:        id,
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
		CreatedAt: createdAt,
	})
	if err != nil {
		return err
	}
	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(createdAt, n), value)
	}); err != nil {
		return fmt.Errorf("badger: write contact: %w", err)
	}

	sub.ID = id
	sub.CreatedAt = createdAt
	return nil
}

// ListRecent scans the contact prefix backwards and stops after limit records.
func (r *BadgerContactRepository) ListRecent(ctx context.Context, limit int) ([]*model.ContactSubmission, error) {
	if r.db.IsClosed() {
		return nil, ErrClosed
	}
	var subs []*model.ContactSubmission
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(badgerContactPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(append(prefix, 0xff)); it.ValidForPrefix(prefix); it.Next() {
			if len(subs) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec badgerRecord
			if err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &rec)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			subs = append(subs, &model.ContactSubmission{
				ID:        rec.ID,
				Name:      rec.Name,
				Email:     rec.Email,
				Message:   rec.Message,
				CreatedAt: rec.CreatedAt.UTC(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger: list contacts: %w", err)
	}
	return subs, nil
}

// Ping reports whether the database is still open.
func (r *BadgerContactRepository) Ping(ctx context.Context) error {
	if r.db.IsClosed() {
		return ErrClosed
	}
	return ctx.Err()
}

// Close releases the sequence lease and closes the database.
func (r *BadgerContactRepository) Close() {
	_ = r.seq.Release()
	_ = r.db.Close()
}
