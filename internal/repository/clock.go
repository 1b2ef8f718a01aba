package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// stamper hands out (id, createdAt) pairs. createdAt never goes backwards even
// if the wall clock does, and ids are UUIDv7 so they sort in issue order.
type stamper struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func newStamper(now func() time.Time) *stamper {
	if now == nil {
		now = time.Now
	}
	return &stamper{now: now}
}

// seed raises the floor for future timestamps, e.g. to the newest persisted record.
func (s *stamper) seed(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.After(s.last) {
		s.last = t.UTC()
	}
}

func (s *stamper) next() (string, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := uuid.NewV7()
	if err != nil {
		return "", time.Time{}, err
	}
	t := s.now().UTC()
	if t.Before(s.last) {
		t = s.last
	}
	s.last = t
	return id.String(), t, nil
}
