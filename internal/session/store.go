// Package session defines the server-side session store contract and an
// in-memory implementation used by tests and dev mode. The production store
// is Redis-backed (internal/adapters/redis).
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Store persists sessions keyed by their opaque ID.
//
// Save overwrites the whole record, so the access/refresh pair is always
// replaced together; a reader never observes a half-rotated pair.
// Delete is idempotent.
type Store interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is a TTL-aware in-memory Store.
type MemoryStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]memoryEntry
}

type memoryEntry struct {
	sess      domainauth.Session
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store whose entries expire after ttl.
// A non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, data: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	entry := memoryEntry{sess: sess}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}
	s.mu.Lock()
	s.data[sess.ID] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	s.mu.RLock()
	entry, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.data, id)
		s.mu.Unlock()
		return domainauth.Session{}, ErrNotFound
	}
	return entry.sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
	return nil
}
