// Package redis provides the Redis-backed session store used in production.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	"github.com/uniportal/uni-ui-api/internal/session"
)

// SessionStore persists sessions in Redis with a fixed TTL. Unlike an access
// token, a session's lifetime is not derived from token expiry: expired access
// tokens are refreshed in place, so the record outlives any one token pair.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Options configures a SessionStore.
type Options struct {
	// Prefix is prepended to session IDs to build Redis keys. Defaults to "session:".
	Prefix string
	// TTL bounds how long an idle session survives. Defaults to 30 days.
	TTL time.Duration
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client redis.UniversalClient, opts Options) *SessionStore {
	if opts.Prefix == "" {
		opts.Prefix = "session:"
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * 24 * time.Hour
	}
	return &SessionStore{client: client, prefix: opts.Prefix, ttl: opts.TTL}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, s.prefix+sess.ID, data, s.ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, session.ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, session.ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// Interface guard.
var _ session.Store = (*SessionStore)(nil)
