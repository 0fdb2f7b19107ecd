package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionBackend selects where server-side sessions are stored.
type SessionBackend string

const (
	// SessionBackendRedis stores sessions in Redis. This is the production
	// backend; it survives restarts and is shared across replicas.
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendMemory stores sessions in process memory
	// (for development only).
	SessionBackendMemory SessionBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (b *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "redis", "memory":
		*b = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: redis, memory)", v)
	}
}

// SessionConfig contains server-side session store configuration.
type SessionConfig struct {
	// Backend determines which session store to use.
	Backend SessionBackend `env:"BACKEND" envDefault:"redis"`

	// TTL is how long an idle session stays valid. It also drives the
	// session cookie's Max-Age.
	TTL time.Duration `env:"TTL" envDefault:"12h"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.Backend == "" {
		s.Backend = SessionBackendRedis
	}
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
}
