package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: University API client configuration
//   - http.go: HTTP server configuration
//   - redis.go: Redis configuration
//   - session.go: Session store configuration
//   - logging.go: Logging configuration
type AppConfig struct {
	// IsDev controls development mode behavior (templates and static assets
	// served from disk instead of the embedded copies).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// API is the university back end the portal talks to.
	API APIConfig `envPrefix:"UNI_API_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Redis configuration (session backend)
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Session store configuration
	Session SessionConfig `envPrefix:"SESSION_"`

	// Logging configuration
	Log LogConfig `envPrefix:"LOG_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.HTTP.Sanitize()
	c.Session.Sanitize()
	c.Log.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
