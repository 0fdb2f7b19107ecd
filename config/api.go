package config

import (
	"strings"
	"time"
)

// APIConfig contains configuration for the university REST API client.
type APIConfig struct {
	// BaseURL is the root of the university API (e.g. "https://uni.example.com/api").
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds each request to the university API, including the
	// transparent token-refresh retry.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 30 * time.Second
	}
}
