package config

import (
	"log/slog"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.HTTP.Addr, ":8080")
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("API.BaseURL = %q, want default", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.Session.Backend != SessionBackendRedis {
		t.Errorf("Session.Backend = %q, want redis", cfg.Session.Backend)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("Session.TTL = %v, want 12h", cfg.Session.TTL)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("Redis.URI = %q, want localhost:6379", cfg.Redis.URI)
	}
	if cfg.IsDev {
		t.Error("IsDev = true, want false by default")
	}
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("DEV", "true")
	t.Setenv("UNI_API_BASE_URL", "https://uni.example.com/api/")
	t.Setenv("UNI_API_TIMEOUT", "5s")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "DEBUG")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("IsDev = false, want true")
	}
	// Trailing slash is trimmed so client URL joins stay predictable.
	if cfg.API.BaseURL != "https://uni.example.com/api" {
		t.Errorf("API.BaseURL = %q, want trimmed URL", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v, want 5s", cfg.API.Timeout)
	}
	if cfg.Session.Backend != SessionBackendMemory {
		t.Errorf("Session.Backend = %q, want memory", cfg.Session.Backend)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("Session.TTL = %v, want 1h", cfg.Session.TTL)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Errorf("HTTP.Addr = %q, want :9999", cfg.HTTP.Addr)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("Log.SlogLevel() = %v, want debug", cfg.Log.SlogLevel())
	}
}

func TestAppConfigInvalidSessionBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "cassandra")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for invalid session backend")
	}
}

func TestDetectDevModeFromNodeEnv(t *testing.T) {
	tests := []struct {
		name    string
		nodeEnv string
		want    bool
	}{
		{name: "development", nodeEnv: "development", want: true},
		{name: "dev", nodeEnv: "dev", want: true},
		{name: "production", nodeEnv: "production", want: false},
		{name: "empty", nodeEnv: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NODE_ENV", tt.nodeEnv)
			cfg := AppConfig{}
			cfg.Sanitize()
			if cfg.IsDev != tt.want {
				t.Errorf("IsDev = %v, want %v", cfg.IsDev, tt.want)
			}
		})
	}
}

func TestSessionConfigSanitize(t *testing.T) {
	s := SessionConfig{TTL: -time.Minute}
	s.Sanitize()
	if s.TTL != 12*time.Hour {
		t.Errorf("TTL = %v, want 12h fallback", s.TTL)
	}
	if s.Backend != SessionBackendRedis {
		t.Errorf("Backend = %q, want redis fallback", s.Backend)
	}
}

func TestHTTPConfigSanitizeClampsCompression(t *testing.T) {
	h := HTTPConfig{CompressionLevel: 42}
	h.Sanitize()
	if h.CompressionLevel != 9 {
		t.Errorf("CompressionLevel = %d, want 9", h.CompressionLevel)
	}

	h = HTTPConfig{CompressionLevel: -3}
	h.Sanitize()
	if h.CompressionLevel != 1 {
		t.Errorf("CompressionLevel = %d, want 1", h.CompressionLevel)
	}
}
