package config

import (
	"log/slog"
	"strings"
)

// LogConfig contains structured logging configuration.
type LogConfig struct {
	// Level is the minimum level that gets emitted: debug, info, warn, error.
	Level string `env:"LEVEL" envDefault:"info"`

	// Format selects the handler: "json" for production, "text" for local use.
	Format string `env:"FORMAT" envDefault:"json"`
}

// Sanitize normalises logging configuration values.
func (l *LogConfig) Sanitize() {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	if l.Format != "text" {
		l.Format = "json"
	}
}

// SlogLevel maps the configured level onto a slog.Level. Unknown values
// fall back to info.
func (l *LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
