package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/aigovern/admin-api/internal/config"
)

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger with the
// appropriate log level and sets it as the default logger for the application.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	level := parseLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	log := slog.New(handler)

	// Set as default so package-level slog functions use the same handler.
	slog.SetDefault(log)

	return log, nil
}

// parseLevel converts a textual log level to a slog.Level. Unrecognized
// values fall back to info with a warning on stderr.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmp.Warn("invalid log level configured, using default level",
			"configured_level", s,
			"default_level", "info")
		return slog.LevelInfo
	}
}
