// Package logger configures the slog logger shared by the HTTP server,
// the event consumers and the stores, and carries request IDs through
// context so every record for one booking request can be correlated.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/seatwise/seatwise/internal/config"
)

// New builds the process-wide logger. Records go to stdout as JSON and
// carry a "service" attribute so multiple seatwise processes sharing a log
// stream stay distinguishable.
func New(cfg config.Logging) *slog.Logger {
	level := parseLevel(cfg.Level)

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler).With("service", cfg.Service)
}

// parseLevel maps the configured level name to slog.Level, defaulting to
// info for anything unrecognized.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
