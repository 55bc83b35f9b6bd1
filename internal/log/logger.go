package log

import (
	"io"
	"log/slog"
)

// Config holds logger configuration.
type Config struct {
	Verbose   bool
	Component string
}

// New returns a text logger writing to w, at debug level when verbose.
func New(w io.Writer, cfg Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if cfg.Component != "" {
		logger = logger.With("component", cfg.Component)
	}
	return logger
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
