package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Init installs the global logger. The TUI owns stdout, so records go to a
// JSON file at path, or nowhere when path is empty. The returned func
// closes the file.
func Init(path string, debug bool) (func() error, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	if path == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(New(f, level))
	return f.Close, nil
}

// New returns a JSON logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Info records an informational message on the global logger.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn records a warning on the global logger.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error records an error on the global logger.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}
