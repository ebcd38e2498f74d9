// Package logging sets up the zerolog file logger. The terminal belongs to
// the UI renderer, so logs never go to stdout or stderr while the
// application runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Open creates a logger writing to the given file, plus a close function.
// An empty path returns a disabled logger; the application works fine
// without a log file.
func Open(path, level string) (zerolog.Logger, func() error, error) {
	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(file).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", "shopfront").
		Logger()
	return logger, file.Close, nil
}

// NewTest returns a logger for tests, writing to the given sink.
func NewTest(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
