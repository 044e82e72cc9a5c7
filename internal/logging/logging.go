// Package logging sets up the debug log. The terminal belongs to the
// browser, so records only ever go to a file.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

// Open returns a logger appending to path, or a discarding logger when path
// is empty. The closer releases the file.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), io.NopCloser(nil), nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Discard(), io.NopCloser(nil), errors.Wrapf(err, "failed to open log %s", path)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	return logger, file, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
