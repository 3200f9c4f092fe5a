// Package logging sets up the application logger. The TUI owns the
// terminal, so logs go to a file instead of stderr.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Init opens path in append mode and installs a text slog handler writing
// to it as the default logger. It returns the logger and a close func for
// the underlying file.
func Init(path string) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, file.Close, nil
}
