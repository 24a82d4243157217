// Package logging sets up the per-run log file. Each run appends to a fresh
// timestamped file so batch history survives across invocations.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir is the log directory relative to the working directory.
const DefaultDir = "logs"

// NewRunLogger creates a logger writing to both stderr and a timestamped
// file under dir (created if missing). The returned close func flushes and
// closes the file.
func NewRunLogger(dir string) (*slog.Logger, func() error, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	name := fmt.Sprintf("splitter_run_%s.log", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stderr, f), nil)
	return slog.New(handler), f.Close, nil
}
