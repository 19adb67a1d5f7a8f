// Package logging configures the process-wide zerolog logger.
//
// gish logs to a file, never to the terminal: stdout and stderr are part of
// the interactive session and must stay clean for the prompt and command
// output.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = zerolog.New(io.Discard)
)

// Setup opens (or creates) the log file at path and installs a logger at
// the given level. Before Setup the package logger discards everything, so
// early code may log unconditionally.
func Setup(level, path string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	mu.Lock()
	base = zerolog.New(file).Level(lvl).With().Timestamp().Logger()
	mu.Unlock()

	return nil
}

// Component returns a sub-logger tagged with a component name.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", name).Logger()
}
