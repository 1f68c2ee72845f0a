// Package log configures the process-wide zerolog logger. The terminal
// belongs to the UI, so log output goes to a file or is discarded.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EnvLevel overrides the configured level when Config.Level is empty.
const EnvLevel = "HYDROXITE_LOG_LEVEL"

// Config captures options for configuring the global logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", etc.)
	File   string    // optional log file, created with its parent directory
	Output io.Writer // optional writer; takes precedence over File
}

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
	file *os.File
)

// Configure replaces the global logger. Without Output or File all
// events are discarded.
func Configure(cfg Config) error {
	level := zerolog.InfoLevel
	name := cfg.Level
	if name == "" {
		name = os.Getenv(EnvLevel)
	}
	if name != "" {
		parsed, err := zerolog.ParseLevel(name)
		if err != nil {
			return fmt.Errorf("log level %q: %w", name, err)
		}
		level = parsed
	}
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	var opened *os.File
	if writer == nil && cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		writer, opened = f, f
	}
	if writer == nil {
		writer = io.Discard
	}

	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Close()
	}
	file = opened
	base = zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("service", "hydroxite").
		Logger()
	return nil
}

// Close releases the log file, if any, and discards further events.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	base = zerolog.Nop()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
