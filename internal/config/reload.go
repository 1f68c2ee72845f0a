package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hydroxite/hydroxite/internal/watch"
)

// Holder keeps the current configuration and reloads it when the file
// changes on disk.
type Holder struct {
	mu   sync.RWMutex
	cfg  Config
	path string

	logger    zerolog.Logger
	watcher   *watch.Watcher
	done      chan struct{}
	listeners []chan<- Config
}

func NewHolder(initial Config, path string, logger zerolog.Logger) *Holder {
	return &Holder{cfg: initial, path: path, logger: logger}
}

// Get returns the current configuration.
func (h *Holder) Get() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// Path returns the watched config file path.
func (h *Holder) Path() string { return h.path }

// Reload reads the file again. On error the current configuration stays
// in effect.
func (h *Holder) Reload() error {
	next, err := Load(h.path)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.cfg = next
	listeners := slices.Clone(h.listeners)
	h.mu.Unlock()

	h.logger.Info().
		Str("event", "config.reloaded").
		Str("path", h.path).
		Str("theme", next.Theme).
		Msg("configuration reloaded")

	for _, ch := range listeners {
		select {
		case ch <- next:
		default:
			h.logger.Warn().Str("event", "config.listener_full").Msg("dropping config update for slow listener")
		}
	}
	return nil
}

// RegisterListener registers a channel that receives every successfully
// reloaded configuration. Sends never block.
func (h *Holder) RegisterListener(ch chan<- Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, ch)
}

// StartWatcher watches the config file's directory, so editors that save
// by rename are noticed too. A missing directory disables watching.
func (h *Holder) StartWatcher(ctx context.Context, debounce time.Duration) error {
	if h.path == "" {
		return nil
	}
	dir := filepath.Dir(h.path)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		h.logger.Info().
			Str("event", "config.watcher_disabled").
			Str("dir", dir).
			Msg("config directory missing; not watching")
		return nil
	}

	w, err := watch.New(debounce, h.logger)
	if err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}
	h.watcher = w
	h.done = make(chan struct{})
	w.Start(ctx)
	go h.watchLoop(w)

	h.logger.Info().
		Str("event", "config.watcher_started").
		Str("path", h.path).
		Msg("watching config file for changes")
	return nil
}

func (h *Holder) watchLoop(w *watch.Watcher) {
	defer close(h.done)
	target := filepath.Clean(h.path)
	for batch := range w.Batches() {
		if !slices.Contains(batch.Paths, target) {
			continue
		}
		if err := h.Reload(); err != nil {
			h.logger.Error().
				Err(err).
				Str("event", "config.auto_reload_failed").
				Msg("automatic config reload failed")
		}
	}
}

// Stop stops the watcher, if running, and waits for it to exit.
func (h *Holder) Stop() {
	if h.watcher == nil {
		return
	}
	_ = h.watcher.Close()
	<-h.done
	h.watcher = nil
}
