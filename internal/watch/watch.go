// Package watch turns fsnotify events into debounced change batches.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period before a batch is delivered.
const DefaultDebounce = 200 * time.Millisecond

// Batch lists the paths that changed during one debounce window.
type Batch struct {
	Paths []string
}

// Watcher watches a set of files and directories (non-recursively).
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   zerolog.Logger

	out      chan Batch
	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool

	mu      sync.Mutex
	watched map[string]bool
}

// New creates a watcher. A non-positive debounce selects DefaultDebounce.
func New(debounce time.Duration, logger zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fs:       fw,
		debounce: debounce,
		logger:   logger,
		out:      make(chan Batch, 1),
		done:     make(chan struct{}),
		stop:     make(chan struct{}),
		watched:  make(map[string]bool),
	}, nil
}

// Batches delivers debounced change batches. It is closed when the
// watch loop exits.
func (w *Watcher) Batches() <-chan Batch { return w.out }

// Add starts watching path.
func (w *Watcher) Add(path string) error {
	path = filepath.Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watched[path] {
		return nil
	}
	if err := w.fs.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	w.watched[path] = true
	return nil
}

// Remove stops watching path. Unknown paths are ignored.
func (w *Watcher) Remove(path string) error {
	path = filepath.Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.watched[path] {
		return nil
	}
	delete(w.watched, path)
	if err := w.fs.Remove(path); err != nil {
		return fmt.Errorf("unwatch %s: %w", path, err)
	}
	return nil
}

// Set replaces the watched set with paths. Paths that cannot be watched
// are skipped; the first such error is returned.
func (w *Watcher) Set(paths []string) error {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[filepath.Clean(p)] = true
	}

	var firstErr error
	for _, p := range w.Watched() {
		if !want[p] {
			if err := w.Remove(p); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	for p := range want {
		if err := w.Add(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Watched returns the watched paths, sorted.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.watched))
	for p := range w.watched {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Start runs the watch loop until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	if w.started.Swap(true) {
		return
	}
	go w.loop(ctx)
}

// Close stops the watcher and waits for a started loop to exit.
func (w *Watcher) Close() error {
	w.stopOnce.Do(func() { close(w.stop) })
	err := w.fs.Close()
	if w.started.Load() {
		<-w.done
	}
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	defer close(w.out)
	defer func() { _ = w.fs.Close() }()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]bool)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Str("event", "watch.stopped").Msg("watcher stopped")
			return
		case <-w.stop:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug().
				Str("event", "watch.change").
				Str("op", ev.Op.String()).
				Str("path", ev.Name).
				Msg("path changed")
			pending[ev.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			batch := Batch{Paths: make([]string, 0, len(pending))}
			for p := range pending {
				batch.Paths = append(batch.Paths, p)
			}
			sort.Strings(batch.Paths)
			clear(pending)
			select {
			case w.out <- batch:
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error().
				Err(err).
				Str("event", "watch.error").
				Msg("watcher error")
		}
	}
}
