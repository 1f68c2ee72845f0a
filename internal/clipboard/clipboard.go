// Package clipboard connects the editor to the system clipboard, keeping
// an in-process copy for terminals and hosts where no clipboard tool is
// available.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

// System is the system clipboard with an in-memory fallback. It satisfies
// both editor.Clipboard and vim.Clipboard.
type System struct {
	mu       sync.Mutex
	local    string
	disabled bool
	logger   zerolog.Logger

	readAll  func() (string, error)
	writeAll func(string) error
}

// New returns a System clipboard. When the platform has no clipboard
// support only the in-memory copy is used.
func New(logger zerolog.Logger) *System {
	return &System{
		disabled: clipboard.Unsupported,
		logger:   logger,
		readAll:  clipboard.ReadAll,
		writeAll: clipboard.WriteAll,
	}
}

// Memory returns a clipboard that never touches the system.
func Memory() *System {
	return &System{disabled: true, logger: zerolog.Nop()}
}

// Available reports whether the system clipboard is in use.
func (s *System) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.disabled
}

// ReadText returns the system clipboard, or the in-memory copy when the
// system clipboard is unavailable or fails.
func (s *System) ReadText() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return s.local, nil
	}
	text, err := s.readAll()
	if err != nil {
		s.logger.Warn().Err(err).Str("event", "clipboard.read_failed").Msg("system clipboard read failed; using local copy")
		return s.local, nil
	}
	return text, nil
}

// WriteText stores text locally and in the system clipboard. A failing
// system clipboard is disabled for the rest of the session.
func (s *System) WriteText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.local = text
	if s.disabled {
		return nil
	}
	if err := s.writeAll(text); err != nil {
		s.disabled = true
		s.logger.Warn().Err(err).Str("event", "clipboard.write_failed").Msg("system clipboard write failed; falling back to local copy")
	}
	return nil
}
