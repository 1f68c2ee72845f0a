package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hydroxite/hydroxite/buffer"
)

func TestOnChange_FiresOnMutationsAndSkipsNoOps(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Text: "ab",
		OnChange: func(ev ChangeEvent) {
			events = append(events, ev)
		},
	})
	events = nil

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if len(events) != 1 {
		t.Fatalf("events after move: got %d, want %d", len(events), 1)
	}
	if events[0].TextChanged {
		t.Fatalf("cursor move must not report a text change")
	}
	if got := events[0].Cursor; got != (buffer.Pos{Row: 0, Col: 1}) {
		t.Fatalf("event cursor after move: got %v, want %v", got, buffer.Pos{Row: 0, Col: 1})
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight}) // to EOL
	if len(events) != 2 {
		t.Fatalf("events after move to EOL: got %d, want %d", len(events), 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight}) // no-op at EOL
	if len(events) != 2 {
		t.Fatalf("events after no-op: got %d, want %d", len(events), 2)
	}

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if len(events) != 3 {
		t.Fatalf("events after insert: got %d, want %d", len(events), 3)
	}
	if !events[2].TextChanged {
		t.Fatalf("insert must report a text change")
	}
	if events[2].TextVersion != 1 {
		t.Fatalf("text version after insert: got %d, want 1", events[2].TextVersion)
	}
}

func TestOnChange_CarriesAppliedEdits(t *testing.T) {
	var last ChangeEvent
	m := New(Config{
		Text:     "ab",
		OnChange: func(ev ChangeEvent) { last = ev },
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if len(last.Edits) != 1 {
		t.Fatalf("edits after insert: got %d, want 1", len(last.Edits))
	}
	if got := last.Edits[0].InsertText; got != "X" {
		t.Fatalf("inserted text: got %q, want %q", got, "X")
	}
	if last.Source != buffer.ChangeSourceEdit {
		t.Fatalf("source: got %v, want edit", last.Source)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if last.Edits != nil {
		t.Fatalf("cursor move must not carry edits: got %+v", last.Edits)
	}

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if last.Source != buffer.ChangeSourceUndo || len(last.Edits) != 1 {
		t.Fatalf("undo event: source=%v edits=%d", last.Source, len(last.Edits))
	}
}
