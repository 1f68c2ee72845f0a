package vim

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hydroxite/hydroxite/buffer"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// feed sends each key to m and emulates the host editor for pass-through
// keys. It returns the last non-empty action.
func feed(t *testing.T, m *Machine, b *buffer.Buffer, keys ...string) Action {
	t.Helper()
	var last Action
	for _, k := range keys {
		msg := keyMsg(k)
		res := m.HandleKey(b, msg)
		if res.PassThrough {
			switch msg.Type {
			case tea.KeyRunes, tea.KeySpace:
				b.InsertText(string(msg.Runes))
			case tea.KeyEnter:
				b.InsertNewline()
			case tea.KeyBackspace:
				b.DeleteBackward()
			}
		}
		if len(res.Typed) > 0 {
			b.InsertText(string(res.Typed))
		}
		if res.Action.Kind != ActionNone {
			last = res.Action
		}
	}
	return last
}

func assertText(t *testing.T, b *buffer.Buffer, want string) {
	t.Helper()
	if got := b.Text(); got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func assertCursor(t *testing.T, b *buffer.Buffer, row, col int) {
	t.Helper()
	if got, want := b.Cursor(), (buffer.Pos{Row: row, Col: col}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

type fakeClipboard struct {
	text   string
	writes int
	err    error
}

func (c *fakeClipboard) ReadText() (string, error) { return c.text, nil }

func (c *fakeClipboard) WriteText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.text = s
	c.writes++
	return nil
}
