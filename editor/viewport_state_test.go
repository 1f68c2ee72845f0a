package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hydroxite/hydroxite/buffer"
)

func TestViewportState_ExposesOffsets(t *testing.T) {
	m := New(Config{Text: "0\n1\n2\n3"})
	m = m.SetSize(10, 2)

	st := m.ViewportState()
	if st.TopRow != 0 || st.VisibleRows != 2 || st.LeftCellOffset != 0 {
		t.Fatalf("initial viewport state: got %+v", st)
	}

	m, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	st = m.ViewportState()
	if st.TopRow <= 0 {
		t.Fatalf("top row after manual wheel scroll: got %d, want > 0", st.TopRow)
	}
	if got := m.Buffer().Cursor(); got != (buffer.Pos{}) {
		t.Fatalf("wheel scroll must not move the cursor: got %v", got)
	}
}

func TestDocScreenMapping_UsesViewportOffsets(t *testing.T) {
	m := New(Config{Text: "ab\ncd\nef"})
	m = m.SetSize(10, 2)
	m, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	top := m.ViewportState().TopRow

	if got := m.ScreenToDoc(1, 0); got != (buffer.Pos{Row: top, Col: 1}) {
		t.Fatalf("ScreenToDoc at scrolled top: got %v, want %v", got, buffer.Pos{Row: top, Col: 1})
	}

	x, y, ok := m.DocToScreen(buffer.Pos{Row: top, Col: 1})
	if !ok || x != 1 || y != 0 {
		t.Fatalf("DocToScreen visible pos: got (x=%d,y=%d,ok=%v), want (1,0,true)", x, y, ok)
	}

	if top > 0 {
		_, y, ok = m.DocToScreen(buffer.Pos{Row: top - 1, Col: 1})
		if ok || y != -1 {
			t.Fatalf("DocToScreen offscreen row above view: got (y=%d,ok=%v), want (-1,false)", y, ok)
		}
	}
}

func TestDocToScreen_UsesHorizontalOffset(t *testing.T) {
	m := New(Config{Text: "abcdef"})
	m = m.SetSize(3, 1)
	for i := 0; i < 5; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}

	if got := m.ViewportState().LeftCellOffset; got != 3 {
		t.Fatalf("left offset after cursor move: got %d, want %d", got, 3)
	}

	x, y, ok := m.DocToScreen(buffer.Pos{Row: 0, Col: 5})
	if !ok || x != 2 || y != 0 {
		t.Fatalf("DocToScreen cursor col: got (x=%d,y=%d,ok=%v), want (2,0,true)", x, y, ok)
	}

	x, y, ok = m.DocToScreen(buffer.Pos{Row: 0, Col: 0})
	if ok || x != -3 || y != 0 {
		t.Fatalf("DocToScreen left-clipped col: got (x=%d,y=%d,ok=%v), want (-3,0,false)", x, y, ok)
	}

	// Moving back home scrolls back.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if got := m.ViewportState().LeftCellOffset; got != 0 {
		t.Fatalf("left offset after home: got %d, want 0", got)
	}
}

func TestViewportState_SidewaysWheelScrollsColumns(t *testing.T) {
	m := New(Config{Text: "abcdefghij\nab"})
	m = m.SetSize(4, 2)

	wheel := func(b tea.MouseButton) {
		m, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: b})
	}

	wheel(tea.MouseButtonWheelRight)
	if got := m.ViewportState().LeftCellOffset; got != 4 {
		t.Fatalf("offset after one tick: got %d, want 4", got)
	}
	wheel(tea.MouseButtonWheelRight)
	wheel(tea.MouseButtonWheelRight)
	// Widest line is 10 cells plus the end-of-line cursor cell.
	if got := m.ViewportState().LeftCellOffset; got != 7 {
		t.Fatalf("offset clamps at line end: got %d, want 7", got)
	}
	if got := m.Buffer().Cursor(); got != (buffer.Pos{}) {
		t.Fatalf("wheel scroll must not move the cursor: got %v", got)
	}

	wheel(tea.MouseButtonWheelLeft)
	wheel(tea.MouseButtonWheelLeft)
	if got := m.ViewportState().LeftCellOffset; got != 0 {
		t.Fatalf("offset after scrolling back: got %d, want 0", got)
	}
}
