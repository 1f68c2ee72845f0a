package buffer

import "testing"

func TestBuffer_SetCursor_ClampsAndVersions(t *testing.T) {
	b := New("a\nbc", Options{})
	if b.Version() != 0 {
		t.Fatalf("expected version 0, got %d", b.Version())
	}

	b.SetCursor(Pos{Row: 999, Col: 999})
	if got := b.Cursor(); got != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("cursor=%v, want (1,2)", got)
	}
	if b.Version() != 1 {
		t.Fatalf("expected version 1, got %d", b.Version())
	}
	if b.TextVersion() != 0 {
		t.Fatalf("expected text version unchanged, got %d", b.TextVersion())
	}

	b.SetCursor(Pos{Row: 1, Col: 2})
	if b.Version() != 1 {
		t.Fatalf("expected version unchanged, got %d", b.Version())
	}
}

func TestBuffer_SetSelection_NormalizesClampsAndVersions(t *testing.T) {
	b := New("a\nbc", Options{})

	b.SetSelection(Range{
		Start: Pos{Row: 1, Col: 99},
		End:   Pos{Row: 0, Col: -1},
	})

	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection active")
	}
	want := Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 1, Col: 2}}
	if r != want {
		t.Fatalf("selection=%v, want %v", r, want)
	}
	if b.Version() != 1 {
		t.Fatalf("expected version 1, got %d", b.Version())
	}

	raw, ok := b.SelectionRaw()
	if !ok || raw.Start != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("raw selection should keep direction, got %v", raw)
	}

	// Setting the same effective selection should not bump the version.
	b.SetSelection(Range{Start: Pos{Row: 1, Col: 2}, End: Pos{Row: 0, Col: 0}})
	if b.Version() != 1 {
		t.Fatalf("expected version unchanged, got %d", b.Version())
	}

	b.ClearSelection()
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
	if b.Version() != 2 {
		t.Fatalf("expected version 2, got %d", b.Version())
	}

	b.ClearSelection()
	if b.Version() != 2 {
		t.Fatalf("expected version unchanged, got %d", b.Version())
	}
}

func TestBuffer_LineAccessors(t *testing.T) {
	b := New("héllo\n\nwörld", Options{})
	if got := b.LineCount(); got != 3 {
		t.Fatalf("line count: got %d, want 3", got)
	}
	if got := b.Line(2); got != "wörld" {
		t.Fatalf("line 2: got %q", got)
	}
	if got := b.Line(9); got != "" {
		t.Fatalf("out of range line: got %q", got)
	}
	if got := b.LineLen(0); got != 5 {
		t.Fatalf("line len: got %d, want 5", got)
	}
	if got := b.GraphemeAt(Pos{Row: 0, Col: 1}); got != "é" {
		t.Fatalf("grapheme at: got %q", got)
	}
	if got := b.GraphemeAt(Pos{Row: 0, Col: 5}); got != "" {
		t.Fatalf("grapheme at eol: got %q", got)
	}
	got := b.TextInRange(Range{Start: Pos{Row: 0, Col: 3}, End: Pos{Row: 2, Col: 2}})
	if got != "lo\n\nwö" {
		t.Fatalf("text in range: got %q", got)
	}
}

func TestBuffer_Reset_DropsHistory(t *testing.T) {
	b := New("abc", Options{})
	b.SetCursor(Pos{Row: 0, Col: 3})
	b.InsertText("d")
	tv := b.TextVersion()

	b.Reset("x\ny")
	if got := b.Text(); got != "x\ny" {
		t.Fatalf("text after reset: got %q", got)
	}
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor after reset: got %v", got)
	}
	if b.CanUndo() || b.CanRedo() {
		t.Fatalf("expected history cleared")
	}
	if b.TextVersion() != tv+1 {
		t.Fatalf("text version: got %d, want %d", b.TextVersion(), tv+1)
	}
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no last change after reset")
	}
}
