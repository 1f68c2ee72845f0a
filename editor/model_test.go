package editor

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/hydroxite/hydroxite/buffer"
	"github.com/hydroxite/hydroxite/vim"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func TestModel_SetSizeAffectsViewHeight(t *testing.T) {
	m := New(Config{Text: "a\nb\nc"})
	m = m.Blur()

	m = m.SetSize(20, 2)
	if got := lipgloss.Height(m.View()); got != 2 {
		t.Fatalf("height after SetSize(20,2): got %d, want %d", got, 2)
	}

	m = m.SetSize(20, 4)
	if got := lipgloss.Height(m.View()); got != 4 {
		t.Fatalf("height after SetSize(20,4): got %d, want %d", got, 4)
	}
}

func TestView_SnapshotFixedSize(t *testing.T) {
	m := New(Config{
		Text:         "one\ntwo\nthree\nfour\nfive",
		ShowLineNums: true,
	})
	m = m.Blur()
	m = m.SetSize(8, 3)

	got := strings.Split(m.View(), "\n")
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	for i := range got {
		got[i] = strings.TrimRight(stripANSI(got[i]), " ")
	}

	want := []string{
		"1 one",
		"2 two",
		"3 three",
	}
	if fmt.Sprintf("%q", got) != fmt.Sprintf("%q", want) {
		t.Fatalf("unexpected view:\n got: %q\nwant: %q", got, want)
	}
}

func TestModel_SetBufferResetsScroll(t *testing.T) {
	m := New(Config{Text: "0\n1\n2\n3\n4\n5"})
	m = m.SetSize(10, 2)
	m.buf.SetCursor(buffer.Pos{Row: 5})
	m, _ = m.Update(struct{}{})
	if m.ViewportState().TopRow != 4 {
		t.Fatalf("top row before swap: got %d, want 4", m.ViewportState().TopRow)
	}

	next := buffer.New("fresh", buffer.Options{})
	m = m.SetBuffer(next)
	if m.Buffer() != next {
		t.Fatalf("buffer not swapped")
	}
	if got := m.ViewportState().TopRow; got != 0 {
		t.Fatalf("top row after swap: got %d, want 0", got)
	}
	if got := stripANSI(m.renderContent()); got != "fresh" {
		t.Fatalf("content after swap: got %q", got)
	}
}

func TestModel_SetVimResetsMode(t *testing.T) {
	v := vim.New(vim.Options{})
	m := New(Config{Text: "abc", Vim: v})

	m, _ = m.Update(keyRunes("i"))
	if v.Mode() != vim.ModeInsert {
		t.Fatalf("mode: got %v, want INSERT", v.Mode())
	}
	m = m.SetVim(v)
	if v.Mode() != vim.ModeNormal {
		t.Fatalf("mode after SetVim: got %v, want NORMAL", v.Mode())
	}
	m = m.SetVim(nil)
	if m.Vim() != nil {
		t.Fatalf("vim should be disabled")
	}
}

func TestModel_SelectAllCopy(t *testing.T) {
	cb := &memClipboard{}
	m := New(Config{Text: "ab\ncd", Clipboard: cb})

	m = m.SelectAll().Copy()
	if cb.s != "ab\ncd" {
		t.Fatalf("clipboard: got %q", cb.s)
	}
	m = m.Cut()
	if got := m.Buffer().Text(); got != "" {
		t.Fatalf("text after cut: got %q", got)
	}
	m = m.Paste().Undo()
	if got := m.Buffer().Text(); got != "" {
		t.Fatalf("text after paste+undo: got %q", got)
	}
	m = m.Redo()
	if got := m.Buffer().Text(); got != "ab\ncd" {
		t.Fatalf("text after redo: got %q", got)
	}
}
