package syntax

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroxite/hydroxite/editor"
)

func spanCols(spans []editor.HighlightSpan) [][2]int {
	out := make([][2]int, 0, len(spans))
	for _, sp := range spans {
		out = append(out, [2]int{sp.StartCol, sp.EndCol})
	}
	return out
}

func prepare(t *testing.T, h *Highlighter, version uint64, text string) {
	t.Helper()
	require.NoError(t, h.Prepare(version, func() string { return text }))
}

func TestHighlighter_KeywordSpan(t *testing.T) {
	h := New("go", DefaultStyle)
	require.Equal(t, "Go", h.Language())

	prepare(t, h, 1, "package main\n")
	spans, err := h.HighlightLine(editor.LineContext{Row: 0, Text: "package main", TextVersion: 1})
	require.NoError(t, err)
	require.NotEmpty(t, spans)
	assert.Equal(t, [2]int{0, 7}, spanCols(spans)[0])

	_, noFg := spans[0].Style.GetForeground().(lipgloss.NoColor)
	assert.False(t, noFg, "keyword span should carry a foreground color")
}

func TestHighlighter_MultiLineComment(t *testing.T) {
	h := New("go", DefaultStyle)
	prepare(t, h, 3, "x := 1\n/* a\nbc */\n")

	spans, err := h.HighlightLine(editor.LineContext{Row: 2, Text: "bc */", TextVersion: 3})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 5}}, spanCols(spans))
}

func TestHighlighter_GraphemeColumns(t *testing.T) {
	h := New("go", DefaultStyle)
	prepare(t, h, 1, "s := \"héllo\" // ok\n")

	spans, err := h.HighlightLine(editor.LineContext{Row: 0, TextVersion: 1})
	require.NoError(t, err)
	cols := spanCols(spans)
	require.NotEmpty(t, cols)
	// The comment starts after 13 clusters even though "é" is two bytes.
	assert.Equal(t, [2]int{13, 18}, cols[len(cols)-1])
}

func TestHighlighter_PrepareCachesPerVersion(t *testing.T) {
	h := New("go", DefaultStyle)
	calls := 0
	text := func() string {
		calls++
		return "package main\n"
	}

	require.NoError(t, h.Prepare(7, text))
	require.NoError(t, h.Prepare(7, text))
	assert.Equal(t, 1, calls)

	require.NoError(t, h.Prepare(8, text))
	assert.Equal(t, 2, calls)

	require.NoError(t, h.SetStyle("monokai"))
	require.NoError(t, h.Prepare(8, text))
	assert.Equal(t, 3, calls)
}

func TestHighlighter_StaleVersionLexesLineAlone(t *testing.T) {
	h := New("go", DefaultStyle)
	prepare(t, h, 1, "package main\n")

	spans, err := h.HighlightLine(editor.LineContext{Row: 0, Text: "// new", TextVersion: 2})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 6}}, spanCols(spans))
}

func TestHighlighter_PlainTextHasNoSpans(t *testing.T) {
	h := New(PlainText, DefaultStyle)
	prepare(t, h, 1, "package main\n")

	spans, err := h.HighlightLine(editor.LineContext{Row: 0, Text: "package main", TextVersion: 1})
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestHighlighter_UnknownNames(t *testing.T) {
	h := New("", "")
	assert.ErrorIs(t, h.SetLanguage("no-such-language"), ErrUnknownLanguage)
	assert.Equal(t, PlainText, h.Language())

	assert.ErrorIs(t, h.SetStyle("no-such-style"), ErrUnknownStyle)
	assert.Equal(t, DefaultStyle, h.StyleName())
	assert.NotEmpty(t, h.Background())
}
