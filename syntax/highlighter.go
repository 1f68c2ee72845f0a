// Package syntax adapts chroma lexers and styles to the editor's
// per-line highlighting hook.
package syntax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/hydroxite/hydroxite/editor"
	"github.com/hydroxite/hydroxite/internal/grapheme"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "onedark"

var (
	ErrUnknownLanguage = errors.New("unknown language")
	ErrUnknownStyle    = errors.New("unknown syntax style")
)

// Highlighter lexes the whole document once per text version and serves
// the cached spans line by line.
type Highlighter struct {
	lexer     chroma.Lexer
	language  string
	style     *chroma.Style
	styleName string

	styles map[chroma.TokenType]lipgloss.Style
	plain  chroma.StyleEntry

	valid   bool
	version uint64
	lines   [][]editor.HighlightSpan
}

var _ editor.DocumentHighlighter = (*Highlighter)(nil)

// New returns a Highlighter for language using the named chroma style.
// An unknown language highlights nothing; an unknown style falls back to
// DefaultStyle.
func New(language, style string) *Highlighter {
	h := &Highlighter{}
	_ = h.SetLanguage(language)
	_ = h.SetStyle(style)
	return h
}

// Language returns the active language name.
func (h *Highlighter) Language() string { return h.language }

// StyleName returns the active chroma style name.
func (h *Highlighter) StyleName() string { return h.styleName }

// SetLanguage switches the lexer. Unknown names leave the document
// unhighlighted and return ErrUnknownLanguage.
func (h *Highlighter) SetLanguage(name string) error {
	h.valid = false
	if name == "" || name == PlainText {
		h.lexer, h.language = nil, PlainText
		return nil
	}
	l := lexers.Get(name)
	if l == nil {
		h.lexer, h.language = nil, PlainText
		return fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
	}
	h.lexer = chroma.Coalesce(l)
	h.language = l.Config().Name
	return nil
}

// SetStyle switches the color style. Unknown names select DefaultStyle and
// return ErrUnknownStyle.
func (h *Highlighter) SetStyle(name string) error {
	var err error
	if name == "" {
		name = DefaultStyle
	}
	st, ok := styles.Registry[name]
	if !ok {
		err = fmt.Errorf("%w: %s", ErrUnknownStyle, name)
		name = DefaultStyle
		st = styles.Get(DefaultStyle)
	}
	h.style, h.styleName = st, name
	h.styles = make(map[chroma.TokenType]lipgloss.Style)
	h.plain = st.Get(chroma.Text)
	h.valid = false
	return err
}

// Background returns the style's background color, or "" when unset.
func (h *Highlighter) Background() string {
	bg := h.style.Get(chroma.Background).Background
	if !bg.IsSet() {
		return ""
	}
	return bg.String()
}

// Prepare lexes the document when its text version changed since the last
// call.
func (h *Highlighter) Prepare(textVersion uint64, text func() string) error {
	if h.valid && h.version == textVersion {
		return nil
	}
	lines, err := h.tokenise(text())
	if err != nil {
		h.valid = false
		return err
	}
	h.lines, h.version, h.valid = lines, textVersion, true
	return nil
}

// HighlightLine returns the cached spans for ctx.Row. Without a prepared
// document for ctx.TextVersion the line is lexed on its own.
func (h *Highlighter) HighlightLine(ctx editor.LineContext) ([]editor.HighlightSpan, error) {
	if h.lexer == nil {
		return nil, nil
	}
	if h.valid && h.version == ctx.TextVersion {
		if ctx.Row < 0 || ctx.Row >= len(h.lines) {
			return nil, nil
		}
		return h.lines[ctx.Row], nil
	}
	lines, err := h.tokenise(ctx.Text)
	if err != nil || len(lines) == 0 {
		return nil, err
	}
	return lines[0], nil
}

func (h *Highlighter) tokenise(text string) ([][]editor.HighlightSpan, error) {
	if h.lexer == nil {
		return nil, nil
	}
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", h.language, err)
	}

	out := make([][]editor.HighlightSpan, 0, strings.Count(text, "\n")+1)
	for _, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
		var spans []editor.HighlightSpan
		col := 0
		for _, tok := range line {
			n := grapheme.Count(strings.TrimSuffix(tok.Value, "\n"))
			if n == 0 {
				continue
			}
			if st, ok := h.tokenStyle(tok.Type); ok {
				spans = append(spans, editor.HighlightSpan{StartCol: col, EndCol: col + n, Style: st})
			}
			col += n
		}
		out = append(out, spans)
	}
	return out, nil
}

// tokenStyle maps a token type to a lipgloss style. Tokens rendered exactly
// like plain text report false so the editor's own text style shows through.
func (h *Highlighter) tokenStyle(tt chroma.TokenType) (lipgloss.Style, bool) {
	if st, ok := h.styles[tt]; ok {
		return st, true
	}
	e := h.style.Get(tt)
	if e.Colour == h.plain.Colour && e.Bold == h.plain.Bold && e.Italic == h.plain.Italic && e.Underline == h.plain.Underline {
		return lipgloss.Style{}, false
	}
	st := lipgloss.NewStyle()
	if e.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(e.Colour.String()))
	}
	if e.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if e.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if e.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	h.styles[tt] = st
	return st, true
}
