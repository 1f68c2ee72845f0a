package syntax

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainText is the language reported when nothing matches.
const PlainText = "plaintext"

// Detect returns the language name for a file. The file name wins; content
// analysis (shebangs, modelines, doctypes) is used only when the name is not
// recognised.
func Detect(filename, content string) string {
	if l := detectLexer(filename, content); l != nil {
		return l.Config().Name
	}
	return PlainText
}

func detectLexer(filename, content string) chroma.Lexer {
	if filename != "" {
		if l := lexers.Match(filepath.Base(filename)); l != nil {
			return l
		}
	}
	if content != "" {
		if l := lexers.Analyse(content); l != nil {
			return l
		}
	}
	return nil
}

// Languages lists the names of every registered lexer.
func Languages() []string {
	return lexers.Names(false)
}
