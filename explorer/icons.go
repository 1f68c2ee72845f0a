package explorer

import "github.com/hydroxite/hydroxite/syntax"

const (
	glyphCollapsed = "▶"
	glyphExpanded  = "▼"
)

var languageGlyphs = map[string]string{
	"Markdown":         "¶",
	"markdown":         "¶",
	"reStructuredText": "¶",
	"JSON":             "≡",
	"YAML":             "≡",
	"TOML":             "≡",
	"XML":              "≡",
	"INI":              "≡",
	"Bash":             "$",
	"Fish":             "$",
	"PowerShell":       "$",
	"Docker":           "◇",
	"Makefile":         "◇",
	"Base Makefile":    "◇",
	"plaintext":        "·",
}

// fileGlyph returns a one-cell glyph for the file's language: source
// files get a diamond, documents, data and shell scripts their own marks.
func fileGlyph(name string) string {
	lang := syntax.Detect(name, "")
	if g, ok := languageGlyphs[lang]; ok {
		return g
	}
	if lang == syntax.PlainText {
		return "·"
	}
	return "◆"
}
