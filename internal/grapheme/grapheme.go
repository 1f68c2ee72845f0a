// Package grapheme wraps uniseg with the small set of cluster helpers the
// buffer, editor and vim packages share.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Class groups clusters for word motions.
type Class int

const (
	ClassSpace Class = iota
	ClassWord
	ClassPunct
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Join concatenates grapheme clusters into a single string.
func Join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// Width returns the terminal cell width of a single cluster. Zero-width
// clusters are reported as width 1 so the cursor always has a cell to sit on.
func Width(cluster string) int {
	w := uniseg.StringWidth(cluster)
	if w <= 0 {
		return 1
	}
	return w
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsWord reports whether cluster starts with a letter, digit or underscore.
func IsWord(cluster string) bool {
	for _, r := range cluster {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return false
}

// ClassOf classifies a cluster as space, word or punctuation.
func ClassOf(cluster string) Class {
	switch {
	case IsSpace(cluster):
		return ClassSpace
	case IsWord(cluster):
		return ClassWord
	default:
		return ClassPunct
	}
}
