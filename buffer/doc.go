// Package buffer implements the pure document model behind a Hydroxite editor
// pane: text, cursor, selection, undo history and search.
//
// Coordinates are 0-based (Row, Col) where Col counts grapheme clusters.
// Ranges are half-open selections in document coordinates: [Start, End).
package buffer
