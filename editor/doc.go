// Package editor provides the Bubble Tea text editor pane backed by the
// buffer package.
//
// The package is responsible for input handling (plain and Vim-driven),
// viewport behavior, grapheme-aware rendering with tab expansion, auto-pairs,
// syntax highlighting hooks and change events.
package editor
