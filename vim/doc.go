// Package vim implements modal (Vim-style) editing on top of a
// buffer.Buffer.
//
// A Machine consumes Bubble Tea key messages and either edits the buffer
// directly (Normal and Visual modes), hands the key back to the host editor
// for plain text entry (Insert mode), or collects a command line (`:` and
// `/`). Host-level effects such as writing or quitting are reported as
// Actions; the machine never touches the filesystem.
package vim
