// Package explorer implements the file tree: a directory model with
// expandable folders and confined file operations, plus its Bubble Tea view.
package explorer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Node is one visible row of the tree.
type Node struct {
	Path     string
	Name     string
	Depth    int
	Dir      bool
	Expanded bool
}

type Options struct {
	// ShowHidden lists dotfiles.
	ShowHidden bool
}

// Tree is the file tree rooted at a directory. Paths it reports are
// absolute and symlink-free.
type Tree struct {
	root     string
	opt      Options
	expanded map[string]bool

	nodes    []Node
	selected int
}

// NewTree reads root and returns a tree with every folder collapsed.
func NewTree(root string, opt Options) (*Tree, error) {
	t := &Tree{opt: opt}
	if err := t.SetRoot(root); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) Root() string { return t.root }

// SetRoot switches to a new root directory and collapses every folder.
func (t *Tree) SetRoot(root string) error {
	resolved, err := resolveRoot(root)
	if err != nil {
		return err
	}
	prev := *t
	t.root = resolved
	t.expanded = make(map[string]bool)
	t.selected = 0
	if err := t.rebuild(); err != nil {
		*t = prev
		return err
	}
	return nil
}

// SetShowHidden toggles dotfile listing.
func (t *Tree) SetShowHidden(show bool) error {
	if t.opt.ShowHidden == show {
		return nil
	}
	t.opt.ShowHidden = show
	return t.Refresh()
}

func (t *Tree) ShowHidden() bool { return t.opt.ShowHidden }

// Visible returns the flattened rows: expanded folders depth-first,
// directories before files.
func (t *Tree) Visible() []Node { return t.nodes }

// Selected returns the selected row, if the tree is not empty.
func (t *Tree) Selected() (Node, bool) {
	if t.selected < 0 || t.selected >= len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[t.selected], true
}

// SelectedIndex returns the selected row index, or -1 for an empty tree.
func (t *Tree) SelectedIndex() int {
	if len(t.nodes) == 0 {
		return -1
	}
	return t.selected
}

// Select moves the selection to path. It reports whether path is visible.
func (t *Tree) Select(path string) bool {
	if i := t.indexOf(filepath.Clean(path)); i >= 0 {
		t.selected = i
		return true
	}
	return false
}

// SelectIndex moves the selection to row i, clamped.
func (t *Tree) SelectIndex(i int) {
	if len(t.nodes) == 0 {
		t.selected = 0
		return
	}
	t.selected = min(max(i, 0), len(t.nodes)-1)
}

// MoveSelection moves the selection by delta rows, clamped.
func (t *Tree) MoveSelection(delta int) { t.SelectIndex(t.selected + delta) }

// Toggle expands a collapsed folder or collapses an expanded one.
func (t *Tree) Toggle(path string) error {
	if t.expanded[filepath.Clean(path)] {
		t.Collapse(path)
		return nil
	}
	return t.Expand(path)
}

// Expand opens the folder at path.
func (t *Tree) Expand(path string) error {
	dir, err := confine(t.root, path)
	if err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("expand %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("expand %s: %w", dir, ErrNotDir)
	}
	if dir == t.root || t.expanded[dir] {
		return nil
	}
	t.expanded[dir] = true
	return t.rebuild()
}

// Collapse closes the folder at path. The selection moves to the folder
// when it was inside it.
func (t *Tree) Collapse(path string) {
	dir := filepath.Clean(path)
	if !t.expanded[dir] {
		return
	}
	sel, _ := t.Selected()
	delete(t.expanded, dir)
	if isWithin(dir, sel.Path) {
		sel.Path = dir
	}
	_ = t.rebuildSelecting(sel.Path)
}

// IsExpanded reports whether the folder at path is open.
func (t *Tree) IsExpanded(path string) bool { return t.expanded[filepath.Clean(path)] }

// ExpandedDirs returns the root and every expanded folder, sorted.
func (t *Tree) ExpandedDirs() []string {
	out := []string{t.root}
	for p := range t.expanded {
		out = append(out, p)
	}
	sort.Strings(out[1:])
	return out
}

// Reveal expands every folder between the root and path and selects path.
func (t *Tree) Reveal(path string) error {
	target, err := confine(t.root, path)
	if err != nil {
		return err
	}
	for dir := filepath.Dir(target); dir != t.root && isWithin(t.root, dir); dir = filepath.Dir(dir) {
		t.expanded[dir] = true
	}
	return t.rebuildSelecting(target)
}

// Refresh re-reads the file system. Expanded folders that vanished are
// forgotten; the selection stays on the same path when it still exists.
func (t *Tree) Refresh() error {
	for dir := range t.expanded {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			delete(t.expanded, dir)
		}
	}
	return t.rebuild()
}

// TargetDir is where new items go: the selected folder, the folder holding
// the selected file, or the root.
func (t *Tree) TargetDir() string {
	sel, ok := t.Selected()
	switch {
	case !ok:
		return t.root
	case sel.Dir:
		return sel.Path
	default:
		return filepath.Dir(sel.Path)
	}
}

func (t *Tree) rebuild() error {
	sel, _ := t.Selected()
	return t.rebuildSelecting(sel.Path)
}

func (t *Tree) rebuildSelecting(path string) error {
	nodes, err := t.list(t.root, 0, nil)
	if err != nil {
		return err
	}
	prev := t.selected
	t.nodes = nodes
	if path == "" || !t.Select(path) {
		t.SelectIndex(prev)
	}
	return nil
}

func (t *Tree) list(dir string, depth int, out []Node) ([]Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if depth == 0 {
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		// An unreadable folder is shown collapsed.
		delete(t.expanded, dir)
		return out, nil
	}

	nodes := make([]Node, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !t.opt.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil {
				isDir = info.IsDir()
			}
		}
		nodes = append(nodes, Node{Path: path, Name: name, Depth: depth, Dir: isDir})
	}
	sortNodes(nodes)

	for _, n := range nodes {
		n.Expanded = n.Dir && t.expanded[n.Path]
		at := len(out)
		out = append(out, n)
		if n.Expanded {
			out, err = t.list(n.Path, depth+1, out)
			if err != nil {
				return nil, err
			}
			out[at].Expanded = t.expanded[n.Path]
		}
	}
	return out, nil
}

func sortNodes(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Dir != nodes[j].Dir {
			return nodes[i].Dir
		}
		a, b := strings.ToLower(nodes[i].Name), strings.ToLower(nodes[j].Name)
		if a != b {
			return a < b
		}
		return nodes[i].Name < nodes[j].Name
	})
}

func (t *Tree) indexOf(path string) int {
	for i, n := range t.nodes {
		if n.Path == path {
			return i
		}
	}
	return -1
}

// isWithin reports whether path is dir or below it.
func isWithin(dir, path string) bool {
	if path == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
