package explorer

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateFile creates an empty file called name inside dir and selects it.
func (t *Tree) CreateFile(dir, name string) (string, error) {
	path, err := t.newItemPath(dir, name)
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%s: %w", path, ErrExists)
		}
		return "", fmt.Errorf("create file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	return path, t.Reveal(path)
}

// CreateDir creates a folder called name inside dir and selects it.
func (t *Tree) CreateDir(dir, name string) (string, error) {
	path, err := t.newItemPath(dir, name)
	if err != nil {
		return "", err
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%s: %w", path, ErrExists)
		}
		return "", fmt.Errorf("create folder: %w", err)
	}
	return path, t.Reveal(path)
}

// Delete removes a file, or a folder with everything below it. A symlink
// is removed itself; what it points at is left alone.
func (t *Tree) Delete(path string) error {
	target, err := confineEntry(t.root, path)
	if err != nil {
		return err
	}
	if target == t.root {
		return fmt.Errorf("delete: %w", ErrIsRoot)
	}
	info, err := os.Lstat(target)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if info.IsDir() {
		err = os.RemoveAll(target)
	} else {
		err = os.Remove(target)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", target, err)
	}

	for dir := range t.expanded {
		if isWithin(target, dir) {
			delete(t.expanded, dir)
		}
	}
	return t.rebuild()
}

// Rename gives the item at path a new name in the same folder and returns
// its new path. Expanded folders below it stay expanded.
func (t *Tree) Rename(path, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	src, err := confineEntry(t.root, path)
	if err != nil {
		return "", err
	}
	if src == t.root {
		return "", fmt.Errorf("rename: %w", ErrIsRoot)
	}
	if _, err := os.Lstat(src); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}
	dst := filepath.Join(filepath.Dir(src), name)
	if dst == src {
		return dst, nil
	}
	if exists(dst) {
		return "", fmt.Errorf("%s: %w", dst, ErrExists)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("rename %s: %w", src, err)
	}

	moved := make(map[string]bool, len(t.expanded))
	for dir := range t.expanded {
		if isWithin(src, dir) {
			rel, _ := filepath.Rel(src, dir)
			moved[filepath.Join(dst, rel)] = true
			continue
		}
		moved[dir] = true
	}
	t.expanded = moved
	return dst, t.rebuildSelecting(dst)
}

func (t *Tree) newItemPath(dir, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	parent, err := confine(t.root, dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(parent)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", parent, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", parent, ErrNotDir)
	}
	path := filepath.Join(parent, name)
	if exists(path) {
		return "", fmt.Errorf("%s: %w", path, ErrExists)
	}
	return path, nil
}
