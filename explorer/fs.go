package explorer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrExists      = errors.New("already exists")
	ErrOutsideRoot = errors.New("path is outside the explorer root")
	ErrInvalidName = errors.New("invalid name")
	ErrIsRoot      = errors.New("operation not allowed on the root")
	ErrNotDir      = errors.New("not a directory")
)

// resolveRoot returns the absolute, symlink-free form of root.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", resolved, ErrNotDir)
	}
	return resolved, nil
}

// confine resolves target and ensures it is physically underneath root.
// Targets that do not exist yet are resolved through their parent.
func confine(root, target string) (string, error) {
	full := absUnder(root, target)
	if _, err := os.Lstat(full); err != nil {
		return confineEntry(root, full)
	}
	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", full, err)
	}
	return checkUnder(root, full, resolved)
}

// confineEntry resolves only the parent of target, so a symlink names the
// link itself rather than what it points at.
func confineEntry(root, target string) (string, error) {
	full := absUnder(root, target)
	if full == root {
		return root, nil
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(full))
	if err != nil {
		return "", fmt.Errorf("resolve parent of %s: %w", full, err)
	}
	return checkUnder(root, full, filepath.Join(parent, filepath.Base(full)))
}

func absUnder(root, target string) string {
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	return filepath.Clean(target)
}

func checkUnder(root, full, resolved string) (string, error) {
	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", full, ErrOutsideRoot)
	}
	return resolved, nil
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains NUL", ErrInvalidName, name)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
