// Package document binds a buffer to a file on disk.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/hydroxite/hydroxite/buffer"
	"github.com/hydroxite/hydroxite/syntax"
)

var (
	ErrNoPath = errors.New("no file name")
	ErrIsDir  = errors.New("is a directory")
)

// Document is an editable buffer plus the file it is loaded from.
type Document struct {
	path     string
	language string
	buf      *buffer.Buffer
	opt      buffer.Options

	crlf         bool
	exists       bool
	savedVersion uint64
}

// New returns an unnamed, empty document.
func New(opt buffer.Options) *Document {
	return &Document{
		language: syntax.PlainText,
		buf:      buffer.New("", opt),
		opt:      opt,
	}
}

// Open loads path. A missing file yields an empty document bound to path
// that is created on the first save.
func Open(path string, opt buffer.Options) (*Document, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	abs, err := Resolve(path)
	if err != nil {
		return nil, err
	}

	d := &Document{path: abs, opt: opt}
	text, err := d.read()
	if err != nil {
		return nil, err
	}
	d.buf = buffer.New(text, opt)
	d.savedVersion = d.buf.TextVersion()
	d.language = syntax.Detect(abs, text)
	return d, nil
}

// Resolve returns the absolute, symlink-free form of path. A file that does
// not exist yet is resolved through its folder; when that is missing too the
// cleaned absolute path is returned.
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs)), nil
	}
	return abs, nil
}

func (d *Document) read() (string, error) {
	info, err := os.Stat(d.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		d.exists, d.crlf = false, false
		return "", nil
	case err != nil:
		return "", fmt.Errorf("stat %s: %w", d.path, err)
	case info.IsDir():
		return "", fmt.Errorf("open %s: %w", d.path, ErrIsDir)
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", d.path, err)
	}
	text := string(data)
	d.exists = true
	d.crlf = strings.Contains(text, "\r\n")
	if d.crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	return text, nil
}

// Path returns the absolute file path, or "" for an unnamed document.
func (d *Document) Path() string { return d.path }

// Name returns the file's base name, or "untitled".
func (d *Document) Name() string {
	if d.path == "" {
		return "untitled"
	}
	return filepath.Base(d.path)
}

func (d *Document) Buffer() *buffer.Buffer { return d.buf }

func (d *Document) Language() string { return d.language }

func (d *Document) SetLanguage(lang string) { d.language = lang }

// CRLF reports whether the file uses CRLF line endings. They are restored
// on save.
func (d *Document) CRLF() bool { return d.crlf }

// Exists reports whether the file was on disk when last read or written.
func (d *Document) Exists() bool { return d.exists }

// Dirty reports whether the text changed since it was loaded or saved.
func (d *Document) Dirty() bool { return d.buf.TextVersion() != d.savedVersion }

// Save writes the document to its path.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}
	return d.write(d.path)
}

// SaveAs writes the document to path and rebinds it there. The language is
// detected again when the extension changes.
func (d *Document) SaveAs(path string) error {
	if path == "" {
		return ErrNoPath
	}
	abs, err := Resolve(path)
	if err != nil {
		return err
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return fmt.Errorf("save %s: %w", abs, ErrIsDir)
	}
	if err := d.write(abs); err != nil {
		return err
	}
	if filepath.Ext(abs) != filepath.Ext(d.path) || d.path == "" {
		d.language = syntax.Detect(abs, d.buf.Text())
	}
	d.path = abs
	return nil
}

// Reload discards unsaved changes and reads the file again.
func (d *Document) Reload() error {
	if d.path == "" {
		return ErrNoPath
	}
	text, err := d.read()
	if err != nil {
		return err
	}
	d.buf.Reset(text)
	d.savedVersion = d.buf.TextVersion()
	return nil
}

// Rename rebinds the document to path after the file was moved on disk.
func (d *Document) Rename(path string) {
	if filepath.Ext(path) != filepath.Ext(d.path) {
		d.language = syntax.Detect(path, d.buf.Text())
	}
	d.path = path
}

func (d *Document) write(path string) error {
	text := d.buf.Text()
	if d.crlf {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}

	pending, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.WriteString(text); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	d.exists = true
	d.savedVersion = d.buf.TextVersion()
	return nil
}
