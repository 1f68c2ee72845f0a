// Package app is the root Bubble Tea model: splash screen, menu bar,
// explorer and editor panes, dialogs and the status line.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hydroxite/hydroxite/buffer"
	"github.com/hydroxite/hydroxite/document"
	"github.com/hydroxite/hydroxite/editor"
	"github.com/hydroxite/hydroxite/explorer"
	"github.com/hydroxite/hydroxite/internal/config"
	"github.com/hydroxite/hydroxite/internal/watch"
	"github.com/hydroxite/hydroxite/syntax"
	"github.com/hydroxite/hydroxite/theme"
	"github.com/hydroxite/hydroxite/vim"
)

type focus int

const (
	focusEditor focus = iota
	focusExplorer
)

// Options configures a Model.
type Options struct {
	Config config.Config
	// Holder, when set, delivers reloaded configurations.
	Holder *config.Holder
	// Path is a file or directory to open instead of showing the splash.
	Path string
	// Clipboard backs copy/paste and, when enabled, the Vim register.
	Clipboard editor.Clipboard
	Logger    zerolog.Logger
}

// Model is the application root model.
type Model struct {
	cfg    config.Config
	logger zerolog.Logger
	keys   KeyMap

	catalog   *theme.Catalog
	theme     theme.Theme
	chrome    theme.Chrome
	clipboard editor.Clipboard

	doc         *document.Document
	editor      editor.Model
	machine     *vim.Machine
	highlighter *syntax.Highlighter

	tree         *explorer.Tree
	explorer     explorer.Model
	showExplorer bool
	focus        focus

	splash       bool
	splashCursor int

	menu   menuState
	dialog dialog

	status    string
	statusErr bool

	width, height int

	ctx      context.Context
	cancel   context.CancelFunc
	watcher  *watch.Watcher
	configCh chan config.Config
}

// New builds the application model. A file Path is opened in the editor
// with its folder in the explorer; a directory Path becomes the explorer
// root.
func New(opt Options) (Model, error) {
	cfg := opt.Config
	catalog, err := cfg.Catalog()
	if err != nil {
		return Model{}, err
	}
	clip := opt.Clipboard

	root, file, err := resolveStartPath(opt.Path)
	if err != nil {
		return Model{}, err
	}
	tree, err := explorer.NewTree(root, explorer.Options{ShowHidden: cfg.Explorer.ShowHidden})
	if err != nil {
		return Model{}, fmt.Errorf("open folder: %w", err)
	}

	bufOpt := buffer.Options{HistoryLimit: cfg.Editor.HistoryLimit}
	doc := document.New(bufOpt)
	if file != "" {
		if doc, err = document.Open(file, bufOpt); err != nil {
			return Model{}, err
		}
		_ = tree.Reveal(doc.Path())
	}

	vimOpt := vim.Options{TabWidth: cfg.Editor.TabWidth}
	if cfg.Vim.ClipboardSync {
		vimOpt.Clipboard = clip
	}
	machine := vim.New(vimOpt)

	hl := syntax.New(doc.Language(), "")
	edCfg := editor.Config{
		ShowLineNums: cfg.Editor.LineNumbers,
		TabWidth:     cfg.Editor.TabWidth,
		AutoPairs:    cfg.Editor.AutoPairs,
		Clipboard:    clip,
		Highlighter:  hl,
		HistoryLimit: cfg.Editor.HistoryLimit,
	}
	if cfg.Vim.Enabled {
		edCfg.Vim = machine
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		cfg:          cfg,
		logger:       opt.Logger,
		keys:         DefaultKeyMap(),
		catalog:      catalog,
		clipboard:    clip,
		doc:          doc,
		editor:       editor.New(edCfg).SetBuffer(doc.Buffer()),
		machine:      machine,
		highlighter:  hl,
		tree:         tree,
		explorer:     explorer.New(tree),
		showExplorer: true,
		splash:       opt.Path == "",
		menu:         menuState{open: -1},
		ctx:          ctx,
		cancel:       cancel,
	}
	m.applyTheme(cfg.Theme)

	if cfg.Explorer.Watch {
		if w, err := watch.New(0, m.logger); err != nil {
			m.logger.Warn().Err(err).Str("event", "explorer.watch_unavailable").Msg("file watching disabled")
		} else {
			m.watcher = w
			m.syncWatches()
		}
	}
	if opt.Holder != nil {
		m.configCh = make(chan config.Config, 1)
		opt.Holder.RegisterListener(m.configCh)
	}
	m.setFocus(focusEditor)
	return m, nil
}

func resolveStartPath(path string) (root, file string, err error) {
	if path == "" {
		root, err = os.Getwd()
		return root, "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", err
	}
	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return abs, "", nil
	case err == nil:
		return filepath.Dir(abs), abs, nil
	case errors.Is(err, os.ErrNotExist):
		dir := filepath.Dir(abs)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, abs, nil
		}
		// No folder to browse yet.
		root, err = os.Getwd()
		return root, abs, err
	default:
		return "", "", err
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcher != nil {
		m.watcher.Start(m.ctx)
		cmds = append(cmds, waitForBatch(m.watcher.Batches()))
	}
	if m.configCh != nil {
		cmds = append(cmds, waitForConfig(m.ctx, m.configCh))
	}
	return tea.Batch(cmds...)
}

// Close stops background watchers. It is safe to call more than once.
func (m Model) Close() {
	m.cancel()
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}

// Document returns the document being edited.
func (m Model) Document() *document.Document { return m.doc }

// ThemeName returns the active theme.
func (m Model) ThemeName() string { return m.theme.Name }

func (m *Model) applyTheme(name string) {
	th, err := m.catalog.Get(name)
	if err != nil {
		m.logger.Warn().Err(err).Str("event", "theme.fallback").Msg("unknown theme; using default")
		th, _ = m.catalog.Get(theme.Default)
	}
	m.theme = th
	m.chrome = th.Chrome()
	m.editor = m.editor.SetStyle(th.Editor())
	m.explorer = m.explorer.SetStyle(th.Explorer())

	style := m.cfg.SyntaxStyle
	if style == "" {
		style = th.Syntax
	}
	if err := m.highlighter.SetStyle(style); err != nil {
		m.logger.Warn().Err(err).Str("event", "syntax.style_fallback").Msg("unknown syntax style")
	}
	// Highlight spans are cached per style; force a re-render.
	m.editor = m.editor.SetHighlighter(m.highlighter)
}

func (m *Model) setFocus(f focus) {
	if f == focusExplorer && !m.showExplorer {
		f = focusEditor
	}
	m.focus = f
	if f == focusEditor {
		m.editor = m.editor.Focus()
		m.explorer = m.explorer.Blur()
	} else {
		m.editor = m.editor.Blur()
		m.explorer = m.explorer.Focus()
	}
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status, m.statusErr = "", false
}

// syncWatches watches the root and every expanded folder.
func (m *Model) syncWatches() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Set(m.tree.ExpandedDirs()); err != nil {
		m.logger.Debug().Err(err).Str("event", "explorer.watch_failed").Msg("could not watch folder")
	}
}
