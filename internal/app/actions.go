package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hydroxite/hydroxite"
	"github.com/hydroxite/hydroxite/buffer"
	"github.com/hydroxite/hydroxite/document"
	"github.com/hydroxite/hydroxite/internal/config"
	"github.com/hydroxite/hydroxite/vim"
)

var errUnsaved = errors.New("no write since last change (add ! to override)")

// run carries out a menu, shortcut or splash command.
func (m *Model) run(c command) tea.Cmd {
	switch c {
	case cmdNewFile:
		m.dialog = newPrompt(purposeNewFile, "New File", "")
		m.dialog.target = m.tree.TargetDir()
	case cmdNewFolder:
		m.dialog = newPrompt(purposeNewFolder, "New Folder", "")
		m.dialog.target = m.tree.TargetDir()
	case cmdNew:
		if m.doc.Dirty() {
			m.dialog = newConfirm(purposeDiscardAndNew, "Unsaved Changes",
				fmt.Sprintf("Discard changes to %s?", m.doc.Name()), "")
			return nil
		}
		m.newDocument()
	case cmdOpen:
		m.dialog = newPrompt(purposeOpenFile, "Open File", m.tree.TargetDir()+string(filepath.Separator))
	case cmdOpenFolder:
		m.dialog = newPrompt(purposeOpenFolder, "Open Folder", m.tree.Root())
	case cmdSave:
		m.save()
	case cmdSaveAs:
		m.promptSaveAs()
	case cmdQuit:
		if m.doc.Dirty() {
			m.dialog = newConfirm(purposeQuit, "Unsaved Changes",
				fmt.Sprintf("%s has unsaved changes. Quit anyway?", m.doc.Name()), "")
			return nil
		}
		return tea.Quit
	case cmdUndo:
		m.editor = m.editor.Undo()
	case cmdRedo:
		m.editor = m.editor.Redo()
	case cmdCut:
		m.editor = m.editor.Cut()
	case cmdCopy:
		m.editor = m.editor.Copy()
	case cmdPaste:
		m.editor = m.editor.Paste()
	case cmdSelectAll:
		m.editor = m.editor.SelectAll()
	case cmdToggleVim:
		m.setVim(!m.vimEnabled())
	case cmdToggleLineNumbers:
		m.editor = m.editor.SetShowLineNums(!m.editor.ShowLineNums())
		m.cfg.Editor.LineNumbers = m.editor.ShowLineNums()
	case cmdToggleExplorer:
		m.showExplorer = !m.showExplorer
		if m.showExplorer {
			m.setFocus(focusExplorer)
		} else {
			m.setFocus(focusEditor)
		}
		m.layout()
	case cmdNextTheme:
		th := m.catalog.Next(m.theme.Name)
		m.cfg.Theme = th.Name
		m.applyTheme(th.Name)
		m.setStatus("Theme: %s", th.Name)
	case cmdAbout:
		m.dialog = dialog{
			kind:  dialogAbout,
			title: "About Hydroxite",
			body:  fmt.Sprintf("Hydroxite %s\nA terminal text editor with Vim keys.", hydroxite.VersionTag()),
		}
	case cmdRename:
		sel, ok := m.tree.Selected()
		if !ok {
			m.setStatus("Nothing selected")
			return nil
		}
		m.dialog = newPrompt(purposeRename, "Rename", sel.Name)
		m.dialog.target = sel.Path
	case cmdDelete:
		sel, ok := m.tree.Selected()
		if !ok {
			m.setStatus("Nothing selected")
			return nil
		}
		body := fmt.Sprintf("Delete %s?", sel.Name)
		if sel.Dir {
			body = fmt.Sprintf("Delete folder %s and everything in it?", sel.Name)
		}
		m.dialog = newConfirm(purposeDelete, "Delete", body, sel.Path)
	}
	return nil
}

func (m *Model) acceptDialog(d dialog, res dialogResult) tea.Cmd {
	switch d.purpose {
	case purposeContext:
		return m.run(res.cmd)
	case purposeQuit:
		return tea.Quit
	case purposeDiscardAndNew:
		m.newDocument()
		return nil
	case purposeDiscardAndOpen:
		m.openFile(d.target)
		return nil
	case purposeDelete:
		m.deleteItem(d.target)
		return nil
	}

	if res.value == "" {
		return nil
	}
	switch d.purpose {
	case purposeNewFile:
		path, err := m.tree.CreateFile(d.target, res.value)
		if err != nil {
			m.fail("create file", err)
			return nil
		}
		m.logger.Info().Str("event", "file.created").Str("path", path).Msg("created file")
		m.syncWatches()
		m.requestOpen(path)
	case purposeNewFolder:
		path, err := m.tree.CreateDir(d.target, res.value)
		if err != nil {
			m.fail("create folder", err)
			return nil
		}
		m.logger.Info().Str("event", "folder.created").Str("path", path).Msg("created folder")
		m.explorer = m.explorer.Sync()
		m.setStatus("Created %s", filepath.Base(path))
	case purposeOpenFile:
		m.requestOpen(m.expandPath(res.value))
	case purposeOpenFolder:
		m.openFolder(m.expandPath(res.value))
	case purposeSaveAs:
		m.saveAs(m.expandPath(res.value))
	case purposeRename:
		m.renameItem(d.target, res.value)
	}
	return nil
}

func (m *Model) handleVimAction(a vim.Action) tea.Cmd {
	if a.Err != nil {
		m.setError(a.Err)
		return nil
	}
	switch a.Kind {
	case vim.ActionSave:
		if a.Path != "" {
			m.saveAs(m.expandPath(a.Path))
		} else {
			m.save()
		}
	case vim.ActionSaveQuit:
		var ok bool
		if a.Path != "" {
			ok = m.saveAs(m.expandPath(a.Path))
		} else {
			ok = m.save()
		}
		if ok {
			return tea.Quit
		}
	case vim.ActionQuit:
		if m.doc.Dirty() && !a.Force {
			m.setError(errUnsaved)
			return nil
		}
		return tea.Quit
	case vim.ActionOpen:
		if m.doc.Dirty() && !a.Force {
			m.setError(errUnsaved)
			return nil
		}
		m.openFile(m.expandPath(a.Path))
	case vim.ActionSetOption:
		switch a.Option {
		case "number":
			m.editor = m.editor.SetShowLineNums(a.Value)
			m.cfg.Editor.LineNumbers = a.Value
		case "vim":
			m.setVim(a.Value)
		}
	case vim.ActionMessage:
		m.setStatus("%s", a.Message)
	}
	return nil
}

// requestOpen opens path unless that would drop unsaved changes, in which
// case it asks first.
func (m *Model) requestOpen(path string) {
	if resolved, err := document.Resolve(path); err == nil {
		path = resolved
	}
	if path == m.doc.Path() {
		m.splash = false
		m.setFocus(focusEditor)
		return
	}
	if m.doc.Dirty() {
		m.dialog = newConfirm(purposeDiscardAndOpen, "Unsaved Changes",
			fmt.Sprintf("Discard changes to %s?", m.doc.Name()), path)
		return
	}
	m.openFile(path)
}

func (m *Model) openFile(path string) {
	doc, err := document.Open(path, m.bufferOptions())
	if err != nil {
		m.fail("open", err)
		return
	}
	if err := m.tree.Reveal(doc.Path()); err != nil {
		// Files outside the current folder bring their own folder along.
		if err := m.tree.SetRoot(filepath.Dir(doc.Path())); err == nil {
			_ = m.tree.Reveal(doc.Path())
			m.syncWatches()
		}
	}
	m.explorer = m.explorer.Sync()
	m.setDocument(doc)
	m.logger.Info().Str("event", "file.opened").Str("path", doc.Path()).Msg("opened file")
	if doc.Exists() {
		m.setStatus("Opened %s", doc.Name())
	} else {
		m.setStatus("%s [New File]", doc.Name())
	}
}

func (m *Model) openFolder(path string) {
	if err := m.tree.SetRoot(path); err != nil {
		m.fail("open folder", err)
		return
	}
	m.logger.Info().Str("event", "folder.opened").Str("path", m.tree.Root()).Msg("opened folder")
	m.syncWatches()
	m.explorer = m.explorer.Sync()
	m.splash = false
	m.showExplorer = true
	m.layout()
	m.setFocus(focusExplorer)
	m.setStatus("Opened folder %s", m.tree.Root())
}

func (m *Model) newDocument() {
	m.setDocument(document.New(m.bufferOptions()))
	m.setStatus("New buffer")
}

func (m *Model) setDocument(doc *document.Document) {
	var prev *buffer.Buffer
	if m.doc != nil {
		prev = m.doc.Buffer()
	}
	m.machine.Reset(prev)
	m.doc = doc
	if err := m.highlighter.SetLanguage(doc.Language()); err != nil {
		m.logger.Debug().Err(err).Str("event", "syntax.language_unknown").Msg("no highlighting")
	}
	m.editor = m.editor.SetBuffer(doc.Buffer())
	m.splash = false
	m.setFocus(focusEditor)
}

// save writes the document. Untitled documents ask for a path first.
func (m *Model) save() bool {
	if m.doc.Path() == "" {
		m.promptSaveAs()
		return false
	}
	if err := m.doc.Save(); err != nil {
		m.fail("save", err)
		return false
	}
	m.saved()
	return true
}

func (m *Model) saveAs(path string) bool {
	if err := m.doc.SaveAs(path); err != nil {
		m.fail("save", err)
		return false
	}
	_ = m.highlighter.SetLanguage(m.doc.Language())
	m.editor = m.editor.SetHighlighter(m.highlighter)
	m.saved()
	return true
}

func (m *Model) saved() {
	m.logger.Info().Str("event", "file.saved").Str("path", m.doc.Path()).Msg("saved file")
	if err := m.tree.Refresh(); err == nil {
		_ = m.tree.Reveal(m.doc.Path())
		m.explorer = m.explorer.Sync()
	}
	m.setStatus("Saved %s", m.doc.Name())
}

func (m *Model) promptSaveAs() {
	value := m.doc.Path()
	if value == "" {
		value = m.tree.TargetDir() + string(filepath.Separator)
	}
	m.dialog = newPrompt(purposeSaveAs, "Save As", value)
}

func (m *Model) renameItem(path, name string) {
	dst, err := m.tree.Rename(path, name)
	if err != nil {
		m.fail("rename", err)
		return
	}
	m.logger.Info().Str("event", "file.renamed").Str("from", path).Str("to", dst).Msg("renamed")
	if cur := m.doc.Path(); cur != "" && within(path, cur) {
		rel, _ := filepath.Rel(path, cur)
		m.doc.Rename(filepath.Join(dst, rel))
		_ = m.highlighter.SetLanguage(m.doc.Language())
		m.editor = m.editor.SetHighlighter(m.highlighter)
	}
	m.syncWatches()
	m.explorer = m.explorer.Sync()
	m.setStatus("Renamed to %s", filepath.Base(dst))
}

func (m *Model) deleteItem(path string) {
	if err := m.tree.Delete(path); err != nil {
		m.fail("delete", err)
		return
	}
	m.logger.Info().Str("event", "file.deleted").Str("path", path).Msg("deleted")
	m.syncWatches()
	m.explorer = m.explorer.Sync()
	if cur := m.doc.Path(); cur != "" && within(path, cur) {
		m.doc.Rename("")
		m.setStatus("Deleted %s; the open buffer is now untitled", filepath.Base(path))
		return
	}
	m.setStatus("Deleted %s", filepath.Base(path))
}

func (m *Model) setVim(on bool) {
	m.cfg.Vim.Enabled = on
	if on {
		m.machine.Reset(m.doc.Buffer())
		m.editor = m.editor.SetVim(m.machine)
		m.setStatus("Vim mode on")
		return
	}
	// Leaving mid-insert must close the insert undo group.
	m.machine.Reset(m.doc.Buffer())
	m.editor = m.editor.SetVim(nil)
	m.setStatus("Vim mode off")
}

func (m Model) vimEnabled() bool { return m.editor.Vim() != nil }

// applyConfig switches to a reloaded configuration.
func (m *Model) applyConfig(cfg config.Config) {
	catalog, err := cfg.Catalog()
	if err != nil {
		m.fail("reload config", err)
		return
	}
	m.cfg = cfg
	m.catalog = catalog
	m.applyTheme(cfg.Theme)
	m.editor = m.editor.
		SetShowLineNums(cfg.Editor.LineNumbers).
		SetTabWidth(cfg.Editor.TabWidth).
		SetAutoPairs(cfg.Editor.AutoPairs)
	if cfg.Vim.Enabled != m.vimEnabled() {
		m.setVim(cfg.Vim.Enabled)
	}
	if err := m.tree.SetShowHidden(cfg.Explorer.ShowHidden); err != nil {
		m.fail("reload config", err)
		return
	}
	m.layout()
	m.setStatus("Configuration reloaded")
}

func (m *Model) fail(op string, err error) {
	m.logger.Error().Err(err).Str("event", "app.failed").Str("op", op).Msg("operation failed")
	m.setError(fmt.Errorf("%s: %w", op, err))
}

func (m Model) bufferOptions() buffer.Options {
	return buffer.Options{HistoryLimit: m.cfg.Editor.HistoryLimit}
}

// expandPath resolves "~" and paths relative to the explorer root.
func (m Model) expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(m.tree.Root(), p)
	}
	return filepath.Clean(p)
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (m *Model) layout() {
	body := m.bodyHeight()
	if m.showExplorer {
		m.explorer = m.explorer.SetSize(m.explorerWidth(), body)
	}
	m.editor = m.editor.SetSize(max(m.width-m.editorX(), 0), body)
}

func (m Model) bodyHeight() int { return max(m.height-2, 0) }

func (m Model) explorerWidth() int {
	if !m.showExplorer {
		return 0
	}
	return min(m.cfg.Explorer.Width, m.width/2)
}

// editorX is the first editor column; a separator follows the explorer.
func (m Model) editorX() int {
	if w := m.explorerWidth(); w > 0 {
		return w + 1
	}
	return 0
}
