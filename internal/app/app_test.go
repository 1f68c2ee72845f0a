package app

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroxite/hydroxite/explorer"
	"github.com/hydroxite/hydroxite/internal/clipboard"
	"github.com/hydroxite/hydroxite/internal/config"
	"github.com/hydroxite/hydroxite/theme"
	"github.com/hydroxite/hydroxite/vim"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansiRE.ReplaceAllString(s, "") }

func keyMsg(s string) tea.KeyMsg {
	types := map[string]tea.KeyType{
		"enter":     tea.KeyEnter,
		"esc":       tea.KeyEsc,
		"up":        tea.KeyUp,
		"down":      tea.KeyDown,
		"left":      tea.KeyLeft,
		"right":     tea.KeyRight,
		"tab":       tea.KeyTab,
		"backspace": tea.KeyBackspace,
		"f10":       tea.KeyF10,
		"ctrl+b":    tea.KeyCtrlB,
		"ctrl+n":    tea.KeyCtrlN,
		"ctrl+o":    tea.KeyCtrlO,
		"ctrl+q":    tea.KeyCtrlQ,
		"ctrl+s":    tea.KeyCtrlS,
		"ctrl+t":    tea.KeyCtrlT,
		"ctrl+u":    tea.KeyCtrlU,
		"ctrl+w":    tea.KeyCtrlW,
		"ctrl+z":    tea.KeyCtrlZ,
	}
	if t, ok := types[s]; ok {
		return tea.KeyMsg{Type: t}
	}
	if rest, ok := strings.CutPrefix(s, "alt+"); ok {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(rest), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type fixture struct {
	dir string
	cfg config.Config
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	cfg := config.Default()
	cfg.Explorer.Watch = false
	return &fixture{dir: dir, cfg: cfg}
}

func (f *fixture) open(t *testing.T, path string) Model {
	t.Helper()
	if path != "" {
		path = filepath.Join(f.dir, path)
	}
	m, err := New(Options{
		Config:    f.cfg,
		Path:      path,
		Clipboard: clipboard.Memory(),
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// send feeds msgs to m and follows up on the messages the panes emit.
func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var last tea.Cmd
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m, last = next.(Model), cmd
		for cmd != nil && !m.dialog.open() {
			out := cmd()
			switch out.(type) {
			case vim.ActionMsg, explorer.OpenFileMsg, explorer.ErrorMsg:
				next, cmd = m.Update(out)
				m, last = next.(Model), cmd
			default:
				cmd = nil
			}
		}
	}
	return m, last
}

func keys(m Model, ks ...string) (Model, tea.Cmd) {
	msgs := make([]tea.Msg, 0, len(ks))
	for _, k := range ks {
		msgs = append(msgs, keyMsg(k))
	}
	return send(m, msgs...)
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// chdir stands in for testing.T.Chdir (Go 1.24+): it changes the working
// directory and restores it when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestNew_ShowsSplashWithoutPath(t *testing.T) {
	f := newFixture(t, nil)
	chdir(t, f.dir)
	m := f.open(t, "")

	assert.True(t, m.splash)
	view := plain(m.View())
	assert.Contains(t, view, "Hydroxite")
	assert.Contains(t, view, "[ ] Vim mode")
	assert.Contains(t, view, "Open Folder")
}

func TestSplash_Choices(t *testing.T) {
	f := newFixture(t, nil)
	chdir(t, f.dir)

	m := f.open(t, "")
	m, _ = keys(m, "v")
	assert.True(t, m.vimEnabled())
	assert.True(t, m.splash, "toggling vim stays on the splash")
	assert.Contains(t, plain(m.View()), "[x] Vim mode")

	m, _ = keys(m, "n")
	assert.False(t, m.splash)
	assert.Equal(t, "untitled", m.Document().Name())

	m = f.open(t, "")
	m, _ = keys(m, "o")
	require.True(t, m.dialog.open())
	assert.Equal(t, purposeOpenFile, m.dialog.purpose)
	m, _ = keys(m, "esc")
	assert.True(t, m.splash, "cancelling the prompt returns to the splash")

	m, cmd := keys(m, "q")
	assert.True(t, isQuit(cmd))
}

func TestNew_OpensFileAndRevealsIt(t *testing.T) {
	f := newFixture(t, map[string]string{
		"src/main.go": "package main\n",
		"README.md":   "# hi\n",
	})
	m := f.open(t, "src/main.go")

	assert.False(t, m.splash)
	assert.Equal(t, "main.go", m.Document().Name())
	sel, ok := m.tree.Selected()
	require.True(t, ok)
	assert.Equal(t, "main.go", sel.Name)

	view := plain(m.View())
	assert.Equal(t, "src", filepath.Base(m.tree.Root()))
	assert.Contains(t, view, "File")
	assert.Contains(t, view, "◆ main.go")
	assert.Contains(t, view, "Ln 1, Col 1")
	assert.Contains(t, view, "Go")
	assert.Contains(t, view, theme.Default)
}

func TestNew_DirectoryPathBecomesRoot(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	m := f.open(t, ".")

	assert.False(t, m.splash)
	assert.Equal(t, "untitled", m.Document().Name())
	require.Len(t, m.tree.Visible(), 1)
	assert.Equal(t, "a.txt", m.tree.Visible()[0].Name)
}

func TestSave_WritesAndClearsDirty(t *testing.T) {
	f := newFixture(t, map[string]string{"main.go": "package main\n"})
	m := f.open(t, "main.go")

	m, _ = keys(m, "x")
	assert.True(t, m.Document().Dirty())
	assert.Contains(t, plain(m.View()), "main.go [+]")

	m, _ = keys(m, "ctrl+s")
	assert.False(t, m.Document().Dirty())
	assert.Equal(t, "xpackage main\n", readFile(t, filepath.Join(f.dir, "main.go")))
	assert.Equal(t, "Saved main.go", m.status)
}

func TestSave_UntitledPromptsForPath(t *testing.T) {
	f := newFixture(t, nil)
	m := f.open(t, ".")

	m, _ = keys(m, "hi", "ctrl+s")
	require.True(t, m.dialog.open())
	assert.Equal(t, purposeSaveAs, m.dialog.purpose)

	m, _ = keys(m, "ctrl+u", "notes.txt", "enter")
	assert.False(t, m.dialog.open())
	assert.Equal(t, "hi", readFile(t, filepath.Join(f.dir, "notes.txt")))
	assert.Equal(t, "notes.txt", m.Document().Name())
}

func TestQuit_ConfirmsWhenDirty(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})

	m := f.open(t, "a.txt")
	_, cmd := keys(m, "ctrl+q")
	assert.True(t, isQuit(cmd), "clean documents quit at once")

	m, _ = keys(m, "b")
	m, cmd = keys(m, "ctrl+q")
	assert.False(t, isQuit(cmd))
	require.True(t, m.dialog.open())
	assert.Equal(t, purposeQuit, m.dialog.purpose)

	m, cmd = keys(m, "n")
	assert.False(t, isQuit(cmd))
	assert.False(t, m.dialog.open())

	m, _ = keys(m, "ctrl+q")
	_, cmd = keys(m, "y")
	assert.True(t, isQuit(cmd))
}

func TestExplorer_CreateFileOpensIt(t *testing.T) {
	f := newFixture(t, map[string]string{"src/main.go": ""})
	m := f.open(t, "src/main.go")

	m, _ = keys(m, "ctrl+w")
	assert.Equal(t, focusExplorer, m.focus)

	m, _ = keys(m, "a")
	require.True(t, m.dialog.open())
	assert.Contains(t, plain(m.View()), "New File")

	m, _ = keys(m, "util.go", "enter")
	assert.FileExists(t, filepath.Join(f.dir, "src", "util.go"))
	assert.Equal(t, "util.go", m.Document().Name())
	assert.Equal(t, focusEditor, m.focus)
}

func TestExplorer_CreateFileRejectsBadName(t *testing.T) {
	f := newFixture(t, nil)
	m := f.open(t, ".")

	m, _ = keys(m, "ctrl+w", "a", "../evil", "enter")
	assert.True(t, m.statusErr)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(f.dir), "evil"))
}

func TestExplorer_CreateFolder(t *testing.T) {
	f := newFixture(t, nil)
	m := f.open(t, ".")

	m, _ = keys(m, "ctrl+w", "A", "pkg", "enter")
	assert.DirExists(t, filepath.Join(f.dir, "pkg"))
	assert.Equal(t, "Created pkg", m.status)
}

func TestExplorer_DeleteOpenFile(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a", "b.txt": "b"})
	m := f.open(t, "a.txt")

	m, _ = keys(m, "ctrl+w", "d")
	require.True(t, m.dialog.open())
	assert.Equal(t, purposeDelete, m.dialog.purpose)

	m, _ = keys(m, "y")
	assert.NoFileExists(t, filepath.Join(f.dir, "a.txt"))
	assert.Equal(t, "untitled", m.Document().Name())
	assert.Contains(t, m.status, "Deleted a.txt")
}

func TestExplorer_RenameOpenFile(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	m := f.open(t, "a.txt")

	m, _ = keys(m, "ctrl+w", "r")
	require.True(t, m.dialog.open())
	assert.Equal(t, "a.txt", m.dialog.input.Value())

	m, _ = keys(m, "ctrl+u", "b.go", "enter")
	assert.FileExists(t, filepath.Join(f.dir, "b.go"))
	assert.Equal(t, "b.go", m.Document().Name())
	assert.Equal(t, "Go", m.Document().Language())
}

func TestExplorer_ContextMenu(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	m := f.open(t, "a.txt")

	m, _ = send(m, tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	require.True(t, m.dialog.open())
	assert.Equal(t, purposeContext, m.dialog.purpose)
	assert.Equal(t, focusExplorer, m.focus)

	m, _ = keys(m, "r")
	require.True(t, m.dialog.open())
	assert.Equal(t, purposeRename, m.dialog.purpose)
}

func TestOpen_DirtyAsksBeforeDiscarding(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a", "b.txt": "b"})
	m := f.open(t, "a.txt")
	other := filepath.Join(m.tree.Root(), "b.txt")

	m, _ = keys(m, "x")
	m, _ = send(m, explorer.OpenFileMsg{Path: other})
	require.True(t, m.dialog.open())
	m, _ = keys(m, "n")
	assert.Equal(t, "a.txt", m.Document().Name())

	m, _ = send(m, explorer.OpenFileMsg{Path: other})
	m, _ = keys(m, "y")
	assert.Equal(t, "b.txt", m.Document().Name())
	assert.Equal(t, "b", m.Document().Buffer().Text())
}

func TestOpen_PromptResolvesRelativePaths(t *testing.T) {
	f := newFixture(t, map[string]string{"docs/guide.md": "# guide"})
	m := f.open(t, ".")

	m, _ = keys(m, "ctrl+o", "ctrl+u", "docs/guide.md", "enter")
	assert.Equal(t, "guide.md", m.Document().Name())
	sel, ok := m.tree.Selected()
	require.True(t, ok)
	assert.Equal(t, "guide.md", sel.Name)
}

func TestOpenFolder(t *testing.T) {
	f := newFixture(t, map[string]string{"one/x.txt": "", "two/y.txt": ""})
	m := f.open(t, "one/x.txt")

	m, _ = send(m, keyMsg("alt+f"))
	require.True(t, m.menu.active())
	// Open Folder is the fifth File item.
	m, _ = keys(m, "down", "down", "down", "down", "enter")
	require.True(t, m.dialog.open())
	assert.Equal(t, purposeOpenFolder, m.dialog.purpose)

	m, _ = keys(m, "ctrl+u", filepath.Join(f.dir, "two"), "enter")
	assert.Equal(t, "two", filepath.Base(m.tree.Root()))
	assert.Equal(t, focusExplorer, m.focus)
}

func TestVim_ExCommands(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "abc"})
	f.cfg.Vim.Enabled = true
	m := f.open(t, "a.txt")
	assert.Contains(t, plain(m.View()), "-- NORMAL --")

	m, _ = keys(m, "x")
	assert.Equal(t, "bc", m.Document().Buffer().Text())

	m, cmd := keys(m, ":", "q", "enter")
	assert.False(t, isQuit(cmd))
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "no write since last change")

	m, _ = keys(m, ":", "w", "enter")
	assert.Equal(t, "bc", readFile(t, filepath.Join(f.dir, "a.txt")))
	assert.False(t, m.Document().Dirty())

	m, _ = keys(m, ":", "s", "e", "t", " ", "n", "o", "n", "u", "enter")
	assert.False(t, m.editor.ShowLineNums())

	_, cmd = keys(m, ":", "q", "enter")
	assert.True(t, isQuit(cmd))
}

func TestVim_CommandLineInStatus(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "abc"})
	f.cfg.Vim.Enabled = true
	m := f.open(t, "a.txt")

	m, _ = keys(m, ":", "w")
	assert.Contains(t, plain(m.renderStatus()), ":w")
}

func TestMenu_KeyboardNavigation(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	m := f.open(t, "a.txt")

	m, _ = keys(m, "f10")
	assert.Equal(t, 0, m.menu.open)
	m, _ = keys(m, "right")
	assert.Equal(t, 1, m.menu.open)
	m, _ = keys(m, "left", "left")
	assert.Equal(t, len(menus)-1, m.menu.open)
	m, _ = keys(m, "esc")
	assert.False(t, m.menu.active())

	m, _ = send(m, keyMsg("alt+v"))
	assert.Contains(t, plain(m.View()), "✓ Line Numbers")
	m, _ = keys(m, "down", "enter")
	assert.False(t, m.editor.ShowLineNums())
	assert.False(t, m.menu.active())
}

func TestMenu_MouseOpensTitle(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	m := f.open(t, "a.txt")

	m, _ = send(m, tea.MouseMsg{X: titleX(2) + 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 2, m.menu.open)

	// Explorer is the third View item.
	m, _ = send(m, tea.MouseMsg{X: titleX(2) + 2, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.menu.active())
	assert.False(t, m.showExplorer)
}

func TestNextTheme(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	m := f.open(t, "a.txt")
	want := m.catalog.Next(m.ThemeName()).Name

	m, _ = keys(m, "ctrl+t")
	assert.Equal(t, want, m.ThemeName())
	assert.Equal(t, "Theme: "+want, m.status)
}

func TestToggleExplorer(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	m := f.open(t, "a.txt")
	assert.Equal(t, 30, m.explorer.Width())
	assert.Equal(t, 69, m.editor.Width())

	m, _ = keys(m, "ctrl+b")
	assert.False(t, m.showExplorer)
	assert.Equal(t, 100, m.editor.Width())

	m, _ = keys(m, "ctrl+w")
	assert.Equal(t, focusEditor, m.focus, "hidden explorer cannot take focus")
}

func TestAbout(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	m := f.open(t, "a.txt")

	m, _ = send(m, keyMsg("alt+h"))
	m, _ = keys(m, "enter")
	require.True(t, m.dialog.open())
	assert.Contains(t, plain(m.View()), "About Hydroxite")
	m, _ = keys(m, "esc")
	assert.False(t, m.dialog.open())
}

func TestConfigReloadAppliesTheme(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	m := f.open(t, "a.txt")

	cfg := f.cfg
	cfg.Theme = "nord"
	cfg.Editor.LineNumbers = false
	m, _ = send(m, configReloadedMsg{cfg: cfg})
	assert.Equal(t, "nord", m.ThemeName())
	assert.False(t, m.editor.ShowLineNums())
	assert.Equal(t, "Configuration reloaded", m.status)
}

func TestFilesystemChangeRefreshesTree(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	m := f.open(t, "a.txt")

	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "new.txt"), nil, 0o644))
	m, _ = send(m, fsChangedMsg{})
	assert.Len(t, m.tree.Visible(), 2)
	assert.Contains(t, plain(m.View()), "new.txt")
}

func TestVim_TurningOffMidInsertKeepsUndoSteps(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "abc"})
	f.cfg.Vim.Enabled = true
	m := f.open(t, "a.txt")

	m, _ = keys(m, "i", "X")
	m.run(cmdToggleVim)
	require.False(t, m.vimEnabled())

	m, _ = keys(m, "1", "2", "3")
	require.Equal(t, "X123abc", m.Document().Buffer().Text())
	m, _ = keys(m, "ctrl+z")
	assert.Equal(t, "X12abc", m.Document().Buffer().Text())
}

func TestExplorer_RenameOpenFileUnderSymlinkedFolder(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "a"})
	link := filepath.Join(t.TempDir(), "work")
	require.NoError(t, os.Symlink(f.dir, link))
	f.dir = link
	m := f.open(t, "a.txt")

	m, _ = keys(m, "ctrl+w", "r", "ctrl+u", "b.go", "enter")
	assert.Equal(t, "b.go", m.Document().Name())

	m.setFocus(focusEditor)
	m, _ = keys(m, "x", "ctrl+s")
	assert.NoFileExists(t, filepath.Join(link, "a.txt"))
	assert.Equal(t, "xa", readFile(t, filepath.Join(link, "b.go")))
}

func TestResolveStartPath_MissingFolderFallsBackToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	wd, err := os.Getwd()
	require.NoError(t, err)

	root, file, err := resolveStartPath(filepath.Join("newdir", "new.txt"))
	require.NoError(t, err)
	assert.Equal(t, wd, root)
	assert.Equal(t, filepath.Join(wd, "newdir", "new.txt"), file)
}
