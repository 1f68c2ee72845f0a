package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hydroxite/hydroxite/explorer"
	"github.com/hydroxite/hydroxite/internal/config"
	"github.com/hydroxite/hydroxite/internal/watch"
	"github.com/hydroxite/hydroxite/vim"
)

type fsChangedMsg struct {
	batch watch.Batch
}

type configReloadedMsg struct {
	cfg config.Config
}

func waitForBatch(ch <-chan watch.Batch) tea.Cmd {
	return func() tea.Msg {
		b, ok := <-ch
		if !ok {
			return nil
		}
		return fsChangedMsg{batch: b}
	}
}

func waitForConfig(ctx context.Context, ch <-chan config.Config) tea.Cmd {
	return func() tea.Msg {
		select {
		case cfg := <-ch:
			return configReloadedMsg{cfg: cfg}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case vim.ActionMsg:
		return m.handleVimAction(msg.Action)

	case explorer.OpenFileMsg:
		m.requestOpen(msg.Path)
		return nil

	case explorer.ErrorMsg:
		m.fail("explorer", msg.Err)
		return nil

	case fsChangedMsg:
		if err := m.tree.Refresh(); err != nil {
			m.fail("explorer refresh", err)
		}
		m.syncWatches()
		m.explorer = m.explorer.Sync()
		if m.watcher == nil {
			return nil
		}
		return waitForBatch(m.watcher.Batches())

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		if m.configCh == nil {
			return nil
		}
		return waitForConfig(m.ctx, m.configCh)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *Model) updateKey(msg tea.KeyMsg) tea.Cmd {
	if m.dialog.open() {
		return m.updateDialog(msg)
	}
	if m.menu.active() {
		return m.updateMenu(msg)
	}
	if m.splash {
		return m.updateSplash(msg)
	}

	if cmd, ok := m.globalKey(msg); ok {
		return cmd
	}
	m.clearStatus()

	if m.focus == focusExplorer {
		if cmd, ok := m.explorerKey(msg); ok {
			return cmd
		}
		var cmd tea.Cmd
		m.explorer, cmd = m.explorer.Update(msg)
		m.syncWatches()
		return cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

// globalKey handles application shortcuts.
func (m *Model) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Save):
		return m.run(cmdSave), true
	case key.Matches(msg, k.Open):
		return m.run(cmdOpen), true
	case key.Matches(msg, k.New):
		return m.run(cmdNew), true
	case key.Matches(msg, k.Quit):
		return m.run(cmdQuit), true
	case key.Matches(msg, k.NextTheme):
		return m.run(cmdNextTheme), true
	case key.Matches(msg, k.ToggleExplorer):
		return m.run(cmdToggleExplorer), true
	case key.Matches(msg, k.CycleFocus):
		if m.focus == focusEditor {
			m.setFocus(focusExplorer)
		} else {
			m.setFocus(focusEditor)
		}
		return nil, true
	case key.Matches(msg, k.Menu), key.Matches(msg, k.FileMenu):
		m.menu = menuState{open: 0}
		return nil, true
	case key.Matches(msg, k.EditMenu):
		m.menu = menuState{open: 1}
		return nil, true
	case key.Matches(msg, k.ViewMenu):
		m.menu = menuState{open: 2}
		return nil, true
	case key.Matches(msg, k.HelpMenu):
		m.menu = menuState{open: 3}
		return nil, true
	}
	return nil, false
}

func (m *Model) explorerKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.ExplorerNewFile):
		return m.run(cmdNewFile), true
	case key.Matches(msg, m.keys.ExplorerNewDir):
		return m.run(cmdNewFolder), true
	case key.Matches(msg, m.keys.ExplorerRename):
		return m.run(cmdRename), true
	case key.Matches(msg, m.keys.ExplorerDelete):
		return m.run(cmdDelete), true
	}
	return nil, false
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	items := menus[m.menu.open].items
	switch msg.String() {
	case "esc", "f10":
		m.menu = menuState{open: -1}
	case "left", "h":
		m.menu = menuState{open: (m.menu.open + len(menus) - 1) % len(menus)}
	case "right", "l":
		m.menu = menuState{open: (m.menu.open + 1) % len(menus)}
	case "up", "k":
		m.menu.selected = (m.menu.selected + len(items) - 1) % len(items)
	case "down", "j":
		m.menu.selected = (m.menu.selected + 1) % len(items)
	case "enter", " ":
		c := items[m.menu.selected].cmd
		m.menu = menuState{open: -1}
		return m.run(c)
	}
	return nil
}

func (m *Model) updateDialog(msg tea.KeyMsg) tea.Cmd {
	d, res, done, cmd := m.dialog.update(msg)
	if !done {
		m.dialog = d
		return cmd
	}
	m.dialog = dialog{}
	if !res.accepted {
		return nil
	}
	return m.acceptDialog(d, res)
}

func (m *Model) updateMouse(msg tea.MouseMsg) tea.Cmd {
	if m.dialog.open() || m.splash {
		return nil
	}
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if m.menu.active() {
		if press {
			m.clickMenu(msg.X, msg.Y)
		}
		return nil
	}
	if msg.Y == 0 {
		if press {
			if i := menuAt(msg.X); i >= 0 {
				m.menu = menuState{open: i}
			}
		}
		return nil
	}

	body := msg
	body.Y--
	ew := m.explorerWidth()
	if m.showExplorer && msg.X < ew {
		if press {
			m.setFocus(focusExplorer)
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight {
			m.setFocus(focusExplorer)
			if i := m.explorer.IndexAt(body.Y); i >= 0 {
				m.tree.SelectIndex(i)
			}
			sel, _ := m.tree.Selected()
			m.dialog = newChoice("Actions", sel.Path, contextItems)
			return nil
		}
		var cmd tea.Cmd
		m.explorer, cmd = m.explorer.Update(body)
		m.syncWatches()
		return cmd
	}

	if press && m.focus != focusEditor {
		m.setFocus(focusEditor)
	}
	body.X -= m.editorX()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(body)
	return cmd
}

func (m *Model) clickMenu(x, y int) {
	if y == 0 {
		if i := menuAt(x); i >= 0 && i != m.menu.open {
			m.menu = menuState{open: i}
			return
		}
		m.menu = menuState{open: -1}
		return
	}
	items := menus[m.menu.open].items
	row := y - 1
	if row >= 0 && row < len(items) {
		m.menu = menuState{open: -1}
		_ = m.run(items[row].cmd)
		return
	}
	m.menu = menuState{open: -1}
}

func (m *Model) updateSplash(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return m.run(cmdQuit)
	}
	switch msg.String() {
	case "up", "k", "shift+tab":
		m.splashCursor = (m.splashCursor + len(splashItems) - 1) % len(splashItems)
	case "down", "j", "tab":
		m.splashCursor = (m.splashCursor + 1) % len(splashItems)
	case "v":
		return m.splashSelect(0)
	case "n":
		return m.splashSelect(1)
	case "o":
		return m.splashSelect(2)
	case "f":
		return m.splashSelect(3)
	case "q":
		return m.run(cmdQuit)
	case "enter", " ":
		return m.splashSelect(m.splashCursor)
	}
	return nil
}

func (m *Model) splashSelect(i int) tea.Cmd {
	m.splashCursor = i
	switch splashItems[i].cmd {
	case cmdToggleVim:
		return m.run(cmdToggleVim)
	case cmdNew:
		m.splash = false
		return m.run(cmdNew)
	default:
		return m.run(splashItems[i].cmd)
	}
}
