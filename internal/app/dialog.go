package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hydroxite/hydroxite/theme"
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogPrompt
	dialogConfirm
	dialogAbout
	dialogChoice
)

// purpose says what accepting a dialog does.
type purpose int

const (
	purposeNone purpose = iota
	purposeNewFile
	purposeNewFolder
	purposeOpenFile
	purposeOpenFolder
	purposeSaveAs
	purposeRename
	purposeDelete
	purposeQuit
	purposeDiscardAndOpen
	purposeDiscardAndNew
	purposeContext
)

type dialog struct {
	kind    dialogKind
	purpose purpose
	title   string
	body    string
	// target is the path the dialog acts on, if any.
	target string

	input    textinput.Model
	items    []menuItem
	selected int
}

func (d dialog) open() bool { return d.kind != dialogNone }

func newPrompt(p purpose, title, value string) dialog {
	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 4096
	in.Width = 40
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	return dialog{kind: dialogPrompt, purpose: p, title: title, input: in}
}

func newConfirm(p purpose, title, body, target string) dialog {
	return dialog{kind: dialogConfirm, purpose: p, title: title, body: body, target: target}
}

func newChoice(title, target string, items []menuItem) dialog {
	return dialog{kind: dialogChoice, purpose: purposeContext, title: title, target: target, items: items}
}

// dialogResult is produced when a dialog closes.
type dialogResult struct {
	accepted bool
	value    string
	cmd      command
}

// update feeds a key to the dialog. done reports that it closed.
func (d dialog) update(msg tea.KeyMsg) (dialog, dialogResult, bool, tea.Cmd) {
	switch d.kind {
	case dialogPrompt:
		switch msg.Type {
		case tea.KeyEsc:
			return d, dialogResult{}, true, nil
		case tea.KeyEnter:
			return d, dialogResult{accepted: true, value: strings.TrimSpace(d.input.Value())}, true, nil
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, dialogResult{}, false, cmd

	case dialogConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			return d, dialogResult{accepted: true}, true, nil
		case "n", "N", "esc":
			return d, dialogResult{}, true, nil
		}

	case dialogAbout:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter, tea.KeySpace:
			return d, dialogResult{}, true, nil
		}

	case dialogChoice:
		switch msg.String() {
		case "esc":
			return d, dialogResult{}, true, nil
		case "up", "k":
			d.selected = (d.selected + len(d.items) - 1) % len(d.items)
		case "down", "j":
			d.selected = (d.selected + 1) % len(d.items)
		case "enter":
			return d, dialogResult{accepted: true, cmd: d.items[d.selected].cmd}, true, nil
		default:
			for _, it := range d.items {
				if it.shortcut == msg.String() {
					return d, dialogResult{accepted: true, cmd: it.cmd}, true, nil
				}
			}
		}
	}
	return d, dialogResult{}, false, nil
}

func (d dialog) view(st theme.Chrome) string {
	var body string
	switch d.kind {
	case dialogPrompt:
		body = d.input.View() + "\n\n" + st.Muted.Render("enter to confirm · esc to cancel")
	case dialogConfirm:
		body = d.body + "\n\n" + st.Muted.Render("y / n")
	case dialogAbout:
		body = d.body + "\n\n" + st.Muted.Render("press enter to close")
	case dialogChoice:
		body = renderItems(st, d.items, d.selected, nil)
	}
	return st.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, st.Title.Render(d.title), "", body))
}
