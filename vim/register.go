package vim

import "strings"

// Clipboard is the optional system clipboard the unnamed register mirrors.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

type register struct {
	text     string
	linewise bool
}

func (m *Machine) setRegister(text string, linewise bool) {
	m.reg = register{text: text, linewise: linewise}
	if m.opt.Clipboard != nil {
		if err := m.opt.Clipboard.WriteText(text); err != nil {
			m.clipErr = err
		}
	}
}

// getRegister prefers the system clipboard when it holds different text, so
// content copied from other programs can be put.
func (m *Machine) getRegister() register {
	if m.opt.Clipboard == nil {
		return m.reg
	}
	s, err := m.opt.Clipboard.ReadText()
	if err != nil || s == "" || s == m.reg.text {
		return m.reg
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return register{text: s, linewise: strings.HasSuffix(s, "\n")}
}

// Register returns the unnamed register contents.
func (m *Machine) Register() (text string, linewise bool) {
	return m.reg.text, m.reg.linewise
}
