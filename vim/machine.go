package vim

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hydroxite/hydroxite/buffer"
)

var (
	ErrUnknownCommand    = errors.New("not an editor command")
	ErrPatternNotFound   = errors.New("pattern not found")
	ErrNoPreviousPattern = errors.New("no previous regular expression")
	ErrNoFileName        = errors.New("no file name")
)

// Options configures a Machine.
type Options struct {
	// Clipboard, when set, mirrors the unnamed register.
	Clipboard Clipboard
	// Indent is inserted by `>`; default "\t".
	Indent string
	// TabWidth is the number of leading spaces `<` removes when a line is not
	// tab-indented; default 4.
	TabWidth int
}

// Machine is the Vim input state machine. It is not safe for concurrent use;
// Bubble Tea drives it from a single goroutine.
type Machine struct {
	opt  Options
	mode Mode

	count   int
	opCount int
	op      byte

	pendingG       bool
	pendingReplace bool

	wantCol int

	visualAnchor buffer.Pos

	cmdline       string
	searchForward bool
	lastSearch    string
	lastForward   bool

	insertGroup bool

	reg     register
	clipErr error
}

func New(opt Options) *Machine {
	if opt.Indent == "" {
		opt.Indent = "\t"
	}
	if opt.TabWidth <= 0 {
		opt.TabWidth = 4
	}
	return &Machine{opt: opt}
}

func (m *Machine) Mode() Mode { return m.mode }

// Reset returns to Normal mode and drops any pending input. When b is not nil
// the cursor is clamped for Normal mode and any open insert group is closed.
func (m *Machine) Reset(b *buffer.Buffer) {
	m.resetPending()
	m.cmdline = ""
	if b != nil {
		if m.insertGroup {
			b.EndGroup()
		}
		b.ClearSelection()
		b.SetCursor(clampNormal(b, b.Cursor()))
		m.wantCol = b.Cursor().Col
	}
	m.insertGroup = false
	m.mode = ModeNormal
}

// StatusLine renders the mode indicator or the command line being typed.
func (m *Machine) StatusLine() string {
	switch m.mode {
	case ModeCommand:
		return ":" + m.cmdline
	case ModeSearch:
		if m.searchForward {
			return "/" + m.cmdline
		}
		return "?" + m.cmdline
	default:
		return "-- " + m.mode.String() + " --"
	}
}

// Pending renders the partially typed count/operator, e.g. "2d".
func (m *Machine) Pending() string {
	s := ""
	if m.opCount > 0 {
		s += strconv.Itoa(m.opCount)
	}
	if m.op != 0 {
		s += string(m.op)
	}
	if m.count > 0 {
		s += strconv.Itoa(m.count)
	}
	if m.pendingG {
		s += "g"
	}
	if m.pendingReplace {
		s += "r"
	}
	return s
}

// HandleKey processes one key message against b.
func (m *Machine) HandleKey(b *buffer.Buffer, msg tea.KeyMsg) Result {
	if b == nil {
		return Result{}
	}
	res := m.handleMsg(b, msg)
	if err := m.clipErr; err != nil {
		m.clipErr = nil
		if res.Action.Kind == ActionNone {
			res.Action = failure(fmt.Errorf("clipboard: %w", err)).Action
		}
	}
	return res
}

func (m *Machine) handleMsg(b *buffer.Buffer, msg tea.KeyMsg) Result {
	if m.mode == ModeInsert {
		if msg.Type == tea.KeyEsc {
			m.leaveInsert(b)
			return Result{}
		}
		return Result{PassThrough: true}
	}

	if msg.Type == tea.KeyRunes && !msg.Alt {
		if msg.Paste && (m.mode == ModeCommand || m.mode == ModeSearch) {
			m.cmdline += string(msg.Runes)
			return Result{}
		}
		// Fast typists and terminals may batch several runes into one message.
		var res Result
		for i, r := range msg.Runes {
			out := m.handle(b, string(r))
			if out.Action.Kind != ActionNone {
				res = out
			}
			if m.mode == ModeInsert {
				if rest := msg.Runes[i+1:]; len(rest) > 0 {
					res.Typed = rest
				}
				break
			}
		}
		return res
	}
	return m.handle(b, keyString(msg))
}

func keyString(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return " "
	}
	return msg.String()
}

func (m *Machine) handle(b *buffer.Buffer, key string) Result {
	switch m.mode {
	case ModeNormal:
		return m.handleNormal(b, key)
	case ModeVisual, ModeVisualLine:
		return m.handleVisual(b, key)
	case ModeCommand, ModeSearch:
		return m.handleCmdline(b, key)
	case ModeInsert:
		return Result{PassThrough: true}
	}
	return Result{}
}

func (m *Machine) resetPending() {
	m.count = 0
	m.opCount = 0
	m.op = 0
	m.pendingG = false
	m.pendingReplace = false
}

// takeCount consumes the typed count, multiplied by the count typed before a
// pending operator. Zero means no count was given.
func (m *Machine) takeCount() int {
	c := m.count
	m.count = 0
	if m.op != 0 && m.opCount > 0 {
		if c == 0 {
			c = m.opCount
		} else {
			c *= m.opCount
		}
	}
	return c
}

// consumeCountDigit handles count prefixes; "0" is a motion unless a count
// is already being typed.
func (m *Machine) consumeCountDigit(key string) bool {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return false
	}
	if key == "0" && m.count == 0 {
		return false
	}
	m.count = m.count*10 + int(key[0]-'0')
	if m.count > 99999 {
		m.count = 99999
	}
	return true
}

func (m *Machine) moveTo(b *buffer.Buffer, mo motion, key string) {
	b.SetCursor(clampNormal(b, mo.target))
	switch {
	case key == "$" || key == "end":
		m.wantCol = math.MaxInt
	case !mo.keepCol:
		m.wantCol = b.Cursor().Col
	}
}

func (m *Machine) handleNormal(b *buffer.Buffer, key string) Result {
	if m.pendingReplace {
		count := max(m.takeCount(), 1)
		m.resetPending()
		if utf8.RuneCountInString(key) == 1 || key == " " {
			m.replaceChars(b, key, count)
		}
		return Result{}
	}
	if m.consumeCountDigit(key) {
		return Result{}
	}
	if m.pendingG {
		m.pendingG = false
		if key != "g" {
			m.resetPending()
			return Result{}
		}
		key = "gg"
	} else if key == "g" {
		m.pendingG = true
		return Result{}
	}

	switch key {
	case "d", "c", "y", ">", "<":
		if m.op == 0 {
			m.op = key[0]
			m.opCount = m.count
			m.count = 0
			return Result{}
		}
		if m.op == key[0] {
			count := max(m.takeCount(), 1)
			op := m.op
			m.resetPending()
			cur := b.Cursor().Row
			return m.operate(b, op, lineSpan(b, cur, min(cur+count-1, b.LineCount()-1)))
		}
		m.resetPending()
		return Result{}
	}

	count := m.takeCount()
	if m.op == 'c' && key == "w" {
		op := m.op
		m.resetPending()
		return m.operate(b, op, m.changeWordSpan(b, count))
	}
	if mo, ok := m.resolveMotion(b, key, count); ok {
		if m.op != 0 {
			op := m.op
			m.resetPending()
			return m.operate(b, op, motionSpan(b, mo, key))
		}
		m.moveTo(b, mo, key)
		return Result{}
	}
	if m.op != 0 {
		m.resetPending()
		return Result{}
	}
	m.resetPending()

	n := max(count, 1)
	cur := b.Cursor()
	switch key {
	case "esc":
		return Result{}
	case "i", "insert":
		m.enterInsert(b, cur)
	case "a":
		if b.LineLen(cur.Row) > 0 {
			cur.Col++
		}
		m.enterInsert(b, cur)
	case "I":
		m.enterInsert(b, buffer.Pos{Row: cur.Row, Col: firstNonBlank(b, cur.Row)})
	case "A":
		m.enterInsert(b, buffer.Pos{Row: cur.Row, Col: b.LineLen(cur.Row)})
	case "o":
		m.openLine(b, false)
	case "O":
		m.openLine(b, true)
	case "x", "delete":
		if b.LineLen(cur.Row) == 0 {
			return Result{}
		}
		end := buffer.Pos{Row: cur.Row, Col: min(cur.Col+n, b.LineLen(cur.Row))}
		return m.operate(b, 'd', span{r: buffer.Range{Start: cur, End: end}})
	case "X":
		if cur.Col == 0 {
			return Result{}
		}
		start := buffer.Pos{Row: cur.Row, Col: max(cur.Col-n, 0)}
		return m.operate(b, 'd', span{r: buffer.Range{Start: start, End: cur}})
	case "D", "C":
		end := buffer.Pos{Row: cur.Row, Col: b.LineLen(cur.Row)}
		if n > 1 {
			row := min(cur.Row+n-1, b.LineCount()-1)
			end = buffer.Pos{Row: row, Col: b.LineLen(row)}
		}
		op := byte('d')
		if key == "C" {
			op = 'c'
		}
		return m.operate(b, op, span{r: buffer.Range{Start: cur, End: end}})
	case "p":
		m.put(b, false, n)
	case "P":
		m.put(b, true, n)
	case "J":
		m.joinLines(b, cur.Row, max(n, 2))
	case "r":
		m.pendingReplace = true
		m.count = count
	case "~":
		m.toggleCase(b, n)
	case "u":
		return m.undo(b, n)
	case "ctrl+r":
		return m.redo(b, n)
	case "v":
		m.enterVisual(b, ModeVisual)
	case "V":
		m.enterVisual(b, ModeVisualLine)
	case ":":
		m.mode = ModeCommand
		m.cmdline = ""
	case "/", "?":
		m.mode = ModeSearch
		m.searchForward = key == "/"
		m.cmdline = ""
	case "n", "N":
		forward := m.lastForward
		if key == "N" {
			forward = !forward
		}
		return m.searchAgain(b, forward)
	}
	return Result{}
}

func (m *Machine) enterInsert(b *buffer.Buffer, at buffer.Pos) {
	if !m.insertGroup {
		b.BeginGroup()
		m.insertGroup = true
	}
	b.ClearSelection()
	b.SetCursor(at)
	m.mode = ModeInsert
}

func (m *Machine) leaveInsert(b *buffer.Buffer) {
	if m.insertGroup {
		b.EndGroup()
		m.insertGroup = false
	}
	m.mode = ModeNormal
	b.ClearSelection()
	cur := b.Cursor()
	if cur.Col > 0 {
		cur.Col--
	}
	b.SetCursor(clampNormal(b, cur))
	m.wantCol = b.Cursor().Col
}

func (m *Machine) undo(b *buffer.Buffer, n int) Result {
	done := 0
	for i := 0; i < n; i++ {
		if !b.Undo() {
			break
		}
		done++
	}
	b.ClearSelection()
	b.SetCursor(clampNormal(b, b.Cursor()))
	if done == 0 {
		return message("Already at oldest change")
	}
	return Result{}
}

func (m *Machine) redo(b *buffer.Buffer, n int) Result {
	done := 0
	for i := 0; i < n; i++ {
		if !b.Redo() {
			break
		}
		done++
	}
	b.ClearSelection()
	b.SetCursor(clampNormal(b, b.Cursor()))
	if done == 0 {
		return message("Already at newest change")
	}
	return Result{}
}

func (m *Machine) enterVisual(b *buffer.Buffer, mode Mode) {
	m.mode = mode
	m.visualAnchor = b.Cursor()
	m.updateVisual(b)
}

func (m *Machine) exitVisual(b *buffer.Buffer) {
	m.mode = ModeNormal
	b.ClearSelection()
	b.SetCursor(clampNormal(b, b.Cursor()))
}

// visualSpan is the span covered by the current visual selection.
func (m *Machine) visualSpan(b *buffer.Buffer) span {
	start, end := orderPos(m.visualAnchor, b.Cursor())
	if m.mode == ModeVisualLine {
		return lineSpan(b, start.Row, end.Row)
	}
	end = buffer.Pos{Row: end.Row, Col: min(end.Col+1, b.LineLen(end.Row))}
	return span{r: buffer.Range{Start: start, End: end}}
}

func (m *Machine) updateVisual(b *buffer.Buffer) {
	s := m.visualSpan(b)
	if s.linewise {
		b.SetSelection(buffer.Range{
			Start: buffer.Pos{Row: s.startRow},
			End:   buffer.Pos{Row: s.endRow, Col: b.LineLen(s.endRow)},
		})
		return
	}
	b.SetSelection(s.r)
}

func (m *Machine) handleVisual(b *buffer.Buffer, key string) Result {
	if m.consumeCountDigit(key) {
		return Result{}
	}
	if m.pendingG {
		m.pendingG = false
		if key != "g" {
			m.count = 0
			return Result{}
		}
		key = "gg"
	} else if key == "g" {
		m.pendingG = true
		return Result{}
	}

	count := m.takeCount()
	if mo, ok := m.resolveMotion(b, key, count); ok {
		m.moveTo(b, mo, key)
		m.updateVisual(b)
		return Result{}
	}

	switch key {
	case "esc":
		m.exitVisual(b)
	case "v", "V":
		target := ModeVisual
		if key == "V" {
			target = ModeVisualLine
		}
		if m.mode == target {
			m.exitVisual(b)
			return Result{}
		}
		m.mode = target
		m.updateVisual(b)
	case "o":
		anchor := m.visualAnchor
		m.visualAnchor = b.Cursor()
		b.SetCursor(anchor)
		m.updateVisual(b)
	case "d", "x", "y", "c", "s", ">", "<":
		op := key[0]
		switch key {
		case "x":
			op = 'd'
		case "s":
			op = 'c'
		}
		s := m.visualSpan(b)
		b.ClearSelection()
		m.mode = ModeNormal
		return m.operate(b, op, s)
	case "J":
		s := m.visualSpan(b)
		m.exitVisual(b)
		start, end := orderPos(s.r.Start, s.r.End)
		if s.linewise {
			start.Row, end.Row = s.startRow, s.endRow
		}
		m.joinLines(b, start.Row, max(end.Row-start.Row+1, 2))
	case ":":
		m.exitVisual(b)
		m.mode = ModeCommand
		m.cmdline = ""
	}
	return Result{}
}

func (m *Machine) handleCmdline(b *buffer.Buffer, key string) Result {
	switch key {
	case "esc", "ctrl+c":
		m.mode = ModeNormal
		m.cmdline = ""
		return Result{}
	case "enter":
		line := m.cmdline
		search := m.mode == ModeSearch
		m.mode = ModeNormal
		m.cmdline = ""
		var res Result
		if search {
			res = m.search(b, line, m.searchForward)
		} else {
			res = m.execute(b, line)
		}
		b.SetCursor(clampNormal(b, b.Cursor()))
		return res
	case "backspace":
		if m.cmdline == "" {
			m.mode = ModeNormal
			return Result{}
		}
		_, size := utf8.DecodeLastRuneInString(m.cmdline)
		m.cmdline = m.cmdline[:len(m.cmdline)-size]
		return Result{}
	}
	if utf8.RuneCountInString(key) == 1 {
		m.cmdline += key
	}
	return Result{}
}

func orderPos(a, b buffer.Pos) (buffer.Pos, buffer.Pos) {
	if buffer.ComparePos(a, b) <= 0 {
		return a, b
	}
	return b, a
}
