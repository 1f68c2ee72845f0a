package vim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hydroxite/hydroxite/buffer"
)

// execute runs an ex command line (without the leading ':').
func (m *Machine) execute(b *buffer.Buffer, line string) Result {
	line = strings.TrimSpace(line)
	if line == "" {
		return Result{}
	}
	if n, err := strconv.Atoi(line); err == nil {
		row := min(max(n-1, 0), b.LineCount()-1)
		b.SetCursor(buffer.Pos{Row: row, Col: firstNonBlank(b, row)})
		m.wantCol = b.Cursor().Col
		return Result{}
	}
	if rest, ok := cutSubstitute(line); ok {
		return m.substitute(b, rest)
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "w", "write", "w!":
		return Result{Action: Action{Kind: ActionSave, Path: arg, Force: name == "w!"}}
	case "q", "quit":
		return Result{Action: Action{Kind: ActionQuit}}
	case "q!", "quit!", "qa", "qa!", "qall":
		return Result{Action: Action{Kind: ActionQuit, Force: strings.HasSuffix(name, "!")}}
	case "wq", "x", "xit", "wq!":
		return Result{Action: Action{Kind: ActionSaveQuit, Path: arg}}
	case "e", "edit", "e!":
		if arg == "" {
			return failure(ErrNoFileName)
		}
		return Result{Action: Action{Kind: ActionOpen, Path: arg, Force: name == "e!"}}
	case "set", "se":
		return setOption(arg)
	case "noh", "nohlsearch":
		b.ClearSelection()
		return Result{}
	}
	return failure(fmt.Errorf("%w: %s", ErrUnknownCommand, name))
}

func setOption(arg string) Result {
	if arg == "" {
		return failure(fmt.Errorf("%w: set requires an option", ErrUnknownCommand))
	}
	value := true
	name := arg
	if strings.HasPrefix(name, "no") {
		value = false
		name = strings.TrimPrefix(name, "no")
	}
	switch name {
	case "nu", "number":
		name = "number"
	case "vim":
	default:
		return failure(fmt.Errorf("unknown option: %s", arg))
	}
	return Result{Action: Action{Kind: ActionSetOption, Option: name, Value: value}}
}

// cutSubstitute strips the range and command name from a `:s` line and
// returns the "<range>|/pat/repl/flags" remainder.
func cutSubstitute(line string) (string, bool) {
	i := 0
	for i < len(line) && strings.IndexByte("%,0123456789.$", line[i]) >= 0 {
		i++
	}
	rng, rest := line[:i], line[i:]
	switch {
	case strings.HasPrefix(rest, "substitute/"):
		rest = rest[len("substitute"):]
	case strings.HasPrefix(rest, "s/"):
		rest = rest[1:]
	default:
		return "", false
	}
	return rng + "|" + rest, true
}

func (m *Machine) substitute(b *buffer.Buffer, cmd string) Result {
	rng, body, _ := strings.Cut(cmd, "|")
	startRow, endRow, err := parseLineRange(b, rng)
	if err != nil {
		return failure(err)
	}

	parts := splitUnescaped(body[1:], '/')
	if len(parts) == 0 || parts[0] == "" {
		if m.lastSearch == "" {
			return failure(ErrNoPreviousPattern)
		}
		if len(parts) == 0 {
			parts = []string{""}
		}
		parts[0] = m.lastSearch
	}
	pattern := parts[0]
	repl := ""
	if len(parts) > 1 {
		repl = parts[1]
	}
	flags := ""
	if len(parts) > 2 {
		flags = parts[2]
	}
	global := strings.Contains(flags, "g")
	if strings.Contains(flags, "i") {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return failure(fmt.Errorf("invalid pattern: %w", err))
	}
	m.lastSearch = parts[0]
	expand := translateReplacement(repl)

	var edits []buffer.TextEdit
	subs, lines := 0, 0
	lastRow := -1
	for row := endRow; row >= startRow; row-- {
		text := b.Line(row)
		n := 0
		out := replaceLine(re, text, expand, global, &n)
		if n == 0 {
			continue
		}
		subs += n
		lines++
		if lastRow < 0 {
			lastRow = row
		}
		edits = append(edits, buffer.TextEdit{
			Range: buffer.Range{Start: buffer.Pos{Row: row}, End: buffer.Pos{Row: row, Col: b.LineLen(row)}},
			Text:  out,
		})
	}
	if subs == 0 {
		return failure(fmt.Errorf("%w: %s", ErrPatternNotFound, parts[0]))
	}
	b.Apply(edits...)
	b.SetCursor(buffer.Pos{Row: lastRow, Col: firstNonBlank(b, lastRow)})
	m.wantCol = b.Cursor().Col
	if lines == 1 && subs == 1 {
		return Result{}
	}
	return message(fmt.Sprintf("%d substitutions on %d lines", subs, lines))
}

func replaceLine(re *regexp.Regexp, text, tmpl string, global bool, n *int) string {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	if !global {
		locs = locs[:1]
	}
	var out []byte
	prevEnd := 0
	for _, loc := range locs {
		out = append(out, text[prevEnd:loc[0]]...)
		out = re.ExpandString(out, tmpl, text, loc)
		prevEnd = loc[1]
		*n++
	}
	out = append(out, text[prevEnd:]...)
	return string(out)
}

// translateReplacement converts Vim replacement syntax (& and \1) into the
// template syntax of regexp.Expand.
func translateReplacement(repl string) string {
	var sb strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '$':
			sb.WriteString("$$")
		case c == '&':
			sb.WriteString("${0}")
		case c == '\\' && i+1 < len(repl):
			i++
			d := repl[i]
			switch {
			case d >= '0' && d <= '9':
				sb.WriteString("${" + string(d) + "}")
			case d == 'n':
				sb.WriteByte('\n')
			case d == 't':
				sb.WriteByte('\t')
			case d == '$':
				sb.WriteString("$$")
			default:
				sb.WriteByte(d)
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// splitUnescaped splits s on sep, keeping "\sep" as a literal sep.
func splitUnescaped(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == sep {
			cur.WriteByte(sep)
			i++
			continue
		}
		if c == sep {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	return append(parts, cur.String())
}

func parseLineRange(b *buffer.Buffer, rng string) (int, int, error) {
	cur := b.Cursor().Row
	last := b.LineCount() - 1
	if rng == "" {
		return cur, cur, nil
	}
	if rng == "%" {
		return 0, last, nil
	}
	from, to, hasTo := strings.Cut(rng, ",")
	start, err := parseLineAddr(from, cur, last)
	if err != nil {
		return 0, 0, err
	}
	end := start
	if hasTo {
		if end, err = parseLineAddr(to, cur, last); err != nil {
			return 0, 0, err
		}
	}
	if start > end {
		start, end = end, start
	}
	return start, end, nil
}

func parseLineAddr(s string, cur, last int) (int, error) {
	switch s {
	case ".":
		return cur, nil
	case "$":
		return last, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid range: %q", s)
	}
	return min(max(n-1, 0), last), nil
}

func (m *Machine) search(b *buffer.Buffer, pattern string, forward bool) Result {
	if pattern == "" {
		if m.lastSearch == "" {
			return failure(ErrNoPreviousPattern)
		}
		pattern = m.lastSearch
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return failure(fmt.Errorf("invalid pattern: %w", err))
	}
	m.lastSearch = pattern
	m.lastForward = forward
	return m.searchAgain(b, forward)
}

func (m *Machine) searchAgain(b *buffer.Buffer, forward bool) Result {
	if m.lastSearch == "" {
		return failure(ErrNoPreviousPattern)
	}
	re, err := regexp.Compile(m.lastSearch)
	if err != nil {
		return failure(fmt.Errorf("invalid pattern: %w", err))
	}
	r, ok := b.Find(re, b.Cursor(), forward, true)
	if !ok {
		return failure(fmt.Errorf("%w: %s", ErrPatternNotFound, m.lastSearch))
	}
	b.SetCursor(clampNormal(b, r.Start))
	m.wantCol = b.Cursor().Col
	return Result{}
}
