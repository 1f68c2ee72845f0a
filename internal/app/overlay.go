package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlay draws fg over bg with fg's top-left corner at (x, y). Both are
// multi-line strings that may carry ANSI styling.
func overlay(bg, fg string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	x, y = max(x, 0), max(y, 0)

	for i, fl := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		line := bgLines[row]
		fw := ansi.StringWidth(fl)

		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ""
		if ansi.StringWidth(line) > x+fw {
			right = ansi.TruncateLeft(line, x+fw, "")
		}
		bgLines[row] = left + fl + right
	}
	return strings.Join(bgLines, "\n")
}

// center returns the offset that centers fg inside a width×height area.
func center(fg string, width, height int) (int, int) {
	w, h := lipgloss.Size(fg)
	return max((width-w)/2, 0), max((height-h)/2, 0)
}
