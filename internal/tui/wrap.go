// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText word-wraps text to the given display width. Words longer
// than the width are broken mid-word.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out strings.Builder
	lineWidth := 0
	for i, word := range strings.Fields(text) {
		wordWidth := runewidth.StringWidth(word)
		if i > 0 {
			if lineWidth+1+wordWidth > width && lineWidth > 0 {
				out.WriteByte('\n')
				lineWidth = 0
			} else {
				out.WriteByte(' ')
				lineWidth++
			}
		}
		if wordWidth > width {
			lineWidth = writeBroken(&out, word, width, lineWidth)
			continue
		}
		out.WriteString(word)
		lineWidth += wordWidth
	}
	return out.String()
}

func writeBroken(out *strings.Builder, word string, width, lineWidth int) int {
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if lineWidth+rw > width && lineWidth > 0 {
			out.WriteByte('\n')
			lineWidth = 0
		}
		out.WriteRune(r)
		lineWidth += rw
	}
	return lineWidth
}
