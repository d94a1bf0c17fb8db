package util

import "strings"

// DefaultIndent is the indentation unit used for class bodies.
const DefaultIndent = 4

// Indent prefixes every line of text with width spaces and trims trailing
// spaces from each resulting line, so blank lines stay empty.
// A width below zero is treated as zero.
func Indent(text string, width int) string {
	if width < 0 {
		width = 0
	}
	prefix := strings.Repeat(" ", width)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(prefix+line, " ")
	}
	return strings.Join(lines, "\n")
}
