package chat

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// wrap word-wraps styled text to width and returns the visual lines. Words
// longer than width are broken. Every returned line re-opens the SGR state
// left by the lines before it, so rows can be drawn independently.
func wrap(s string, width int) []string {
	if s == "" {
		return []string{""}
	}
	if width > 0 {
		s = ansi.Hardwrap(ansi.Wordwrap(s, width, ""), width, true)
	}
	return carryStyles(strings.Split(s, "\n"))
}

// carryStyles prefixes each line with the SGR sequences still active at the
// end of the previous one, and closes styled lines with a reset.
func carryStyles(lines []string) []string {
	var open []string
	for i, line := range lines {
		if i > 0 && len(open) > 0 {
			lines[i] = strings.Join(open, "") + line
		}
		open = activeSGR(line, open)
		if i < len(lines)-1 && len(open) > 0 {
			lines[i] += ansi.ResetStyle
		}
	}
	return lines
}

// activeSGR walks the SGR sequences in line. A reset empties open; any
// other sequence is appended to it.
func activeSGR(line string, open []string) []string {
	for {
		start := strings.Index(line, "\x1b[")
		if start < 0 {
			return open
		}
		end := strings.IndexAny(line[start+2:], "m\x1b")
		if end < 0 {
			return open
		}
		end += start + 2
		if line[end] != 'm' {
			line = line[end:]
			continue
		}
		switch params := line[start+2 : end]; params {
		case "", "0":
			open = open[:0]
		default:
			open = append(open, line[start:end+1])
		}
		line = line[end+1:]
	}
}
