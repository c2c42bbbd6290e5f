// Package frame is the drawing surface widgets render onto. A Frame is a
// fixed grid of terminal rows; widgets render themselves to strings and the
// frame splices those blocks into place, clipping to its own bounds.
package frame

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

const resetStyle = "\x1b[m"

// Rect is a rectangular region in cells, origin at the top-left.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Inner returns r shrunk by one cell on every side (the area inside a border).
func (r Rect) Inner() Rect {
	return Rect{X: r.X + 1, Y: r.Y + 1, Width: max(r.Width-2, 0), Height: max(r.Height-2, 0)}
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Frame accumulates one screen's worth of output.
type Frame struct {
	width, height int
	rows          []string

	cursorX, cursorY int
	showCursor       bool
}

// New returns a blank frame of the given size.
func New(width, height int) *Frame {
	width, height = max(width, 0), max(height, 0)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(" ", width)
	}
	return &Frame{width: width, height: height, rows: rows}
}

// Area returns the full frame rectangle.
func (f *Frame) Area() Rect { return Rect{Width: f.width, Height: f.height} }

// Render places content, a newline separated block, at area. Lines are cut
// or padded to area.Width, missing lines are blanked, and everything outside
// the frame is dropped.
func (f *Frame) Render(content string, area Rect) {
	clipped := area.Intersect(f.Area())
	if clipped.Empty() {
		return
	}
	lines := strings.Split(content, "\n")
	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		line := ""
		if i := y - area.Y; i < len(lines) {
			line = lines[i]
		}
		// Drop the columns of line that fall left of the frame.
		if skip := clipped.X - area.X; skip > 0 {
			line = ansi.TruncateLeft(line, skip, "")
		}
		f.rows[y] = splice(f.rows[y], clipped.X, clipped.Width, Fit(line, clipped.Width), f.width)
	}
}

// SetCursor asks for the terminal cursor to be shown at (x, y).
func (f *Frame) SetCursor(x, y int) {
	f.cursorX, f.cursorY = x, y
	f.showCursor = true
}

// Cursor returns the requested cursor position; ok is false when no widget
// asked for one, in which case the cursor stays hidden.
func (f *Frame) Cursor() (x, y int, ok bool) {
	return f.cursorX, f.cursorY, f.showCursor
}

// String returns the frame contents, one line per row.
func (f *Frame) String() string {
	return strings.Join(f.rows, "\n")
}

// View converts the frame into a Bubble Tea view.
func (f *Frame) View() tea.View {
	v := tea.NewView(f.String())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	if f.showCursor {
		v.Cursor = tea.NewCursor(f.cursorX, f.cursorY)
	}
	return v
}

// Fit cuts s to width cells and pads it with spaces to exactly width.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "")
	}
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// splice replaces the cells [x, x+w) of row with seg and keeps the row
// exactly total cells wide. A wide rune cut by either edge becomes spaces.
func splice(row string, x, w int, seg string, total int) string {
	var b strings.Builder
	if x > 0 {
		left := ansi.Truncate(row, x, "")
		b.WriteString(left)
		b.WriteString(resetStyle)
		if pad := x - ansi.StringWidth(left); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	b.WriteString(seg)
	if x+w < total {
		b.WriteString(resetStyle)
		right := ansi.TruncateLeft(row, x+w, "")
		if pad := total - (x + w) - ansi.StringWidth(right); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(right)
	}
	return b.String()
}
