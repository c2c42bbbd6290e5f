package frame

import (
	"regexp"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

func TestNewFrameIsBlank(t *testing.T) {
	f := New(4, 2)
	assert.Equal(t, "    \n    ", f.String())
	assert.Equal(t, Rect{Width: 4, Height: 2}, f.Area())
	_, _, ok := f.Cursor()
	assert.False(t, ok)
}

func TestRenderSplicesBlock(t *testing.T) {
	f := New(8, 3)
	f.Render("ab\ncd", Rect{X: 2, Y: 1, Width: 3, Height: 2})

	assert.Equal(t, strings.Join([]string{
		"        ",
		"  ab    ",
		"  cd    ",
	}, "\n"), stripANSI(f.String()))
}

func TestRenderClipsToFrame(t *testing.T) {
	f := New(5, 2)
	f.Render("abcdef\nghijkl\nmnopqr", Rect{X: 3, Y: 1, Width: 6, Height: 3})

	assert.Equal(t, "     \n   ab", stripANSI(f.String()))
}

func TestRenderNegativeOrigin(t *testing.T) {
	f := New(4, 1)
	f.Render("abcdef", Rect{X: -2, Y: 0, Width: 6, Height: 1})
	assert.Equal(t, "cdef", stripANSI(f.String()))
}

func TestRenderWideRunesKeepRowWidth(t *testing.T) {
	f := New(10, 1)
	f.Render("한글", Rect{X: 1, Y: 0, Width: 4, Height: 1})
	f.Render("x", Rect{X: 7, Y: 0, Width: 1, Height: 1})

	row := stripANSI(f.String())
	assert.Equal(t, " 한글  x  ", row)
	assert.Equal(t, 10, ansi.StringWidth(row))
}

func TestRenderBlanksMissingLines(t *testing.T) {
	f := New(3, 2)
	f.Render("xxx\nxxx", f.Area())
	f.Render("y", f.Area())
	assert.Equal(t, "y  \n   ", stripANSI(f.String()))
}

func TestRenderOutsideFrameIsIgnored(t *testing.T) {
	f := New(3, 1)
	f.Render("zzz", Rect{X: 5, Y: 5, Width: 3, Height: 1})
	assert.Equal(t, "   ", f.String())
}

func TestSetCursorReachesView(t *testing.T) {
	f := New(10, 3)
	f.SetCursor(4, 1)

	x, y, ok := f.Cursor()
	require.True(t, ok)
	assert.Equal(t, 4, x)
	assert.Equal(t, 1, y)

	v := f.View()
	require.NotNil(t, v.Cursor)
	assert.Equal(t, 4, v.Cursor.X)
	assert.Equal(t, 1, v.Cursor.Y)
}

func TestViewWithoutCursor(t *testing.T) {
	v := New(2, 1).View()
	assert.Nil(t, v.Cursor)
	assert.True(t, v.AltScreen)
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 1, Y: 2, Width: 10, Height: 3}
	assert.Equal(t, Rect{X: 2, Y: 3, Width: 8, Height: 1}, r.Inner())
	assert.True(t, Rect{Width: 1}.Empty())
	assert.Equal(t, Rect{X: 1, Y: 2, Width: 4, Height: 1},
		r.Intersect(Rect{X: 0, Y: 0, Width: 5, Height: 3}))
	assert.True(t, r.Intersect(Rect{X: 50, Y: 50, Width: 1, Height: 1}).Empty())
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab  ", Fit("ab", 4))
	assert.Equal(t, "abc", Fit("abcdef", 3))
	assert.Equal(t, "a한 ", Fit("a한", 4))
	assert.Equal(t, "", Fit("abc", 0))
}

func TestBlockRender(t *testing.T) {
	b := NewBlock("Input", lipgloss.Color("#ff0000"))
	out := stripANSI(b.Render("a한b", 12, 3))

	assert.Equal(t, strings.Join([]string{
		"┌Input─────┐",
		"│a한b      │",
		"└──────────┘",
	}, "\n"), out)
}

func TestBlockRenderLongTitle(t *testing.T) {
	out := stripANSI(NewBlock("a very long title", nil).Render("", 6, 2))
	assert.Equal(t, "┌a ve┐\n└────┘", out)
}

func TestBlockTooSmall(t *testing.T) {
	assert.Equal(t, "", NewBlock("x", nil).Render("abc", 1, 5))
	assert.Equal(t, "", NewBlock("x", nil).Render("abc", 5, 1))
}

func TestBlockStyledTitle(t *testing.T) {
	b := NewBlock("\x1b[31mok\x1b[m", nil)
	b.TitleStyle = lipgloss.NewStyle()
	out := b.Render("", 6, 2)

	assert.Contains(t, out, "\x1b[31mok")
	assert.Equal(t, "┌ok──┐\n└────┘", stripANSI(out))
}
