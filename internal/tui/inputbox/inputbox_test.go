package inputbox

import (
	"regexp"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xonecas/chatterm/internal/action"
	"github.com/xonecas/chatterm/internal/state"
	"github.com/xonecas/chatterm/internal/tui/frame"
)

// stripANSI removes ANSI escape codes for golden file comparison
func stripANSI(s string) string {
	ansiRe := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRe.ReplaceAllString(s, "")
}

func press(ch rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: ch, Text: string(ch)}
}

func special(name string) tea.KeyPressMsg {
	switch name {
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	default:
		return tea.KeyPressMsg{}
	}
}

func newBox(t *testing.T) *InputBox {
	t.Helper()
	var sent []action.Action
	b := New(state.State{User: "me"}, action.SenderFunc(func(a action.Action) { sent = append(sent, a) }))
	t.Cleanup(func() {
		assert.Empty(t, sent, "input box must not dispatch actions")
	})
	return b
}

func TestNewIsEmpty(t *testing.T) {
	b := newBox(t)
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Cursor())
	assert.Equal(t, "Input Box", b.Name())
}

func TestTypingScenario(t *testing.T) {
	b := newBox(t)
	b.HandleKeyEvent(press('h'))
	b.HandleKeyEvent(press('i'))
	require.Equal(t, "hi", b.Text())
	require.Equal(t, 2, b.Cursor())

	b.HandleKeyEvent(special("left"))
	require.Equal(t, 1, b.Cursor())

	b.HandleKeyEvent(special("backspace"))
	assert.Equal(t, "i", b.Text())
	assert.Equal(t, 0, b.Cursor())

	b.HandleKeyEvent(special("right"))
	assert.Equal(t, 1, b.Cursor())
}

func TestOnlyPressesEdit(t *testing.T) {
	b := newBox(t)
	b.HandleKeyEvent(tea.KeyReleaseMsg{Code: 'x', Text: "x"})
	b.HandleKeyEvent(tea.KeyPressMsg{Code: 'x', Text: "x", IsRepeat: true})
	assert.True(t, b.IsEmpty())

	b.SetText("ab")
	b.HandleKeyEvent(tea.KeyReleaseMsg{Code: tea.KeyBackspace})
	assert.Equal(t, "ab", b.Text())
}

func TestUnboundKeysAreIgnored(t *testing.T) {
	b := newBox(t)
	b.SetText("ab")
	b.HandleKeyEvent(special("enter"))
	b.HandleKeyEvent(special("up"))
	b.HandleKeyEvent(tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl})
	assert.Equal(t, "ab", b.Text())
	assert.Equal(t, 2, b.Cursor())
}

func TestWideInput(t *testing.T) {
	b := newBox(t)
	b.HandleKeyEvent(press('a'))
	b.HandleKeyEvent(press('한'))
	b.HandleKeyEvent(press('b'))
	b.HandleKeyEvent(special("left"))
	assert.Equal(t, "a한b", b.Text())
	assert.Equal(t, 2, b.Cursor())

	b.HandleKeyEvent(special("backspace"))
	assert.Equal(t, "ab", b.Text())
	assert.Equal(t, 1, b.Cursor())
}

func TestMultiRuneTextInsertsEachRune(t *testing.T) {
	b := newBox(t)
	b.HandleKeyEvent(tea.KeyPressMsg{Code: 'e', Text: "e\u0301"})
	assert.Equal(t, "e\u0301", b.Text())
	assert.Equal(t, 2, b.Cursor())
}

func TestMouseIsIgnored(t *testing.T) {
	b := newBox(t)
	b.SetText("abc")
	b.HandleMouseEvent(tea.MouseClickMsg{X: 1, Y: 1, Button: tea.MouseLeft})
	assert.Equal(t, "abc", b.Text())
	assert.Equal(t, 3, b.Cursor())
}

func TestMoveWithStateKeepsLocalText(t *testing.T) {
	b := newBox(t)
	b.SetText("draft")
	b.HandleKeyEvent(special("left"))

	next := b.MoveWithState(state.State{User: "someone else", Status: "changed"})
	require.NotSame(t, b, next)
	assert.Equal(t, "draft", next.Text())
	assert.Equal(t, 4, next.Cursor())

	// The replacement is independent of the instance it came from.
	next.HandleKeyEvent(press('!'))
	assert.Equal(t, "draft", b.Text())
}

func TestRenderGolden(t *testing.T) {
	b := newBox(t)
	b.SetText("a한b")

	f := frame.New(12, 3)
	b.Render(f, RenderProps{
		Title:       "Input",
		Area:        f.Area(),
		BorderColor: lipgloss.Color("#00AA00"),
	})

	golden.RequireEqual(t, []byte(stripANSI(f.String())))
	_, _, ok := f.Cursor()
	assert.False(t, ok, "cursor stays hidden when not focused")
}

func TestRenderPlacesCursorPastWideRune(t *testing.T) {
	b := newBox(t)
	b.SetText("a한b")
	b.HandleKeyEvent(special("left"))

	f := frame.New(20, 5)
	area := frame.Rect{X: 2, Y: 1, Width: 12, Height: 3}
	b.Render(f, RenderProps{Title: "Input", Area: area, ShowCursor: true})

	x, y, ok := f.Cursor()
	require.True(t, ok)
	assert.Equal(t, 2+3+1, x, "1 cell for 'a', 2 for '한', 1 for the border")
	assert.Equal(t, 2, y)
}

func TestRenderDoesNotMutate(t *testing.T) {
	b := newBox(t)
	b.SetText("abc")
	b.HandleKeyEvent(special("left"))

	f := frame.New(10, 3)
	b.Render(f, RenderProps{Area: f.Area(), ShowCursor: true})
	assert.Equal(t, "abc", b.Text())
	assert.Equal(t, 2, b.Cursor())
}

func TestKeyMapHelp(t *testing.T) {
	k := DefaultKeyMap()
	assert.Len(t, k.ShortHelp(), 3)
	assert.Len(t, k.FullHelp(), 1)
}

func TestInsert(t *testing.T) {
	b := newBox(t)
	b.SetText("ad")
	b.HandleKeyEvent(special("left"))

	b.Insert("b\r\nc\x07")
	assert.Equal(t, "ab cd", b.Text())
	assert.Equal(t, 4, b.Cursor())
}
