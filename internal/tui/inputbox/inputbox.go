// Package inputbox is a single-line text input widget.
package inputbox

import (
	"image/color"
	"unicode"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/xonecas/chatterm/internal/action"
	"github.com/xonecas/chatterm/internal/state"
	"github.com/xonecas/chatterm/internal/textedit"
	"github.com/xonecas/chatterm/internal/tui/component"
	"github.com/xonecas/chatterm/internal/tui/frame"
)

// KeyMap holds the editing bindings. Printable input needs no binding.
type KeyMap struct {
	DeleteLeft key.Binding
	Left       key.Binding
	Right      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		DeleteLeft: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.DeleteLeft}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// RenderProps are the presentation parameters for Render.
type RenderProps struct {
	Title       string
	Area        frame.Rect
	BorderColor color.Color
	ShowCursor  bool
}

// InputBox hosts a textedit.Buffer.
type InputBox struct {
	buf  textedit.Buffer
	keys KeyMap

	// TextStyle is applied to the value when rendered.
	TextStyle lipgloss.Style
}

var (
	_ component.Constructor[*InputBox] = New
	_ component.Renderer[RenderProps]  = (*InputBox)(nil)
)

// New returns an empty input box. The input box keeps nothing from s and
// never sends actions; both are accepted to satisfy component.Constructor.
func New(_ state.State, _ action.Sender) *InputBox {
	return &InputBox{
		keys:      DefaultKeyMap(),
		TextStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// MoveWithState returns a copy of b. The text is local to the widget, so
// nothing in s affects it.
func (b *InputBox) MoveWithState(_ state.State) *InputBox {
	next := *b
	return &next
}

// Name implements component.Component.
func (b *InputBox) Name() string { return "Input Box" }

// HandleKeyEvent edits the buffer on key presses. Releases, repeats and
// unbound keys are ignored.
func (b *InputBox) HandleKeyEvent(msg tea.KeyMsg) {
	press, ok := component.IsPress(msg)
	if !ok {
		return
	}
	switch {
	case key.Matches(press, b.keys.DeleteLeft):
		b.buf.DeleteChar()
	case key.Matches(press, b.keys.Left):
		b.buf.MoveCursorLeft()
	case key.Matches(press, b.keys.Right):
		b.buf.MoveCursorRight()
	case press.Text != "":
		for _, r := range press.Text {
			if !unicode.IsControl(r) {
				b.buf.EnterChar(r)
			}
		}
	}
}

// HandleMouseEvent does nothing; the input box has no pointer interaction.
func (b *InputBox) HandleMouseEvent(tea.MouseMsg) {}

// Keys returns the bindings, for help rendering.
func (b *InputBox) Keys() KeyMap { return b.keys }

// Text returns the current value.
func (b *InputBox) Text() string { return b.buf.Text() }

// SetText replaces the value and moves the cursor to the end.
func (b *InputBox) SetText(text string) { b.buf.SetText(text) }

// Insert types text at the cursor. Line breaks and tabs become spaces;
// other control characters are dropped.
func (b *InputBox) Insert(text string) {
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			b.buf.EnterChar(' ')
		case !unicode.IsControl(r):
			b.buf.EnterChar(r)
		}
	}
}

// Reset clears the value.
func (b *InputBox) Reset() { b.buf.Reset() }

// IsEmpty reports whether there is no input.
func (b *InputBox) IsEmpty() bool { return b.buf.IsEmpty() }

// Cursor returns the cursor's rune index.
func (b *InputBox) Cursor() int { return b.buf.Cursor() }

// Render draws the value in a bordered box and, when ShowCursor is set,
// places the terminal cursor on the input line inside the border.
func (b *InputBox) Render(f *frame.Frame, props RenderProps) {
	block := frame.NewBlock(props.Title, props.BorderColor)
	f.Render(block.Render(b.TextStyle.Render(b.buf.Text()), props.Area.Width, props.Area.Height), props.Area)

	if props.ShowCursor {
		f.SetCursor(props.Area.X+b.buf.VisualCursorColumn()+1, props.Area.Y+1)
	}
}
