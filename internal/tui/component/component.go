// Package component defines the lifecycle every stateful widget follows.
//
// A widget is built from a State snapshot and an action.Sender, receives
// input events one at a time, and is rebuilt against newer snapshots with
// MoveWithState. Rebuilding hands back a replacement value; the caller must
// drop the old one so no two live widgets share state:
//
//	w = w.MoveWithState(snap)
//
// Drawing is a separate capability, Renderer, parameterized by the widget's
// presentation properties.
package component

import (
	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/chatterm/internal/action"
	"github.com/xonecas/chatterm/internal/state"
	"github.com/xonecas/chatterm/internal/tui/frame"
)

// Component is implemented by every stateful widget. C is the implementing
// type itself, so MoveWithState can return it without a type assertion.
type Component[C any] interface {
	// MoveWithState returns the widget reconciled against s. The receiver
	// must not be used afterwards.
	MoveWithState(s state.State) C
	// Name is a stable, human readable label.
	Name() string
	HandleKeyEvent(msg tea.KeyMsg)
	HandleMouseEvent(msg tea.MouseMsg)
}

// Constructor builds a widget from a snapshot and the outbound action sender.
// Implementations must not keep references into s.
type Constructor[C Component[C]] func(s state.State, tx action.Sender) C

// Renderer draws a widget onto f. Rendering never mutates the widget.
type Renderer[P any] interface {
	Render(f *frame.Frame, props P)
}

// Rebuild reconciles c against s. It exists so owners can reconcile any
// component generically.
func Rebuild[C Component[C]](c C, s state.State) C {
	return c.MoveWithState(s)
}

// IsPress reports whether msg is a fresh key press. Releases and auto-repeat
// presses are not.
func IsPress(msg tea.KeyMsg) (tea.KeyPressMsg, bool) {
	press, ok := msg.(tea.KeyPressMsg)
	if !ok || press.IsRepeat {
		return tea.KeyPressMsg{}, false
	}
	return press, true
}
