// Package tui is the Bubble Tea program: it feeds terminal input to the chat
// page, rebuilds the page from state snapshots and draws it into a frame.
package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/chatterm/internal/action"
	"github.com/xonecas/chatterm/internal/state"
	"github.com/xonecas/chatterm/internal/tui/chat"
	"github.com/xonecas/chatterm/internal/tui/component"
	"github.com/xonecas/chatterm/internal/tui/frame"
)

// Options configure New.
type Options struct {
	// State is the snapshot the page is first built from.
	State state.State
	// Sender receives every action the UI produces.
	Sender action.Sender
	// Snapshots delivers new state. A closed channel ends the program.
	Snapshots <-chan state.State
	// Theme is the Chroma theme for message text and UI colors.
	Theme string
	// Title labels the input box.
	Title string
}

// Model is the application model.
type Model struct {
	width  int
	height int

	page      *chat.Page
	tx        action.Sender
	snapshots <-chan state.State

	title string
	quit  key.Binding
}

// New creates the application model.
func New(opts Options) Model {
	page := chat.New(opts.State, opts.Sender)
	if opts.Theme != "" {
		page.SetTheme(opts.Theme)
	}
	return Model{
		page:      page,
		tx:        opts.Sender,
		snapshots: opts.Snapshots,
		title:     opts.Title,
		quit:      key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// Page returns the current chat page.
func (m Model) Page() *chat.Page { return m.page }

func (m Model) Init() tea.Cmd {
	return m.waitForSnapshot()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.page.SetSize(m.width, m.height)
		return m, nil

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		if key.Matches(msg, m.quit) {
			m.tx.Send(action.Exit{})
			return m, tea.Quit
		}
		m.page.HandleKeyEvent(msg)
		return m, nil
	case tea.KeyMsg:
		m.page.HandleKeyEvent(msg)
		return m, nil

	// -- Paste ---------------------------------------------------------------
	case tea.PasteMsg:
		m.page.HandlePaste(msg.Content)
		return m, nil

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		m.page.HandleMouseEvent(msg)
		return m, nil

	// -- State ---------------------------------------------------------------
	case snapshotMsg:
		m.page = component.Rebuild(m.page, state.State(msg))
		if msg.Exiting {
			return m, tea.Quit
		}
		return m, m.waitForSnapshot()
	case snapshotsClosedMsg:
		log.Debug().Msg("snapshot channel closed")
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() tea.View {
	return m.render().View()
}

// render draws the page into a frame sized to the window.
func (m Model) render() *frame.Frame {
	f := frame.New(m.width, m.height)
	m.page.Render(f, chat.RenderProps{
		Area:  f.Area(),
		Title: m.title,
	})
	return f
}
