// Package chat is the main page: a scrollable message log above an input
// box, with a one-line key help at the bottom.
package chat

import (
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/xonecas/chatterm/internal/action"
	"github.com/xonecas/chatterm/internal/constants"
	"github.com/xonecas/chatterm/internal/highlight"
	"github.com/xonecas/chatterm/internal/state"
	"github.com/xonecas/chatterm/internal/tui/component"
	"github.com/xonecas/chatterm/internal/tui/frame"
	"github.com/xonecas/chatterm/internal/tui/inputbox"
)

const (
	inputRows  = 3
	helpRows   = 1
	wheelLines = 5
)

// Focus names the widget receiving unbound keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusLog
)

// KeyMap holds the page-level bindings.
type KeyMap struct {
	Submit      key.Binding
	SwitchFocus key.Binding
	Exit        key.Binding
	Clear       key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	LineUp      key.Binding
	LineDown    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		SwitchFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Exit:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
		Clear:       key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		LineUp:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "scroll up")),
		LineDown:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "scroll down")),
	}
}

// RenderProps are the presentation parameters for Render.
type RenderProps struct {
	Area frame.Rect
	// Title labels the input box.
	Title string
}

// Page is the chat screen.
type Page struct {
	tx           action.Sender
	input        *inputbox.InputBox
	user         string
	messages     []state.Message
	status       string
	statusFailed bool

	focus Focus
	keys  KeyMap
	help  help.Model

	theme   string
	palette highlight.Palette
	// bodies maps a raw message body to its highlighted form in theme.
	bodies map[string]string

	// width and height are the size given to SetSize; lines is the log
	// wrapped for that width.
	width  int
	height int
	lines  []string

	// scroll counts wrapped lines hidden below the bottom of the log;
	// zero follows the newest message.
	scroll int
}

var (
	_ component.Constructor[*Page]     = New
	_ component.Renderer[RenderProps] = (*Page)(nil)
)

// New builds the page from a snapshot. Actions are delivered to tx. The page
// uses the default theme until SetTheme is called.
func New(s state.State, tx action.Sender) *Page {
	p := &Page{
		tx:    tx,
		input: inputbox.New(s, tx),
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	p.adopt(s)
	p.SetTheme(constants.SyntaxTheme)
	return p
}

// MoveWithState returns the page rebuilt around s. Focus, size, theme,
// scroll position and the input box contents carry over.
func (p *Page) MoveWithState(s state.State) *Page {
	next := *p
	next.input = component.Rebuild(p.input, s)
	next.adopt(s)
	next.relayout()
	return &next
}

func (p *Page) adopt(s state.State) {
	p.user = s.User
	p.messages = s.Clone().Messages
	p.status = s.Status
	p.statusFailed = s.StatusFailed
}

// Name implements component.Component.
func (p *Page) Name() string { return "Chat" }

// SetTheme selects the Chroma theme for message bodies and UI colors.
func (p *Page) SetTheme(theme string) {
	p.theme = theme
	p.palette = highlight.ThemePalette(theme)
	p.bodies = nil
	p.relayout()
}

// SetSize records the size of the area the page will be rendered into.
func (p *Page) SetSize(width, height int) {
	p.width, p.height = max(width, 0), max(height, 0)
	p.relayout()
}

// Focus returns the focused widget.
func (p *Page) Focus() Focus { return p.focus }

// Input exposes the input box.
func (p *Page) Input() *inputbox.InputBox { return p.input }

// Scroll returns how many wrapped lines are hidden below the log.
func (p *Page) Scroll() int { return p.scroll }

// HandleKeyEvent applies page bindings first and forwards the rest to the
// input box while it has focus.
func (p *Page) HandleKeyEvent(msg tea.KeyMsg) {
	press, ok := component.IsPress(msg)
	if !ok {
		return
	}
	switch {
	case key.Matches(press, p.keys.Exit):
		p.tx.Send(action.Exit{})
	case key.Matches(press, p.keys.Clear):
		p.tx.Send(action.ClearHistory{})
	case key.Matches(press, p.keys.SwitchFocus):
		p.toggleFocus()
	case key.Matches(press, p.keys.PageUp):
		p.scrollBy(p.page())
	case key.Matches(press, p.keys.PageDown):
		p.scrollBy(-p.page())
	case p.focus == FocusLog && key.Matches(press, p.keys.LineUp):
		p.scrollBy(1)
	case p.focus == FocusLog && key.Matches(press, p.keys.LineDown):
		p.scrollBy(-1)
	case p.focus == FocusInput && key.Matches(press, p.keys.Submit):
		p.submit()
	case p.focus == FocusInput:
		p.input.HandleKeyEvent(msg)
	}
}

// HandleMouseEvent scrolls the log on wheel events.
func (p *Page) HandleMouseEvent(msg tea.MouseMsg) {
	wheel, ok := msg.(tea.MouseWheelMsg)
	if !ok {
		return
	}
	switch wheel.Button {
	case tea.MouseWheelUp:
		p.scrollBy(wheelLines)
	case tea.MouseWheelDown:
		p.scrollBy(-wheelLines)
	}
}

// HandlePaste inserts pasted text into the input box while it has focus.
func (p *Page) HandlePaste(text string) {
	if p.focus == FocusInput {
		p.input.Insert(text)
	}
}

func (p *Page) toggleFocus() {
	if p.focus == FocusInput {
		p.focus = FocusLog
	} else {
		p.focus = FocusInput
	}
}

func (p *Page) submit() {
	body := strings.TrimSpace(p.input.Text())
	if body == "" {
		return
	}
	p.tx.Send(action.SendMessage{Body: body})
	p.input.Reset()
	p.scroll = 0
}

// logInner returns the text area of the log at the recorded size.
func (p *Page) logInner() frame.Rect {
	logArea, _, _ := layout(frame.Rect{Width: p.width, Height: p.height})
	if logArea.Height < 2 {
		return frame.Rect{}
	}
	return logArea.Inner()
}

func (p *Page) page() int {
	return max(p.logInner().Height-1, 1)
}

func (p *Page) maxScroll() int {
	return scrollLimit(len(p.lines), p.logInner().Height)
}

func (p *Page) scrollBy(n int) {
	p.scroll = min(max(p.scroll+n, 0), p.maxScroll())
}

// relayout rebuilds the highlighted bodies and wrapped lines, then clamps
// the scroll position to the new content.
func (p *Page) relayout() {
	bodies := make(map[string]string, len(p.messages))
	for _, m := range p.messages {
		if _, ok := bodies[m.Body]; ok {
			continue
		}
		if h, ok := p.bodies[m.Body]; ok {
			bodies[m.Body] = h
		} else {
			bodies[m.Body] = highlight.Highlight(m.Body, constants.MessageLanguage, p.theme)
		}
	}
	p.bodies = bodies

	p.lines = nil
	if inner := p.logInner(); !inner.Empty() {
		p.lines = p.logLines(inner.Width)
	}
	p.scroll = min(p.scroll, p.maxScroll())
}

// scrollLimit is the largest scroll offset for lines shown in rows.
func scrollLimit(lines, rows int) int {
	if rows <= 0 {
		return 0
	}
	return max(lines-rows, 0)
}

// layout splits area into the log, the input box and the help line.
func layout(area frame.Rect) (logArea, inputArea, helpArea frame.Rect) {
	helpArea = frame.Rect{X: area.X, Y: area.Y + area.Height - helpRows, Width: area.Width, Height: helpRows}
	inputArea = frame.Rect{X: area.X, Y: helpArea.Y - inputRows, Width: area.Width, Height: inputRows}
	logArea = frame.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: inputArea.Y - area.Y}
	return logArea, inputArea, helpArea
}

// Render lays out the log, the input box and the help line inside
// props.Area.
func (p *Page) Render(f *frame.Frame, props RenderProps) {
	area := props.Area
	if area.Empty() {
		return
	}
	logArea, inputArea, helpArea := layout(area)

	p.renderLog(f, logArea)

	if inputArea.Y >= area.Y {
		border := p.palette.Border
		if p.focus == FocusInput {
			border = p.palette.Accent
		}
		p.input.Render(f, inputbox.RenderProps{
			Title:       props.Title,
			Area:        inputArea,
			BorderColor: lipgloss.Color(border),
			ShowCursor:  p.focus == FocusInput,
		})
	}

	f.Render(p.help.ShortHelpView(p.helpBindings()), helpArea)
}

func (p *Page) renderLog(f *frame.Frame, area frame.Rect) {
	if area.Height < 2 {
		return
	}
	inner := area.Inner()
	lines := p.lines
	if inner.Width != p.logInner().Width {
		lines = p.logLines(inner.Width)
	}

	scroll := min(p.scroll, scrollLimit(len(lines), inner.Height))
	end := len(lines) - scroll
	start := max(end-inner.Height, 0)

	border := p.palette.Border
	if p.focus == FocusLog {
		border = p.palette.Accent
	}
	block := frame.NewBlock(p.title(border), lipgloss.Color(border))
	block.TitleStyle = lipgloss.NewStyle()
	f.Render(block.Render(strings.Join(lines[start:end], "\n"), area.Width, area.Height), area)
}

// title is the log's border label with the status appended, in the error
// color when the status reports a failure.
func (p *Page) title(border string) string {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(border)).Render("Messages")
	if p.status == "" {
		return title
	}
	status := lipgloss.NewStyle().Foreground(lipgloss.Color(p.statusColor()))
	return title + " · " + status.Render(p.status)
}

func (p *Page) statusColor() string {
	if p.statusFailed {
		return p.palette.Error
	}
	return p.palette.Fg
}

// logLines renders every message wrapped to width. Each message is a header
// with the author and send time followed by its highlighted body.
func (p *Page) logLines(width int) []string {
	pal := p.palette
	authorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Muted)).Bold(true)
	selfStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Accent)).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Dim))

	var lines []string
	for _, m := range p.messages {
		style := authorStyle
		if m.Author == p.user {
			style = selfStyle
		}
		header := style.Render(m.Author)
		if !m.Sent.IsZero() {
			header += " " + timeStyle.Render(m.Sent.Local().Format("15:04"))
		}
		body, ok := p.bodies[m.Body]
		if !ok {
			body = m.Body
		}
		lines = append(lines, wrap(header, width)...)
		lines = append(lines, wrap(body, width)...)
	}
	return lines
}

func (p *Page) helpBindings() []key.Binding {
	b := []key.Binding{p.keys.Submit, p.keys.SwitchFocus, p.keys.PageUp, p.keys.Clear, p.keys.Exit}
	if p.focus == FocusInput {
		return append(b, p.input.Keys().ShortHelp()...)
	}
	return append(b, p.keys.LineUp, p.keys.LineDown)
}
