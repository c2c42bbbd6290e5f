package frame

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Block draws a titled border around content.
type Block struct {
	Title       string
	Border      lipgloss.Border
	BorderStyle lipgloss.Style
	// TitleStyle is applied to Title. A title that carries its own styling
	// should use an empty style.
	TitleStyle lipgloss.Style
}

// NewBlock returns a block with a normal border drawn in c. A nil c keeps
// the terminal's default foreground.
func NewBlock(title string, c color.Color) Block {
	style := lipgloss.NewStyle()
	if c != nil {
		style = style.Foreground(c)
	}
	return Block{Title: title, Border: lipgloss.NormalBorder(), BorderStyle: style, TitleStyle: style}
}

// Render returns a width x height block with content inside the border.
// The title sits on the top border, left aligned. Content lines are cut or
// padded to the inner width; extra lines are dropped.
func (b Block) Render(content string, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	inner := width - 2
	bs := b.BorderStyle

	title := b.Title
	if ansi.StringWidth(title) > inner {
		title = ansi.Truncate(title, inner, "")
	}
	top := bs.Render(b.Border.TopLeft) + b.TitleStyle.Render(title) +
		bs.Render(strings.Repeat(b.Border.Top, inner-ansi.StringWidth(title))+b.Border.TopRight)

	rows := make([]string, 0, height)
	rows = append(rows, top)

	lines := strings.Split(content, "\n")
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, bs.Render(b.Border.Left)+Fit(line, inner)+bs.Render(b.Border.Right))
	}

	bottom := b.Border.BottomLeft + strings.Repeat(b.Border.Bottom, inner) + b.Border.BottomRight
	rows = append(rows, bs.Render(bottom))
	return strings.Join(rows, "\n")
}
