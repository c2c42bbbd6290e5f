package tui

import (
	"regexp"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/assert"
	"github.com/xonecas/chatterm/internal/state"
)

// stripANSI removes ANSI escape codes for golden file comparison
func stripANSI(s string) string {
	ansiRe := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRe.ReplaceAllString(s, "")
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"80x24", 80, 24},
		{"120x40", 120, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, state.State{User: "test"}, nil)
			updated, _ := m.Update(tea.WindowSizeMsg{Width: tt.width, Height: tt.height})
			m = updated.(Model)

			rows := strings.Split(stripANSI(m.render().String()), "\n")
			if len(rows) != tt.height {
				t.Fatalf("expected %d rows, got %d", tt.height, len(rows))
			}

			// The help line depends on the help widget's styling; check it
			// separately.
			golden.RequireEqual(t, []byte(strings.Join(rows[:tt.height-1], "\n")))
			assert.Contains(t, rows[tt.height-1], "enter send")
		})
	}
}
