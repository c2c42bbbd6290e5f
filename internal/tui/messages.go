package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/chatterm/internal/state"
)

// snapshotMsg carries the newest state published by the store.
type snapshotMsg state.State

// snapshotsClosedMsg reports that the store stopped publishing.
type snapshotsClosedMsg struct{}

// waitForSnapshot blocks until a snapshot arrives, then drains whatever else
// is pending so only the newest one is applied.
func (m Model) waitForSnapshot() tea.Cmd {
	ch := m.snapshots
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return snapshotsClosedMsg{}
		}
		for {
			select {
			case next, ok := <-ch:
				if !ok {
					return snapshotMsg(s)
				}
				s = next
			default:
				return snapshotMsg(s)
			}
		}
	}
}
