// Package state owns the application state. Widgets never see the live
// state: they receive State snapshots and talk back through actions.
package state

import (
	"slices"
	"time"
)

// Message is one line of the chat log.
type Message struct {
	ID     int64
	Author string
	Body   string
	Sent   time.Time
}

// State is an immutable snapshot of application-wide state.
type State struct {
	User         string
	Messages     []Message
	Status       string
	// StatusFailed marks Status as reporting a failure.
	StatusFailed bool
	Exiting      bool
}

// Clone returns a copy that shares no mutable memory with s.
func (s State) Clone() State {
	s.Messages = slices.Clone(s.Messages)
	return s
}
