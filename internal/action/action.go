// Package action defines the application-level events widgets emit and the
// queue that carries them to the state store.
package action

// Action is an event dispatched from the UI to the state store.
type Action interface {
	action()
}

// SendMessage posts Body to the chat log.
type SendMessage struct {
	Body string
}

// ClearHistory drops every message from the log and its persistent store.
type ClearHistory struct{}

// Exit asks the application to shut down.
type Exit struct{}

func (SendMessage) action()  {}
func (ClearHistory) action() {}
func (Exit) action()         {}

// Sender is the send-only end handed to widgets. Send never blocks.
type Sender interface {
	Send(a Action)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(Action)

// Send calls f(a).
func (f SenderFunc) Send(a Action) { f(a) }
