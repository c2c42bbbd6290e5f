package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/chatterm/internal/action"
	"github.com/xonecas/chatterm/internal/store"
)

// Store applies actions to the state and persists the chat log. It is not
// safe for concurrent use; Run is meant to be its only caller.
type Store struct {
	state   State
	history *store.History
	limit   int
	now     func() time.Time
}

// NewStore loads the newest limit messages from history and returns a store
// for user. history may be nil to disable persistence.
func NewStore(user string, history *store.History, limit int) (*Store, error) {
	entries, err := history.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	msgs := make([]Message, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, Message{ID: e.ID, Author: e.Author, Body: e.Body, Sent: e.Created})
	}
	return &Store{
		state:   State{User: user, Messages: msgs},
		history: history,
		limit:   limit,
		now:     time.Now,
	}, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	return s.state.Clone()
}

// Apply reduces a single action into the state.
func (s *Store) Apply(a action.Action) {
	switch a := a.(type) {
	case action.SendMessage:
		s.send(a.Body)
	case action.ClearHistory:
		if err := s.history.Clear(); err != nil {
			// The rows are still on disk, so keep showing them.
			log.Warn().Err(err).Msg("failed to clear history")
			s.setStatus("history not cleared", true)
			return
		}
		s.state.Messages = nil
		s.setStatus("history cleared", false)
	case action.Exit:
		s.state.Exiting = true
	default:
		log.Warn().Str("action", fmt.Sprintf("%T", a)).Msg("ignoring unknown action")
	}
}

func (s *Store) send(body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	msg := Message{Author: s.state.User, Body: body, Sent: s.now()}
	id, err := s.history.Append(msg.Author, msg.Body, msg.Sent)
	if err != nil {
		// Keep the message for this session even if it could not be saved.
		log.Warn().Err(err).Msg("failed to persist message")
		s.setStatus("message not saved", true)
	} else {
		s.setStatus("", false)
	}
	msg.ID = id
	s.state.Messages = append(s.state.Messages, msg)
	if s.limit > 0 && len(s.state.Messages) > s.limit {
		s.state.Messages = s.state.Messages[len(s.state.Messages)-s.limit:]
	}
}

func (s *Store) setStatus(text string, failed bool) {
	s.state.Status = text
	s.state.StatusFailed = failed
}

// Run consumes actions from q until ctx is done or q is closed, publishing a
// snapshot on out after each one. out should have a buffer of 1: a snapshot
// the UI has not picked up yet is replaced by the newer one.
func (s *Store) Run(ctx context.Context, q *action.Queue, out chan State) error {
	for {
		a, err := q.Recv(ctx)
		if errors.Is(err, action.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		log.Debug().Str("action", fmt.Sprintf("%T", a)).Msg("applying action")
		s.Apply(a)
		publish(out, s.Snapshot())
	}
}

// publish delivers snap without blocking, dropping a stale snapshot if the
// consumer has fallen behind. Assumes a single producer.
func publish(out chan State, snap State) {
	select {
	case out <- snap:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	select {
	case out <- snap:
	default:
	}
}
