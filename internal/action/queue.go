package action

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Recv once the queue is closed and drained.
var ErrClosed = errors.New("action queue closed")

// Queue is an unbounded FIFO of actions. Any number of goroutines may Send;
// exactly one should Recv.
type Queue struct {
	mu     sync.Mutex
	items  []Action
	closed bool
	notify chan struct{} // 1-slot wake-up signal for the consumer
}

// NewQueue returns an empty, open queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Send enqueues a without blocking. Actions sent after Close are dropped.
func (q *Queue) Send(a Action) {
	if a == nil {
		return
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, a)
	q.mu.Unlock()
	q.wake()
}

// Recv blocks until an action is available, the queue is closed and empty,
// or ctx is done.
func (q *Queue) Recv(ctx context.Context) (Action, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			a := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return a, nil
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return nil, ErrClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.notify:
		}
	}
}

// Len returns the number of queued actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops accepting actions. Already queued actions can still be received.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

func (q *Queue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
