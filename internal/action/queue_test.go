package action

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Send(SendMessage{Body: "one"})
	q.Send(ClearHistory{})
	q.Send(Exit{})

	ctx := context.Background()
	for _, want := range []Action{SendMessage{Body: "one"}, ClearHistory{}, Exit{}} {
		got, err := q.Recv(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueueSendNeverBlocks(t *testing.T) {
	q := NewQueue()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			q.Send(SendMessage{Body: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Send blocked without a consumer")
	}
	assert.Equal(t, 10000, q.Len())
}

func TestQueueManyProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Send(ClearHistory{})
			}
		}()
	}
	wg.Wait()

	ctx := context.Background()
	for i := 0; i < 800; i++ {
		_, err := q.Recv(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueueRecvWaitsForSend(t *testing.T) {
	q := NewQueue()
	got := make(chan Action, 1)
	go func() {
		a, err := q.Recv(context.Background())
		if err == nil {
			got <- a
		}
	}()

	time.Sleep(10 * time.Millisecond)
	q.Send(Exit{})

	select {
	case a := <-got:
		assert.Equal(t, Exit{}, a)
	case <-time.After(5 * time.Second):
		t.Fatal("Recv did not wake up")
	}
}

func TestQueueCloseDrainsThenErrors(t *testing.T) {
	q := NewQueue()
	q.Send(Exit{})
	q.Close()
	q.Send(ClearHistory{}) // dropped

	ctx := context.Background()
	a, err := q.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, Exit{}, a)

	_, err = q.Recv(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestQueueCloseWakesBlockedRecv(t *testing.T) {
	q := NewQueue()
	errc := make(chan error, 1)
	go func() {
		_, err := q.Recv(context.Background())
		errc <- err
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not wake Recv")
	}
}

func TestQueueRecvHonorsContext(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Recv(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSenderFunc(t *testing.T) {
	var got []Action
	var s Sender = SenderFunc(func(a Action) { got = append(got, a) })
	s.Send(Exit{})
	assert.Equal(t, []Action{Exit{}}, got)
}

func TestSendNilIsIgnored(t *testing.T) {
	q := NewQueue()
	q.Send(nil)
	assert.Equal(t, 0, q.Len())
}
