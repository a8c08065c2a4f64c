package event

import (
	"context"
	"errors"
	"sync"
	"time"
)

// WaitForever makes Put and Get block until they can complete.
const WaitForever time.Duration = -1

var (
	ErrTimeout  = errors.New("event: timeout")
	ErrReleased = errors.New("event: queue released")
)

// Queue is a bounded FIFO of events, safe for any number of
// concurrent producers and a single consumer.
type Queue struct {
	ch       chan Event
	released chan struct{}
	once     sync.Once
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		panic("event: non-positive queue capacity")
	}
	return &Queue{
		ch:       make(chan Event, capacity),
		released: make(chan struct{}),
	}
}

// Put enqueues e. A zero wait fails immediately with ErrTimeout if the
// queue is full, a positive wait fails once it elapses, and WaitForever
// blocks until space is available.
func (q *Queue) Put(ctx context.Context, e Event, wait time.Duration) error {
	select {
	case <-q.released:
		return ErrReleased
	default:
	}
	select {
	case q.ch <- e:
		return nil
	default:
	}
	if wait == 0 {
		return ErrTimeout
	}
	var timeout <-chan time.Time
	if wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case q.ch <- e:
		return nil
	case <-timeout:
		return ErrTimeout
	case <-q.released:
		return ErrReleased
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get dequeues the oldest event, waiting according to wait in the same
// way as Put.
func (q *Queue) Get(ctx context.Context, wait time.Duration) (Event, error) {
	select {
	case <-q.released:
		return nil, ErrReleased
	default:
	}
	select {
	case e := <-q.ch:
		return e, nil
	default:
	}
	if wait == 0 {
		return nil, ErrTimeout
	}
	var timeout <-chan time.Time
	if wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case e := <-q.ch:
		return e, nil
	case <-timeout:
		return nil, ErrTimeout
	case <-q.released:
		return nil, ErrReleased
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *Queue) Len() int {
	return len(q.ch)
}

func (q *Queue) Cap() int {
	return cap(q.ch)
}

// Release frees the queue. Blocked and later calls to Put and Get fail
// with ErrReleased; queued events are discarded.
func (q *Queue) Release() {
	q.once.Do(func() {
		close(q.released)
	})
}
