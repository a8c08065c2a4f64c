// package timer implements software timers whose callbacks run on a
// goroutine of their own.
package timer

import (
	"sync"
	"time"
)

type Kind int

const (
	// Once fires a single time per Start.
	Once Kind = iota
	// Periodic re-arms itself after every firing.
	Periodic
)

type Timer struct {
	callback func()
	kind     Kind

	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
	released bool
}

func New(callback func(), kind Kind) *Timer {
	if callback == nil {
		panic("timer: nil callback")
	}
	return &Timer{
		callback: callback,
		kind:     kind,
	}
}

// Start arms the timer with the given period. A running timer is
// stopped and re-armed.
func (t *Timer) Start(period time.Duration) {
	if period <= 0 {
		panic("timer: non-positive period")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		panic("timer: start after release")
	}
	t.stopLocked()
	stop := make(chan struct{})
	done := make(chan struct{})
	t.stop, t.done = stop, done
	go t.run(period, stop, done)
}

func (t *Timer) run(period time.Duration, stop, done chan struct{}) {
	defer close(done)
	tick := time.NewTicker(period)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
		case <-stop:
			return
		}
		// A stop racing with the tick wins.
		select {
		case <-stop:
			return
		default:
		}
		t.callback()
		if t.kind == Once {
			return
		}
	}
}

// Stop disarms the timer and waits for a running callback to return. It
// must not be called from the callback.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Timer) stopLocked() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	<-t.done
	t.stop, t.done = nil, nil
}

// IsRunning reports whether the timer is armed.
func (t *Timer) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Release stops the timer. No callback runs after Release returns.
func (t *Timer) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.released = true
}
