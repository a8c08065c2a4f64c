package input

import (
	"context"
	"time"
)

const (
	LongPressDelay = 300 * time.Millisecond
	RepeatDelay    = 150 * time.Millisecond
)

// Edge is a debounced change of a key's state.
type Edge struct {
	Key     Key
	Pressed bool
}

type keyState struct {
	pressed  bool
	long     bool
	sequence uint32
	deadline time.Time
}

// Translator turns key edges into Press, Short, Long, Repeat and
// Release events. It is not safe for concurrent use; Run drives
// it from a single goroutine.
type Translator struct {
	keys [MaxKey]keyState
}

// Edge records an edge at time now and returns the resulting events.
// Edges that don't change the key state are ignored.
func (t *Translator) Edge(e Edge, now time.Time) []Event {
	if e.Key < 0 || e.Key >= MaxKey {
		return nil
	}
	s := &t.keys[e.Key]
	if s.pressed == e.Pressed {
		return nil
	}
	s.pressed = e.Pressed
	if e.Pressed {
		s.sequence++
		s.long = false
		s.deadline = now.Add(LongPressDelay)
		return []Event{{Key: e.Key, Type: Press, Sequence: s.sequence}}
	}
	var evts []Event
	if !s.long {
		evts = append(evts, Event{Key: e.Key, Type: Short, Sequence: s.sequence})
	}
	s.deadline = time.Time{}
	return append(evts, Event{Key: e.Key, Type: Release, Sequence: s.sequence})
}

// Advance returns the Long and Repeat events due at time now, at most one
// per key. Missed repeats are not replayed.
func (t *Translator) Advance(now time.Time) []Event {
	var evts []Event
	for k := range t.keys {
		s := &t.keys[k]
		if !s.pressed || now.Before(s.deadline) {
			continue
		}
		typ := Repeat
		if !s.long {
			typ = Long
			s.long = true
		}
		evts = append(evts, Event{Key: Key(k), Type: typ, Sequence: s.sequence})
		s.deadline = now.Add(RepeatDelay)
	}
	return evts
}

// Deadline returns the earliest time Advance will produce events.
func (t *Translator) Deadline() (time.Time, bool) {
	var d time.Time
	found := false
	for _, s := range t.keys {
		if !s.pressed {
			continue
		}
		if !found || s.deadline.Before(d) {
			d = s.deadline
			found = true
		}
	}
	return d, found
}

// Run translates edges into events on out until ctx is done or edges is
// closed. Events are delivered with blocking sends.
func Run(ctx context.Context, edges <-chan Edge, out chan<- Event) {
	var t Translator
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	send := func(evts []Event) bool {
		for _, e := range evts {
			select {
			case out <- e:
			case <-ctx.Done():
				return false
			}
		}
		return true
	}
	for {
		timer.Stop()
		if d, ok := t.Deadline(); ok {
			timer.Reset(time.Until(d))
		}
		select {
		case e, ok := <-edges:
			if !ok {
				return
			}
			if !send(t.Edge(e, time.Now())) {
				return
			}
		case <-timer.C:
			if !send(t.Advance(time.Now())) {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
