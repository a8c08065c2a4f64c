// package event defines the events consumed by the application loop and
// the bounded queue that carries them.
package event

import (
	"fmt"

	"helloclock.dev/input"
)

// Event is either a Tick or an Input.
type Event interface {
	event()
}

// Tick is sent by the periodic timer.
type Tick struct{}

// Input carries a raw input event.
type Input struct {
	input.Event
}

func (Tick) event()  {}
func (Input) event() {}

func (Tick) String() string {
	return "Tick"
}

func (i Input) String() string {
	return fmt.Sprintf("Input{%v}", i.Event)
}
