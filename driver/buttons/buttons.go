// package buttons reads active-low push buttons on GPIO lines.
package buttons

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"
	"helloclock.dev/input"
)

const debounceTimeout = 10 * time.Millisecond

// Open initializes the host drivers and watches pins.
func Open(pins map[input.Key]gpio.PinIn, ch chan<- input.Edge) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("buttons: %w", err)
	}
	return Watch(pins, ch)
}

// Watch configures the pins and sends a debounced edge to ch for every
// state change. The watching goroutines run for the life of the process.
func Watch(pins map[input.Key]gpio.PinIn, ch chan<- input.Edge) error {
	for key, pin := range pins {
		if pin == nil {
			return fmt.Errorf("buttons: no pin for key %v", key)
		}
		if err := pin.In(gpio.PullUp, gpio.BothEdges); err != nil {
			return fmt.Errorf("buttons: %v: %w", key, err)
		}
	}
	for key, pin := range pins {
		go watch(key, pin, ch)
	}
	return nil
}

func watch(key input.Key, pin gpio.PinIn, ch chan<- input.Edge) {
	pressed := false
	newPressed := false
	for {
		// Wait forever for event, except if we're waiting for
		// the debounce timeout.
		timeout := debounceTimeout
		if newPressed == pressed {
			timeout = -1
		}
		if pin.WaitForEdge(timeout) {
			newPressed = pin.Read() == gpio.Low
		} else if newPressed != pressed {
			pressed = newPressed
			ch <- input.Edge{Key: key, Pressed: pressed}
		}
	}
}
