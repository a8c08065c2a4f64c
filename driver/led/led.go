// package led drives a single-color indicator LED on a GPIO line.
package led

import (
	"fmt"
	"image/color"

	"periph.io/x/conn/v3/gpio"
)

type LED struct {
	pin gpio.PinOut
	on  bool
}

func Open(pin gpio.PinOut) (*LED, error) {
	if pin == nil {
		return nil, fmt.Errorf("led: no pin")
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("led: %w", err)
	}
	return &LED{pin: pin}, nil
}

// Set lights the LED for any color brighter than half intensity in some
// channel.
func (l *LED) Set(c color.RGBA) error {
	on := c.R >= 0x80 || c.G >= 0x80 || c.B >= 0x80
	if on == l.on {
		return nil
	}
	if err := l.pin.Out(gpio.Level(on)); err != nil {
		return fmt.Errorf("led: %w", err)
	}
	l.on = on
	return nil
}

func (l *LED) Close() error {
	return l.Set(color.RGBA{})
}
