// package board describes how a device is wired: which GPIO lines carry
// the keys, the indicator LED and the LCD control signals.
package board

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"helloclock.dev/input"
)

type Board struct {
	Name string            `yaml:"name"`
	Keys map[string]string `yaml:"keys"`
	LED  string            `yaml:"led"`
	LCD  LCD               `yaml:"lcd"`
}

type LCD struct {
	// SPI is the periph SPI port name; empty selects the first port.
	SPI       string `yaml:"spi"`
	SpeedHz   int64  `yaml:"speed_hz"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	CS        string `yaml:"cs"`
	Reset     string `yaml:"reset"`
	DC        string `yaml:"dc"`
	Backlight string `yaml:"backlight"`
}

var ErrMissingPin = errors.New("board: missing pin")

//go:embed waveshare-hat.yaml
var waveshareHAT []byte

// Default returns the Waveshare HAT profile.
func Default() *Board {
	b, err := Parse(waveshareHAT)
	if err != nil {
		panic(err)
	}
	return b
}

// Load reads a profile from a file.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse decodes and validates a YAML profile. Unknown fields are errors.
func Parse(data []byte) (*Board, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	b := new(Board)
	if err := dec.Decode(b); err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) Validate() error {
	if _, ok := b.Keys[input.Back.String()]; !ok {
		return fmt.Errorf("%w: key %s", ErrMissingPin, input.Back)
	}
	used := make(map[string]string)
	claim := func(pin, what string) error {
		if pin == "" {
			return fmt.Errorf("%w: %s", ErrMissingPin, what)
		}
		if other, ok := used[pin]; ok {
			return fmt.Errorf("board: %s used by both %s and %s", pin, other, what)
		}
		used[pin] = what
		return nil
	}
	for name, pin := range b.Keys {
		if _, err := input.ParseKey(name); err != nil {
			return fmt.Errorf("board: %w", err)
		}
		if err := claim(pin, "key "+name); err != nil {
			return err
		}
	}
	pins := []struct{ pin, what string }{
		{b.LED, "led"},
		{b.LCD.CS, "lcd cs"},
		{b.LCD.Reset, "lcd reset"},
		{b.LCD.DC, "lcd dc"},
		{b.LCD.Backlight, "lcd backlight"},
	}
	for _, p := range pins {
		if err := claim(p.pin, p.what); err != nil {
			return err
		}
	}
	if b.LCD.Width <= 0 || b.LCD.Height <= 0 {
		return fmt.Errorf("board: invalid lcd size %dx%d", b.LCD.Width, b.LCD.Height)
	}
	if b.LCD.SpeedHz <= 0 {
		return fmt.Errorf("board: invalid lcd speed %d", b.LCD.SpeedHz)
	}
	return nil
}

// KeyPins maps keys to pin names.
func (b *Board) KeyPins() map[input.Key]string {
	pins := make(map[input.Key]string)
	for name, pin := range b.Keys {
		k, err := input.ParseKey(name)
		if err != nil {
			continue
		}
		pins[k] = pin
	}
	return pins
}
