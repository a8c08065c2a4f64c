//go:build linux && arm

package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
	"helloclock.dev/board"
	"helloclock.dev/driver/buttons"
	"helloclock.dev/driver/led"
	"helloclock.dev/driver/st7789"
	"helloclock.dev/input"
)

// Logs go to stderr unless redirected.
var defaultLogFile = ""

func Init(opts options) (*Platform, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("platform: %w", err)
	}
	b := board.Default()
	if opts.Board != "" {
		var err error
		b, err = board.Load(opts.Board)
		if err != nil {
			return nil, err
		}
	}
	var pinErr error
	pin := func(name string) gpio.PinIO {
		p := gpioreg.ByName(name)
		if p == nil && pinErr == nil {
			pinErr = fmt.Errorf("platform: %s: no such pin %q", b.Name, name)
		}
		return p
	}
	lcdConfig := st7789.Config{
		Port:      b.LCD.SPI,
		Speed:     physic.Frequency(b.LCD.SpeedHz) * physic.Hertz,
		Size:      image.Pt(b.LCD.Width, b.LCD.Height),
		CS:        pin(b.LCD.CS),
		Reset:     pin(b.LCD.Reset),
		DC:        pin(b.LCD.DC),
		Backlight: pin(b.LCD.Backlight),
	}
	ledPin := pin(b.LED)
	keys := make(map[input.Key]gpio.PinIn)
	for k, name := range b.KeyPins() {
		keys[k] = pin(name)
	}
	if pinErr != nil {
		return nil, pinErr
	}

	lcd, err := st7789.Open(lcdConfig)
	if err != nil {
		return nil, err
	}
	indicator, err := led.Open(ledPin)
	if err != nil {
		lcd.Close()
		return nil, err
	}
	p := newPlatform(lcd, &deviceOutput{lcd: lcd, led: indicator})
	p.closers = append(p.closers, lcd.Close, indicator.Close)
	if err := p.openClock(opts.RTC); err != nil {
		p.Close()
		return nil, err
	}
	edges := make(chan input.Edge, 8)
	if err := buttons.Open(keys, edges); err != nil {
		p.Close()
		return nil, err
	}
	go input.Run(p.ctx, edges, p.gui.Input())
	slog.Info("platform", "board", b.Name, "lcd", lcdConfig.Size)
	return p, nil
}

// deviceOutput drives the notification hardware of the board, which has
// no vibration motor.
type deviceOutput struct {
	lcd *st7789.LCD
	led *led.LED
}

func (o *deviceOutput) SetLED(c color.RGBA) {
	if err := o.led.Set(c); err != nil {
		slog.Error("led", "error", err)
	}
}

func (o *deviceOutput) SetBacklight(level uint8) {
	if err := o.lcd.SetBacklight(level); err != nil {
		slog.Error("backlight", "error", err)
	}
}

func (o *deviceOutput) SetVibro(on bool) {
	slog.Debug("vibro", "on", on)
}
