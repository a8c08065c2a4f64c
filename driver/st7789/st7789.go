// package st7789 implements a driver for ST7789 SPI LCD panels such as
// the one on the Waveshare 1.3" 240x240 HAT.
package st7789

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

type Config struct {
	// Port is the SPI port name; empty selects the first one.
	Port  string
	Speed physic.Frequency
	Size  image.Point

	CS, Reset, DC, Backlight gpio.PinOut
}

type LCD struct {
	config Config
	spi    spi.PortCloser
	conn   spi.Conn
	txBuf  []byte

	mu     sync.Mutex
	window image.Rectangle
	frame  []byte
	// backlight is the commanded state; the pin follows it once a frame
	// is shown.
	backlight bool
	shown     bool
}

func Open(config Config) (*LCD, error) {
	if config.CS == nil || config.Reset == nil || config.DC == nil || config.Backlight == nil {
		return nil, errors.New("st7789: missing control pin")
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("st7789: %w", err)
	}
	p, err := spireg.Open(config.Port)
	if err != nil {
		return nil, fmt.Errorf("st7789: %w", err)
	}
	return open(p, config)
}

func open(p spi.PortCloser, config Config) (*LCD, error) {
	c, err := p.Connect(config.Speed, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("st7789: %w", err)
	}
	l := &LCD{
		config:    config,
		spi:       p,
		conn:      c,
		backlight: true,
	}
	maxTx := 4096
	if lim, ok := c.(conn.Limits); ok {
		maxTx = lim.MaxTxSize()
	}
	l.txBuf = make([]byte, maxTx)
	if err := l.setup(); err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}

func (l *LCD) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.spi == nil {
		return nil
	}
	l.config.Backlight.Out(gpio.Low)
	err := l.spi.Close()
	l.spi = nil
	l.conn = nil
	return err
}

func (l *LCD) Bounds() image.Rectangle {
	return image.Rectangle{Max: l.config.Size}
}

func (l *LCD) sendCommand(cmd byte, data ...byte) error {
	if err := l.config.DC.Out(gpio.Low); err != nil {
		return err
	}
	if err := l.conn.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	if len(data) > 0 {
		if err := l.config.DC.Out(gpio.High); err != nil {
			return err
		}
		if err := l.conn.Tx(data, nil); err != nil {
			return err
		}
	}
	return nil
}

func (l *LCD) setup() error {
	cfg := l.config
	for _, p := range []gpio.PinOut{cfg.CS, cfg.Reset, cfg.DC} {
		if err := p.Out(gpio.High); err != nil {
			return fmt.Errorf("st7789: %w", err)
		}
	}
	// Backlight stays off until the first frame.
	if err := cfg.Backlight.Out(gpio.Low); err != nil {
		return fmt.Errorf("st7789: %w", err)
	}

	cfg.Reset.Out(gpio.High)
	time.Sleep(100 * time.Millisecond)
	cfg.Reset.Out(gpio.Low)
	time.Sleep(100 * time.Millisecond)
	cfg.Reset.Out(gpio.High)
	time.Sleep(100 * time.Millisecond)

	var cmdErr error
	sendCommand := func(cmd byte, data ...byte) {
		if cmdErr != nil {
			return
		}
		cmdErr = l.sendCommand(cmd, data...)
	}
	sendCommand(0x36 /*MADCTL*/, 0x70 /* MX, MY, RGB mode */)
	sendCommand(0x11 /*SLPOUT*/)
	time.Sleep(120 * time.Millisecond)
	sendCommand(0x3a /*COLMOD*/, 0x05)
	sendCommand(0xb2 /*PORCTRL*/, 0x0c, 0x0c, 0x00, 0x33, 0x33)
	sendCommand(0xb7 /*GCTRL*/, 0x35)
	sendCommand(0xbb /*VCOMS*/, 0x37)
	sendCommand(0xc0 /*LCMCTRL*/, 0x2c)
	sendCommand(0xc2 /*VDVVRHEN*/, 0x01)
	sendCommand(0xc3 /*VRHS*/, 0x12)
	sendCommand(0xc4 /*VDVS*/, 0x20)
	sendCommand(0xc6 /*FRCTRL2*/, 0x0f)
	sendCommand(0xd0 /*PWCTRL1*/, 0xa4, 0xa1)
	sendCommand(0xba /*DGMEN: Enable Gamma*/, 0x04)
	sendCommand(0x21 /*INVON*/)
	sendCommand(0x29 /*DISPON*/)
	if cmdErr != nil {
		return fmt.Errorf("st7789: SPI command: %w", cmdErr)
	}
	// Blank the whole panel; frames may not cover it.
	black := make([]byte, 2*cfg.Size.X*cfg.Size.Y)
	return l.blit(l.Bounds(), black)
}

// Flush scales img to fit the panel, centers it and transfers it.
func (l *LCD) Flush(img *image.Gray) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return errors.New("st7789: closed")
	}
	dr := Fit(img.Rect.Size(), l.config.Size)
	l.frame = Convert(l.frame[:0], img, dr.Size())
	if err := l.blit(dr, l.frame); err != nil {
		return err
	}
	if !l.shown {
		l.shown = true
		if err := l.config.Backlight.Out(gpio.Level(l.backlight)); err != nil {
			return fmt.Errorf("st7789: backlight: %w", err)
		}
	}
	return nil
}

// SetBacklight switches the backlight. The panel has no dimming, so any
// non-zero level is on. Before the first frame the level is only recorded.
func (l *LCD) SetBacklight(level uint8) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.backlight = level > 0
	if !l.shown || l.conn == nil {
		return nil
	}
	if err := l.config.Backlight.Out(gpio.Level(l.backlight)); err != nil {
		return fmt.Errorf("st7789: backlight: %w", err)
	}
	return nil
}

func (l *LCD) blit(r image.Rectangle, pix []byte) error {
	if err := l.setWindow(r); err != nil {
		return fmt.Errorf("st7789: window: %w", err)
	}
	if err := l.config.DC.Out(gpio.High); err != nil {
		return err
	}
	for len(pix) > 0 {
		n := copy(l.txBuf, pix)
		pix = pix[n:]
		if err := l.conn.Tx(l.txBuf[:n], nil); err != nil {
			return fmt.Errorf("st7789: blit: %w", err)
		}
	}
	return nil
}

func (l *LCD) setWindow(r image.Rectangle) error {
	var cmdErr error
	sendCommand := func(cmd byte, data ...byte) {
		if cmdErr != nil {
			return
		}
		cmdErr = l.sendCommand(cmd, data...)
	}
	if l.window != r {
		sendCommand(0x2a /* CASET */, byte(r.Min.X>>8), byte(r.Min.X), byte((r.Max.X-1)>>8), byte((r.Max.X)-1))
		sendCommand(0x2b /* RASET */, byte(r.Min.Y>>8), byte(r.Min.Y), byte((r.Max.Y-1)>>8), byte((r.Max.Y)-1))
		l.window = r
	}
	sendCommand(0x2c /* RAMWR */)
	return cmdErr
}
