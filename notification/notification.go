// package notification runs named sequences of LED, backlight and vibration
// messages on a worker goroutine.
package notification

import (
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Output is the hardware the service drives.
type Output interface {
	SetLED(c color.RGBA)
	SetBacklight(level uint8)
	SetVibro(on bool)
}

type Config struct {
	// BacklightTimeout turns the backlight off after a period without
	// backlight messages while not enforced. Zero disables it.
	BacklightTimeout time.Duration
}

var DefaultConfig = Config{
	BacklightTimeout: 30 * time.Second,
}

type Service struct {
	out    Output
	config Config
	log    *slog.Logger
	queue  chan *Sequence
	done   chan struct{}
	once   sync.Once
	closed atomic.Bool

	// Owned by the worker goroutine.
	led       color.RGBA
	backlight uint8
	vibro     bool
	enforced  int
	offTimer  *time.Timer
}

// Open starts a service driving out.
func Open(out Output, config Config) *Service {
	s := &Service{
		out:    out,
		config: config,
		log:    slog.Default().With("service", "notification"),
		queue:  make(chan *Sequence, 16),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Client returns a handle for sending sequences.
func (s *Service) Client() *Client {
	return &Client{svc: s}
}

// Close processes the queued sequences and stops the service.
func (s *Service) Close() {
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.queue)
	})
	<-s.done
}

func (s *Service) run() {
	defer close(s.done)
	defer func() {
		if s.offTimer != nil {
			s.offTimer.Stop()
		}
	}()
	// The output may block until its device is ready.
	s.setBacklight(0xff)
	s.armTimeout()
	for {
		var timeout <-chan time.Time
		if s.offTimer != nil {
			timeout = s.offTimer.C
		}
		select {
		case seq, ok := <-s.queue:
			if !ok {
				s.log.Info("stopped")
				return
			}
			s.play(seq)
		case <-timeout:
			s.offTimer = nil
			if s.enforced == 0 {
				s.log.Debug("backlight timeout")
				s.setBacklight(0)
			}
		}
	}
}

func (s *Service) play(seq *Sequence) {
	s.log.Debug("sequence", "name", seq.Name)
	led := s.led
	reset := true
	for _, m := range seq.Messages {
		switch m.Kind {
		case LEDRed:
			led.R = m.Value
			s.setLED(led)
		case LEDGreen:
			led.G = m.Value
			s.setLED(led)
		case LEDBlue:
			led.B = m.Value
			s.setLED(led)
		case Vibro:
			s.setVibro(m.Value != 0)
		case Delay:
			time.Sleep(m.Delay)
		case DisplayBacklight:
			s.setBacklight(m.Value)
			s.armTimeout()
		case BacklightEnforceOn:
			s.enforced++
			s.setBacklight(0xff)
		case BacklightEnforceAuto:
			if s.enforced > 0 {
				s.enforced--
			}
			s.armTimeout()
		case DoNotReset:
			reset = false
		}
	}
	if reset {
		if s.led != (color.RGBA{}) {
			s.setLED(color.RGBA{})
		}
		s.setVibro(false)
	}
}

func (s *Service) setVibro(on bool) {
	if s.vibro == on {
		return
	}
	s.vibro = on
	s.out.SetVibro(on)
}

func (s *Service) setLED(c color.RGBA) {
	c.A = 0xff
	if c.R == 0 && c.G == 0 && c.B == 0 {
		c = color.RGBA{}
	}
	s.led = c
	s.out.SetLED(c)
}

func (s *Service) setBacklight(level uint8) {
	if s.backlight == level {
		return
	}
	s.backlight = level
	s.out.SetBacklight(level)
}

func (s *Service) armTimeout() {
	if s.config.BacklightTimeout <= 0 {
		return
	}
	if s.offTimer != nil {
		s.offTimer.Stop()
	}
	s.offTimer = time.NewTimer(s.config.BacklightTimeout)
}

// Client is an application's handle to the service.
type Client struct {
	svc    *Service
	closed bool
}

// Message queues seq for playback and returns without waiting for it.
func (c *Client) Message(seq *Sequence) {
	if c.closed {
		panic("notification: client closed")
	}
	if c.svc.closed.Load() {
		panic("notification: service closed")
	}
	c.svc.queue <- seq
}

func (c *Client) Close() {
	c.closed = true
}
