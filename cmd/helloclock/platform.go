package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"helloclock.dev/app"
	"helloclock.dev/gui"
	"helloclock.dev/input"
	"helloclock.dev/notification"
	"helloclock.dev/rtc"
)

type Platform struct {
	gui           *gui.Gui
	notifications *notification.Service
	clock         rtc.Clock
	ctx           context.Context
	cancel        context.CancelFunc
	closers       []func() error
	backPresses   atomic.Uint32
}

func newPlatform(d gui.Display, out notification.Output) *Platform {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Platform{
		gui:           gui.New(d),
		notifications: notification.Open(out, notification.DefaultConfig),
		clock:         rtc.System{},
		ctx:           ctx,
		cancel:        cancel,
	}
	go p.gui.Run(ctx)
	go p.backOnSignal(ctx)
	return p
}

func (p *Platform) OpenGui() app.Gui {
	return p.gui.Open()
}

func (p *Platform) OpenNotifications() app.Notifications {
	return p.notifications.Client()
}

func (p *Platform) Now() time.Time {
	return p.clock.Now()
}

// backOnSignal turns an interrupt into a Back press, the application's
// only way out.
func (p *Platform) backOnSignal(ctx context.Context) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	for {
		select {
		case sig := <-sigs:
			slog.Info("signal", "signal", sig)
			p.pressBack()
		case <-ctx.Done():
			return
		}
	}
}

// pressBack delivers a complete press of the Back key.
func (p *Platform) pressBack() {
	seq := p.backPresses.Add(1)
	for _, typ := range []input.Type{input.Press, input.Short, input.Release} {
		select {
		case p.gui.Input() <- input.Event{Key: input.Back, Type: typ, Sequence: seq}:
		case <-p.ctx.Done():
			return
		}
	}
}

// openClock switches the time source to the RTC device at path, if set.
func (p *Platform) openClock(path string) error {
	if path == "" {
		return nil
	}
	d, err := rtc.Open(path)
	if err != nil {
		return err
	}
	p.clock = d
	p.closers = append(p.closers, d.Close)
	return nil
}

// Close stops the platform services and releases the hardware.
func (p *Platform) Close() error {
	p.notifications.Close()
	p.cancel()
	var first error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
