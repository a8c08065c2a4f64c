// package app implements the clock application: a single event loop fed
// by a periodic timer and the device keys.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"helloclock.dev/event"
	"helloclock.dev/gui"
	"helloclock.dev/input"
	"helloclock.dev/notification"
	"helloclock.dev/timer"
)

const (
	queueSize  = 8
	tickPeriod = time.Second
)

// Gui is an application's handle to the display service.
type Gui interface {
	AddViewPort(v *gui.ViewPort, l gui.Layer)
	RemoveViewPort(v *gui.ViewPort)
	Close()
}

// Notifications is an application's handle to the notification service.
type Notifications interface {
	Message(seq *notification.Sequence)
	Close()
}

// Platform supplies the services the application runs against.
type Platform interface {
	OpenGui() Gui
	OpenNotifications() Notifications
	Now() time.Time
}

type State int

const (
	Running State = iota
	Terminating
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	default:
		panic("invalid state")
	}
}

// Debug hook.
var teardownHook func(step string)

type App struct {
	platform      Platform
	log           *slog.Logger
	queue         *event.Queue
	viewPort      *gui.ViewPort
	gui           Gui
	timer         *timer.Timer
	notifications Notifications
	state         State
	done          bool
}

// Main runs the application on p and returns its exit status.
func Main(p Platform) int {
	New(p).Run()
	return 0
}

// New acquires the application's resources and starts its timer. No
// frame is drawn until the first tick.
func New(p Platform) *App {
	if p == nil {
		panic("app: nil platform")
	}
	a := &App{
		platform: p,
		log:      slog.Default().With("service", "app"),
	}
	a.queue = event.NewQueue(queueSize)

	a.viewPort = gui.NewViewPort()
	a.viewPort.SetInputCallback(a.onInput)
	a.gui = p.OpenGui()
	if a.gui == nil {
		panic("app: no gui")
	}
	a.gui.AddViewPort(a.viewPort, gui.LayerFullscreen)

	a.timer = timer.New(a.onTick, timer.Periodic)
	a.timer.Start(tickPeriod)

	a.notifications = p.OpenNotifications()
	if a.notifications == nil {
		panic("app: no notifications")
	}
	a.notifications.Message(notification.DisplayBacklightEnforceOn)
	return a
}

// onInput runs on the Gui goroutine. Input is never dropped.
func (a *App) onInput(e input.Event) {
	err := a.queue.Put(context.Background(), event.Input{Event: e}, event.WaitForever)
	switch {
	case err == nil:
	case errors.Is(err, event.ErrReleased):
		a.log.Debug("input after exit", "event", e)
	default:
		panic(fmt.Sprintf("app: input: %v", err))
	}
}

// onTick runs on the timer goroutine. Ticks are dropped when the queue
// is full.
func (a *App) onTick() {
	err := a.queue.Put(context.Background(), event.Tick{}, 0)
	switch {
	case err == nil:
	case errors.Is(err, event.ErrTimeout):
		a.log.Debug("tick dropped", "queued", a.queue.Len())
	case errors.Is(err, event.ErrReleased):
	default:
		panic(fmt.Sprintf("app: tick: %v", err))
	}
}

func (a *App) draw(c *gui.Canvas) {
	Draw(c, a.platform.Now())
}

// State returns the state of the event loop.
func (a *App) State() State {
	return a.state
}

// Run processes events until the Back key is pressed, then releases
// every resource acquired by New.
func (a *App) Run() {
	if a.done {
		panic("app: already exited")
	}
	a.log.Info("running")
	for a.state == Running {
		e, err := a.queue.Get(context.Background(), event.WaitForever)
		if err != nil {
			panic(fmt.Sprintf("app: event queue: %v", err))
		}
		a.state = a.handle(e)
	}
	a.teardown()
	a.log.Info("exited")
}

func (a *App) handle(e event.Event) State {
	switch e := e.(type) {
	case event.Input:
		if e.Key == input.Back {
			a.log.Debug("exit key", "event", e.Event)
			return Terminating
		}
	case event.Tick:
		a.viewPort.SetDrawCallback(a.draw)
		a.notifications.Message(notification.BlinkWhite100)
	default:
		panic(fmt.Sprintf("app: unknown event %T", e))
	}
	return Running
}

func (a *App) teardown() {
	step := func(name string) {
		if teardownHook != nil {
			teardownHook(name)
		}
	}
	a.notifications.Message(notification.DisplayBacklightEnforceAuto)

	a.timer.Release()
	step("timer")

	a.queue.Release()
	step("queue")

	a.gui.RemoveViewPort(a.viewPort)
	a.viewPort.Release()
	step("viewport")

	a.gui.Close()
	a.notifications.Close()
	a.done = true
}
