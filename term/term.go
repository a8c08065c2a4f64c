// package term implements a development platform in the terminal: the
// display, the keys, the indicator LED and the backlight.
package term

import (
	"image"
	"image/color"
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"helloclock.dev/gui"
	"helloclock.dev/input"
)

type Terminal struct {
	prog *tea.Program
	fwd  *forwarder
}

// New returns a terminal delivering key presses to events.
func New(events chan<- input.Event, opts ...tea.ProgramOption) *Terminal {
	fwd := newForwarder(events)
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return &Terminal{
		prog: tea.NewProgram(newModel(fwd.push), opts...),
		fwd:  fwd,
	}
}

// Run runs the terminal user interface until Quit.
func (t *Terminal) Run() error {
	defer t.fwd.stop()
	_, err := t.prog.Run()
	return err
}

func (t *Terminal) Quit() {
	t.prog.Send(quitMsg{})
}

func (t *Terminal) Bounds() image.Rectangle {
	return image.Rectangle{Max: gui.CanvasSize}
}

func (t *Terminal) Flush(img *image.Gray) error {
	cpy := *img
	cpy.Pix = slices.Clone(img.Pix)
	t.prog.Send(frameMsg{img: &cpy})
	return nil
}

func (t *Terminal) SetLED(c color.RGBA) {
	t.prog.Send(ledMsg{c: c})
}

func (t *Terminal) SetBacklight(level uint8) {
	t.prog.Send(backlightMsg{level: level})
}

func (t *Terminal) SetVibro(on bool) {
	t.prog.Send(vibroMsg{on: on})
}

// forwarder delivers events in order without blocking the program's
// update loop, which would deadlock against Flush.
type forwarder struct {
	mu      sync.Mutex
	pending []input.Event
	wakeup  chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newForwarder(out chan<- input.Event) *forwarder {
	f := &forwarder{
		wakeup: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go f.run(out)
	return f
}

func (f *forwarder) push(e input.Event) {
	f.mu.Lock()
	f.pending = append(f.pending, e)
	f.mu.Unlock()
	select {
	case f.wakeup <- struct{}{}:
	default:
	}
}

func (f *forwarder) run(out chan<- input.Event) {
	for {
		select {
		case <-f.wakeup:
		case <-f.done:
			return
		}
		f.mu.Lock()
		evts := f.pending
		f.pending = nil
		f.mu.Unlock()
		for _, e := range evts {
			select {
			case out <- e:
			case <-f.done:
				return
			}
		}
	}
}

func (f *forwarder) stop() {
	f.once.Do(func() {
		close(f.done)
	})
}
