// package gui implements the display service: view ports stacked in
// layers, the redraw cadence and input dispatch.
package gui

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"slices"
	"sync"
	"time"

	"helloclock.dev/input"
)

// Display is the screen the Gui flushes its canvas to.
type Display interface {
	Bounds() image.Rectangle
	Flush(img *image.Gray) error
}

type Layer int

const (
	LayerDesktop Layer = iota
	LayerWindow
	LayerFullscreen
	maxLayer
)

// FramePeriod is the default redraw cadence.
const FramePeriod = 100 * time.Millisecond

// CanvasSize is the logical canvas size. Displays scale it to fit.
var CanvasSize = image.Pt(128, 64)

type Gui struct {
	display     Display
	canvas      *Canvas
	log         *slog.Logger
	framePeriod time.Duration
	input       chan input.Event
	redraw      chan struct{}

	mu     sync.Mutex
	layers [maxLayer][]*ViewPort
	last   []byte
}

func New(d Display) *Gui {
	return &Gui{
		display:     d,
		canvas:      NewCanvas(CanvasSize.X, CanvasSize.Y),
		log:         slog.Default().With("service", "gui"),
		framePeriod: FramePeriod,
		input:       make(chan input.Event, 16),
		redraw:      make(chan struct{}, 1),
	}
}

// Input returns the channel input drivers deliver events to.
func (g *Gui) Input() chan<- input.Event {
	return g.input
}

// Run redraws and dispatches input until ctx is done.
func (g *Gui) Run(ctx context.Context) {
	g.log.Info("running", "frame", g.framePeriod)
	frames := time.NewTicker(g.framePeriod)
	defer frames.Stop()
	for {
		select {
		case e := <-g.input:
			g.dispatch(e)
		case <-g.redraw:
			g.draw()
		case <-frames.C:
			g.draw()
		case <-ctx.Done():
			g.log.Info("stopped")
			return
		}
	}
}

// Update requests a redraw as soon as possible.
func (g *Gui) Update() {
	select {
	case g.redraw <- struct{}{}:
	default:
	}
}

// Open returns a client handle for attaching view ports.
func (g *Gui) Open() *Client {
	return &Client{gui: g}
}

func (g *Gui) addViewPort(v *ViewPort, l Layer) {
	if l < 0 || l >= maxLayer {
		panic("gui: invalid layer")
	}
	g.mu.Lock()
	for _, ports := range g.layers {
		if slices.Contains(ports, v) {
			g.mu.Unlock()
			panic("gui: view port already added")
		}
	}
	g.layers[l] = append(g.layers[l], v)
	g.mu.Unlock()
	v.attach(g)
	g.Update()
}

func (g *Gui) removeViewPort(v *ViewPort) {
	g.mu.Lock()
	for l, ports := range g.layers {
		g.layers[l] = slices.DeleteFunc(ports, func(p *ViewPort) bool {
			return p == v
		})
	}
	g.mu.Unlock()
	v.attach(nil)
	g.Update()
}

// top returns the most recently added enabled view port of the highest
// non-empty layer.
func (g *Gui) top() *ViewPort {
	g.mu.Lock()
	defer g.mu.Unlock()
	for l := maxLayer - 1; l >= 0; l-- {
		ports := g.layers[l]
		for i := len(ports) - 1; i >= 0; i-- {
			if ports[i].IsEnabled() {
				return ports[i]
			}
		}
	}
	return nil
}

func (g *Gui) dispatch(e input.Event) {
	v := g.top()
	if v == nil {
		g.log.Debug("input dropped", "event", e)
		return
	}
	v.input(e)
}

func (g *Gui) draw() {
	v := g.top()
	if v == nil {
		return
	}
	g.canvas.reset()
	if !v.draw(g.canvas) {
		return
	}
	pix := g.canvas.img.Pix
	if bytes.Equal(pix, g.last) {
		return
	}
	if err := g.display.Flush(g.canvas.img); err != nil {
		g.log.Error("flush failed", "error", err)
		return
	}
	g.last = append(g.last[:0], pix...)
}

// Client is an application's handle to the Gui.
type Client struct {
	gui    *Gui
	ports  []*ViewPort
	closed bool
}

func (c *Client) AddViewPort(v *ViewPort, l Layer) {
	if c.closed {
		panic("gui: client closed")
	}
	c.gui.addViewPort(v, l)
	c.ports = append(c.ports, v)
}

func (c *Client) RemoveViewPort(v *ViewPort) {
	if c.closed {
		panic("gui: client closed")
	}
	c.gui.removeViewPort(v)
	c.ports = slices.DeleteFunc(c.ports, func(p *ViewPort) bool {
		return p == v
	})
}

// Close detaches any view ports still attached through c.
func (c *Client) Close() {
	if c.closed {
		return
	}
	for _, v := range c.ports {
		c.gui.log.Warn("view port left attached at close")
		c.gui.removeViewPort(v)
	}
	c.ports = nil
	c.closed = true
}
