package gui

import (
	"sync"

	"helloclock.dev/input"
)

type DrawCallback func(c *Canvas)

type InputCallback func(e input.Event)

// ViewPort is a drawable surface attached to a Gui layer. Its callbacks
// run on the Gui goroutine.
type ViewPort struct {
	mu       sync.Mutex
	onDraw   DrawCallback
	onInput  InputCallback
	disabled bool
	gui      *Gui
	released bool
}

func NewViewPort() *ViewPort {
	return new(ViewPort)
}

// SetDrawCallback installs cb and requests a redraw. Installing the same
// callback again is harmless.
func (v *ViewPort) SetDrawCallback(cb DrawCallback) {
	v.mu.Lock()
	v.onDraw = cb
	g := v.gui
	v.mu.Unlock()
	if g != nil {
		g.Update()
	}
}

func (v *ViewPort) SetInputCallback(cb InputCallback) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onInput = cb
}

func (v *ViewPort) SetEnabled(enabled bool) {
	v.mu.Lock()
	v.disabled = !enabled
	g := v.gui
	v.mu.Unlock()
	if g != nil {
		g.Update()
	}
}

func (v *ViewPort) IsEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.disabled
}

// Update requests a redraw of the Gui v is attached to.
func (v *ViewPort) Update() {
	v.mu.Lock()
	g := v.gui
	v.mu.Unlock()
	if g != nil {
		g.Update()
	}
}

// Release frees v. It must be removed from its Gui first.
func (v *ViewPort) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gui != nil {
		panic("gui: releasing attached view port")
	}
	v.released = true
	v.onDraw = nil
	v.onInput = nil
}

func (v *ViewPort) attach(g *Gui) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.released {
		panic("gui: view port released")
	}
	v.gui = g
}

// draw runs the draw callback, if any, under the view port lock.
func (v *ViewPort) draw(c *Canvas) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.onDraw == nil {
		return false
	}
	v.onDraw(c)
	return true
}

func (v *ViewPort) input(e input.Event) {
	v.mu.Lock()
	cb := v.onInput
	v.mu.Unlock()
	if cb != nil {
		cb(e)
	}
}
