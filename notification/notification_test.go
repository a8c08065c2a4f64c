package notification

import (
	"fmt"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) SetLED(c color.RGBA)      { r.record("led %d,%d,%d", c.R, c.G, c.B) }
func (r *recorder) SetBacklight(level uint8) { r.record("backlight %d", level) }
func (r *recorder) SetVibro(on bool)         { r.record("vibro %v", on) }

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestBlinkWhite(t *testing.T) {
	out := new(recorder)
	s := Open(out, Config{})
	c := s.Client()
	c.Message(BlinkWhite100)
	c.Close()
	s.Close()
	assert.Equal(t, []string{
		"backlight 255",
		"led 255,0,0",
		"led 255,255,0",
		"led 255,255,255",
		"led 0,0,0",
	}, out.Calls())
}

func TestSequencesPlayInOrder(t *testing.T) {
	out := new(recorder)
	s := Open(out, Config{})
	c := s.Client()
	c.Message(DisplayBacklightOff)
	c.Message(SingleVibro)
	c.Message(DisplayBacklightOn)
	s.Close()
	assert.Equal(t, []string{
		"backlight 255",
		"backlight 0",
		"vibro true",
		"vibro false",
		"backlight 255",
	}, out.Calls())
}

func TestBacklightTimeout(t *testing.T) {
	out := new(recorder)
	s := Open(out, Config{BacklightTimeout: 10 * time.Millisecond})
	defer s.Close()
	require.Eventually(t, func() bool {
		calls := out.Calls()
		return len(calls) > 0 && calls[len(calls)-1] == "backlight 0"
	}, time.Second, time.Millisecond)
}

func TestEnforcedBacklightStaysOn(t *testing.T) {
	out := new(recorder)
	s := Open(out, Config{BacklightTimeout: 10 * time.Millisecond})
	c := s.Client()
	c.Message(DisplayBacklightEnforceOn)
	time.Sleep(50 * time.Millisecond)
	calls := out.Calls()
	assert.Equal(t, "backlight 255", calls[len(calls)-1])

	c.Message(DisplayBacklightEnforceAuto)
	require.Eventually(t, func() bool {
		calls := out.Calls()
		return calls[len(calls)-1] == "backlight 0"
	}, time.Second, time.Millisecond)
	c.Close()
	s.Close()
}

func TestMessageAfterClosePanics(t *testing.T) {
	s := Open(new(recorder), Config{})
	defer s.Close()
	c := s.Client()
	c.Close()
	assert.Panics(t, func() { c.Message(BlinkWhite100) })
}

func TestMessageAfterServiceClosePanics(t *testing.T) {
	s := Open(new(recorder), Config{})
	c := s.Client()
	s.Close()
	assert.PanicsWithValue(t, "notification: service closed", func() { c.Message(BlinkWhite100) })
}

// blockedOutput holds every call until ready is closed, like a display
// whose event loop has not started yet.
type blockedOutput struct {
	recorder
	ready chan struct{}
}

func (b *blockedOutput) SetBacklight(level uint8) {
	<-b.ready
	b.recorder.SetBacklight(level)
}

func TestOpenDoesNotWaitForOutput(t *testing.T) {
	out := &blockedOutput{ready: make(chan struct{})}
	opened := make(chan *Service)
	go func() { opened <- Open(out, Config{}) }()
	var s *Service
	select {
	case s = <-opened:
	case <-time.After(time.Second):
		t.Fatal("Open blocked on the output")
	}
	close(out.ready)
	s.Close()
	assert.Equal(t, []string{"backlight 255"}, out.Calls())
}
