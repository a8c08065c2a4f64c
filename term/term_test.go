package term

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"helloclock.dev/input"
)

func TestRenderFrame(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	black := color.Gray{Y: 0}
	img.SetGray(0, 0, black)
	img.SetGray(0, 1, black)
	img.SetGray(1, 0, black)
	img.SetGray(2, 1, black)
	img.SetGray(3, 3, black)
	assert.Equal(t, "█▀▄ \n   ▄", renderFrame(img))
}

func TestKeysSendShortPresses(t *testing.T) {
	var got []input.Event
	m := newModel(func(e input.Event) { got = append(got, e) })
	var tm tea.Model = m
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	want := []input.Event{
		{Key: input.OK, Type: input.Press, Sequence: 1},
		{Key: input.OK, Type: input.Short, Sequence: 1},
		{Key: input.OK, Type: input.Release, Sequence: 1},
		{Key: input.Back, Type: input.Press, Sequence: 1},
		{Key: input.Back, Type: input.Short, Sequence: 1},
		{Key: input.Back, Type: input.Release, Sequence: 1},
		{Key: input.OK, Type: input.Press, Sequence: 2},
		{Key: input.OK, Type: input.Short, Sequence: 2},
		{Key: input.OK, Type: input.Release, Sequence: 2},
	}
	assert.Equal(t, want, got)
}

func TestCtrlCIsBack(t *testing.T) {
	k, ok := defaultKeyMap.lookup(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.True(t, ok)
	assert.Equal(t, input.Back, k)
}

func TestStatusMessages(t *testing.T) {
	var tm tea.Model = newModel(func(input.Event) {})
	tm, _ = tm.Update(ledMsg{c: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}})
	tm, _ = tm.Update(backlightMsg{level: 0xff})
	tm, _ = tm.Update(vibroMsg{on: true})
	m := tm.(model)
	assert.Equal(t, uint8(0xff), m.backlight)
	assert.True(t, m.vibro)
	assert.Contains(t, m.View(), "~vibro~")

	_, cmd := tm.Update(quitMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFrameMessage(t *testing.T) {
	var tm tea.Model = newModel(func(input.Event) {})
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	tm, _ = tm.Update(frameMsg{img: img})
	assert.Equal(t, "██", tm.(model).frame)
	assert.True(t, strings.Contains(tm.View(), "██"))
}

func TestForwarderKeepsOrder(t *testing.T) {
	out := make(chan input.Event)
	f := newForwarder(out)
	defer f.stop()
	for i := range 50 {
		f.push(input.Event{Key: input.Up, Sequence: uint32(i)})
	}
	for i := range 50 {
		select {
		case e := <-out:
			require.Equal(t, uint32(i), e.Sequence)
		case <-time.After(time.Second):
			t.Fatalf("event %d not forwarded", i)
		}
	}
}
