package term

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"helloclock.dev/gui"
	"helloclock.dev/input"
)

type frameMsg struct {
	img *image.Gray
}

type ledMsg struct {
	c color.RGBA
}

type backlightMsg struct {
	level uint8
}

type vibroMsg struct {
	on bool
}

type quitMsg struct{}

var (
	litScreen = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FF8200"))
	darkScreen = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#332000"))
	bezel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#666666"))
	ledOff    = lipgloss.Color("#303030")
	vibroText = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
)

type model struct {
	keys      keyMap
	help      help.Model
	send      func(input.Event)
	sequences [input.MaxKey]uint32
	frame     string
	led       color.RGBA
	backlight uint8
	vibro     bool
}

func newModel(send func(input.Event)) model {
	return model{
		keys:  defaultKeyMap,
		help:  help.New(),
		send:  send,
		frame: renderFrame(image.NewGray(image.Rectangle{Max: gui.CanvasSize})),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		k, ok := m.keys.lookup(msg)
		if !ok {
			return m, nil
		}
		m.sequences[k]++
		seq := m.sequences[k]
		for _, typ := range []input.Type{input.Press, input.Short, input.Release} {
			m.send(input.Event{Key: k, Type: typ, Sequence: seq})
		}
	case frameMsg:
		m.frame = renderFrame(msg.img)
	case ledMsg:
		m.led = msg.c
	case backlightMsg:
		m.backlight = msg.level
	case vibroMsg:
		m.vibro = msg.on
	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	style := darkScreen
	if m.backlight > 0 {
		style = litScreen
	}
	screen := bezel.Render(style.Render(m.frame))
	ledColor := ledOff
	if m.led != (color.RGBA{}) {
		ledColor = lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", m.led.R, m.led.G, m.led.B))
	}
	status := lipgloss.NewStyle().Foreground(ledColor).Render("●") + " led"
	if m.vibro {
		status += "  " + vibroText.Render("~vibro~")
	}
	return lipgloss.JoinVertical(lipgloss.Left, screen, status, m.help.View(m.keys)) + "\n"
}

// renderFrame draws img with half blocks, two pixel rows per text line.
// Pixels darker than mid gray are ink.
func renderFrame(img *image.Gray) string {
	ink := func(x, y int) bool {
		if !(image.Point{x, y}).In(img.Rect) {
			return false
		}
		return img.GrayAt(x, y).Y < 0x80
	}
	var b strings.Builder
	r := img.Rect
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		if y > r.Min.Y {
			b.WriteByte('\n')
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			top, bottom := ink(x, y), ink(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
