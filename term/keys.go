package term

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"helloclock.dev/input"
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	OK    key.Binding
	Back  key.Binding
}

// Terminals don't report key releases, so every key press is a complete
// short press. Ctrl+C maps to Back; Back is the only way to exit.
var defaultKeyMap = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	OK:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "ok")),
	Back:  key.NewBinding(key.WithKeys("esc", "backspace", "q", "ctrl+c"), key.WithHelp("esc/q", "back")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OK, k.Back}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.OK, k.Back},
	}
}

func (k keyMap) lookup(msg tea.KeyMsg) (input.Key, bool) {
	bindings := []struct {
		key     input.Key
		binding key.Binding
	}{
		{input.Up, k.Up},
		{input.Down, k.Down},
		{input.Left, k.Left},
		{input.Right, k.Right},
		{input.OK, k.OK},
		{input.Back, k.Back},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.key, true
		}
	}
	return 0, false
}
