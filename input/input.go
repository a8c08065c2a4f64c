// package input defines the input events produced by the device buttons
// and translates debounced button edges into press actions.
package input

import "fmt"

type Event struct {
	Key  Key
	Type Type
	// Sequence is shared by every event of one physical press.
	Sequence uint32
}

type Key int

const (
	Up Key = iota
	Down
	Left
	Right
	OK
	Back
	MaxKey
)

type Type int

const (
	// Press is sent when a key goes down.
	Press Type = iota
	// Release is sent when a key goes up.
	Release
	// Short is sent before Release if the key was not held long.
	Short
	// Long is sent once after the key has been held LongPressDelay.
	Long
	// Repeat is sent every RepeatDelay after Long until release.
	Repeat
)

func (k Key) String() string {
	switch k {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case OK:
		return "ok"
	case Back:
		return "back"
	default:
		panic("invalid key")
	}
}

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case Short:
		return "short"
	case Long:
		return "long"
	case Repeat:
		return "repeat"
	default:
		panic("invalid input type")
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%v %v #%d", e.Key, e.Type, e.Sequence)
}

// ParseKey returns the key named s, as formatted by Key.String.
func ParseKey(s string) (Key, error) {
	for k := Up; k < MaxKey; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("input: unknown key %q", s)
}
