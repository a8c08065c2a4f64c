package notification

import "time"

type Kind int

const (
	LEDRed Kind = iota
	LEDGreen
	LEDBlue
	Vibro
	Delay
	DisplayBacklight
	BacklightEnforceOn
	BacklightEnforceAuto
	// DoNotReset keeps the LED and vibration state after the sequence.
	DoNotReset
)

type Message struct {
	Kind  Kind
	Value uint8
	Delay time.Duration
}

type Sequence struct {
	Name     string
	Messages []Message
}

var (
	messageRed255   = Message{Kind: LEDRed, Value: 0xff}
	messageGreen255 = Message{Kind: LEDGreen, Value: 0xff}
	messageBlue255  = Message{Kind: LEDBlue, Value: 0xff}
	messageRed0     = Message{Kind: LEDRed}
	messageGreen0   = Message{Kind: LEDGreen}
	messageBlue0    = Message{Kind: LEDBlue}
)

func delay(d time.Duration) Message {
	return Message{Kind: Delay, Delay: d}
}

var (
	DisplayBacklightEnforceOn = &Sequence{
		Name:     "display_backlight_enforce_on",
		Messages: []Message{{Kind: BacklightEnforceOn}},
	}
	DisplayBacklightEnforceAuto = &Sequence{
		Name:     "display_backlight_enforce_auto",
		Messages: []Message{{Kind: BacklightEnforceAuto}},
	}
	DisplayBacklightOn = &Sequence{
		Name:     "display_backlight_on",
		Messages: []Message{{Kind: DisplayBacklight, Value: 0xff}},
	}
	DisplayBacklightOff = &Sequence{
		Name:     "display_backlight_off",
		Messages: []Message{{Kind: DisplayBacklight, Value: 0}},
	}
	BlinkWhite100 = &Sequence{
		Name: "blink_white_100",
		Messages: []Message{
			messageRed255, messageGreen255, messageBlue255,
			delay(100 * time.Millisecond),
		},
	}
	SingleVibro = &Sequence{
		Name: "single_vibro",
		Messages: []Message{
			{Kind: Vibro, Value: 1},
			delay(30 * time.Millisecond),
		},
	}
	ResetRGB = &Sequence{
		Name:     "reset_rgb",
		Messages: []Message{messageRed0, messageGreen0, messageBlue0},
	}
)
