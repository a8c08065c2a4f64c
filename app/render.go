package app

import (
	"fmt"
	"time"

	"helloclock.dev/gui"
	"helloclock.dev/rtc"
)

const title = "Olar Mundo!"

// Canvas is the subset of *gui.Canvas the clock screen draws with.
type Canvas interface {
	Clear()
	SetFont(f gui.Font)
	DrawStr(x, y int, s string)
}

// Draw renders the greeting and the clock reading of now.
func Draw(c Canvas, now time.Time) {
	c.Clear()
	c.SetFont(gui.FontPrimary)
	c.DrawStr(0, 10, title)
	c.SetFont(gui.FontSecondary)
	c.DrawStr(0, 20, FormatClock(rtc.Timestamp(now)))
}

// FormatClock formats the time of day of timestamp t as HH:MM:SS.
func FormatClock(t uint32) string {
	const (
		minute = 60
		hour   = 60 * minute
		day    = 24 * hour
	)
	return fmt.Sprintf("%02d:%02d:%02d", t%day/hour, t%hour/minute, t%minute)
}
