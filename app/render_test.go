package app

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"helloclock.dev/gui"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		t    uint32
		want string
	}{
		{0, "00:00:00"},
		{3661, "01:01:01"},
		{86399, "23:59:59"},
		{86400, "00:00:00"},
		{86400*365 + 45296, "12:34:56"},
	}
	for _, test := range tests {
		if got := FormatClock(test.t); got != test.want {
			t.Errorf("FormatClock(%d) = %q, want %q", test.t, got, test.want)
		}
	}
}

type recordingCanvas struct {
	calls []string
}

func (c *recordingCanvas) Clear() {
	c.calls = append(c.calls, "clear")
}

func (c *recordingCanvas) SetFont(f gui.Font) {
	c.calls = append(c.calls, fmt.Sprintf("font %d", f))
}

func (c *recordingCanvas) DrawStr(x, y int, s string) {
	c.calls = append(c.calls, fmt.Sprintf("str %d,%d %s", x, y, s))
}

func TestDraw(t *testing.T) {
	c := new(recordingCanvas)
	Draw(c, time.Unix(3661, 0).UTC())
	want := []string{
		"clear",
		fmt.Sprintf("font %d", gui.FontPrimary),
		"str 0,10 Olar Mundo!",
		fmt.Sprintf("font %d", gui.FontSecondary),
		"str 0,20 01:01:01",
	}
	if !slices.Equal(c.calls, want) {
		t.Errorf("got calls\n%v\nwant\n%v", c.calls, want)
	}
}

func TestDrawLocalTime(t *testing.T) {
	c := new(recordingCanvas)
	zone := time.FixedZone("UTC+2", 2*3600)
	Draw(c, time.Unix(86399, 0).In(zone))
	if got, want := c.calls[len(c.calls)-1], "str 0,20 01:59:59"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDrawCanvas(t *testing.T) {
	c := gui.NewCanvas(gui.CanvasSize.X, gui.CanvasSize.Y)
	Draw(c, time.Unix(0, 0).UTC())
	img := c.Image()
	rows := func(y0, y1 int) int {
		n := 0
		for y := y0; y < y1; y++ {
			for x := 0; x < img.Rect.Dx(); x++ {
				if img.GrayAt(x, y).Y < 0x80 {
					n++
				}
			}
		}
		return n
	}
	if rows(0, 11) == 0 {
		t.Error("no title pixels")
	}
	if rows(11, 21) == 0 {
		t.Error("no clock pixels")
	}
	if n := rows(24, img.Rect.Dy()); n != 0 {
		t.Errorf("%d pixels below the clock", n)
	}
}
