package st7789

import (
	"image"
	"io"
	"sync"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
)

func openTestLCD(t *testing.T) (*LCD, *gpiotest.Pin) {
	t.Helper()
	bl := &gpiotest.Pin{N: "GPIO24"}
	l, err := open(spitest.NewRecordRaw(io.Discard), Config{
		Speed:     40 * physic.MegaHertz,
		Size:      image.Pt(240, 240),
		CS:        &gpiotest.Pin{N: "GPIO8"},
		Reset:     &gpiotest.Pin{N: "GPIO27"},
		DC:        &gpiotest.Pin{N: "GPIO25"},
		Backlight: bl,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l, bl
}

func TestBacklightWaitsForFirstFrame(t *testing.T) {
	l, bl := openTestLCD(t)
	if bl.Read() != gpio.Low {
		t.Fatal("backlight on before the first frame")
	}
	if err := l.SetBacklight(0xff); err != nil {
		t.Fatal(err)
	}
	if bl.Read() != gpio.Low {
		t.Fatal("backlight on before the first frame")
	}
	if err := l.Flush(image.NewGray(image.Rect(0, 0, 128, 64))); err != nil {
		t.Fatal(err)
	}
	if bl.Read() != gpio.High {
		t.Error("backlight off after the first frame")
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if bl.Read() != gpio.Low {
		t.Error("backlight on after Close")
	}
}

func TestFlushKeepsBacklightOff(t *testing.T) {
	l, bl := openTestLCD(t)
	img := image.NewGray(image.Rect(0, 0, 128, 64))
	if err := l.Flush(img); err != nil {
		t.Fatal(err)
	}
	if err := l.SetBacklight(0); err != nil {
		t.Fatal(err)
	}
	img.Pix[0] = 0xff
	if err := l.Flush(img); err != nil {
		t.Fatal(err)
	}
	if bl.Read() != gpio.Low {
		t.Fatal("frame turned the backlight back on")
	}
	if err := l.SetBacklight(0xff); err != nil {
		t.Fatal(err)
	}
	if bl.Read() != gpio.High {
		t.Error("backlight not restored")
	}
}

func TestFlushWhileSwitchingBacklight(t *testing.T) {
	l, bl := openTestLCD(t)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		img := image.NewGray(image.Rect(0, 0, 128, 64))
		for i := range 20 {
			img.Pix[0] = byte(i)
			if err := l.Flush(img); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := range 20 {
			if err := l.SetBacklight(uint8(i % 2 * 0xff)); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	wg.Wait()
	if err := l.SetBacklight(0); err != nil {
		t.Fatal(err)
	}
	if err := l.Flush(image.NewGray(image.Rect(0, 0, 128, 64))); err != nil {
		t.Fatal(err)
	}
	if bl.Read() != gpio.Low {
		t.Error("backlight on after switching it off")
	}
}
