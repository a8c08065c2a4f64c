package st7789

import (
	"image"
	"image/color"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		src, dst image.Point
		want     image.Rectangle
	}{
		{image.Pt(128, 64), image.Pt(240, 240), image.Rect(0, 60, 240, 180)},
		{image.Pt(64, 128), image.Pt(240, 240), image.Rect(60, 0, 180, 240)},
		{image.Pt(240, 240), image.Pt(240, 240), image.Rect(0, 0, 240, 240)},
	}
	for _, test := range tests {
		if got := Fit(test.src, test.dst); got != test.want {
			t.Errorf("Fit(%v, %v) = %v, want %v", test.src, test.dst, got, test.want)
		}
	}
}

func TestConvert(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 0xff})
	img.SetGray(1, 0, color.Gray{Y: 0x00})
	got := Convert(nil, img, image.Pt(4, 2))
	want := []byte{
		0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00,
		0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00,
	}
	if string(got) != string(want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestRGB565(t *testing.T) {
	for y := range 256 {
		c := rgb565(uint8(y))
		r, g, b := c>>11, (c>>5)&0x3f, c&0x1f
		if r != uint16(y)>>3 || g != uint16(y)>>2 || b != uint16(y)>>3 {
			t.Errorf("rgb565(%#x) = %#04x", y, c)
		}
	}
}
