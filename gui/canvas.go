package gui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Font int

const (
	FontPrimary Font = iota
	FontSecondary
	maxFont
)

type Color int

const (
	ColorBlack Color = iota
	ColorWhite
)

var (
	ink   = color.Gray{Y: 0x00}
	paper = color.Gray{Y: 0xff}
)

// Canvas is the monochrome drawing surface passed to draw callbacks.
// Coordinates are in canvas pixels; strings are drawn with their
// baseline at y.
type Canvas struct {
	img   *image.Gray
	faces [maxFont]font.Face
	font  Font
	color Color
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		img: image.NewGray(image.Rect(0, 0, width, height)),
	}
	c.faces[FontPrimary] = loadFace(gobold.TTF, 10)
	c.faces[FontSecondary] = loadFace(goregular.TTF, 8)
	c.Clear()
	return c
}

func loadFace(ttf []byte, size float64) font.Face {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err)
	}
	return face
}

func (c *Canvas) reset() {
	c.font = FontPrimary
	c.color = ColorBlack
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.Gray {
	return c.img
}

func (c *Canvas) Width() int {
	return c.img.Rect.Dx()
}

func (c *Canvas) Height() int {
	return c.img.Rect.Dy()
}

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Rect, image.NewUniform(paper), image.Point{}, draw.Src)
}

func (c *Canvas) SetFont(f Font) {
	if f < 0 || f >= maxFont {
		panic("gui: invalid font")
	}
	c.font = f
}

func (c *Canvas) SetColor(col Color) {
	c.color = col
}

func (c *Canvas) src() image.Image {
	if c.color == ColorWhite {
		return image.NewUniform(paper)
	}
	return image.NewUniform(ink)
}

// DrawStr draws s in the current font and color with its baseline
// starting at (x, y).
func (c *Canvas) DrawStr(x, y int, s string) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  c.src(),
		Face: c.faces[c.font],
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// StringWidth returns the advance of s in the current font.
func (c *Canvas) StringWidth(s string) int {
	return font.MeasureString(c.faces[c.font], s).Ceil()
}
