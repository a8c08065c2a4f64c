package st7789

import "image"

// Fit returns the largest rectangle with the aspect ratio of src that
// fits in dst, centered.
func Fit(src, dst image.Point) image.Rectangle {
	var sz image.Point
	if dst.X*src.Y <= dst.Y*src.X {
		sz = image.Pt(dst.X, src.Y*dst.X/src.X)
	} else {
		sz = image.Pt(src.X*dst.Y/src.Y, dst.Y)
	}
	off := dst.Sub(sz).Div(2)
	return image.Rectangle{Min: off, Max: off.Add(sz)}
}

// Convert appends img scaled to size as big-endian RGB565 pixels, the
// panel's native format.
func Convert(buf []byte, img *image.Gray, size image.Point) []byte {
	src := img.Rect.Size()
	for y := range size.Y {
		sy := img.Rect.Min.Y + y*src.Y/size.Y
		for x := range size.X {
			sx := img.Rect.Min.X + x*src.X/size.X
			c := rgb565(img.GrayAt(sx, sy).Y)
			buf = append(buf, byte(c>>8), byte(c))
		}
	}
	return buf
}

func rgb565(y uint8) uint16 {
	return uint16(y&0xf8)<<8 | uint16(y&0xfc)<<3 | uint16(y)>>3
}
