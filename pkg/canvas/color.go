package canvas

import "image/color"

// Color is an opaque 8-bit RGB pixel. The zero value is black.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Model converts any color to a Color by taking its straight
// (non-premultiplied) components and dropping alpha. NRGBA and NRGBA64
// values keep their stored components exactly; other colors are
// un-premultiplied through color.NRGBAModel first.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	switch c := c.(type) {
	case Color:
		return c
	case color.NRGBA:
		return Color{R: c.R, G: c.G, B: c.B}
	case color.NRGBA64:
		return Color{R: uint8(c.R >> 8), G: uint8(c.G >> 8), B: uint8(c.B >> 8)}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
})
