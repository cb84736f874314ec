// Package canvas holds an owned RGB pixel buffer with content-preserving
// resize, clipped blitting and stacking of rendered images below a source.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrBufferSize is returned when a byte buffer does not hold exactly
// 3*width*height bytes.
var ErrBufferSize = errors.New("rgb buffer size does not match dimensions")

// Canvas is a row-major buffer of Colors. len(pix) always equals
// dims.Len().
//
// Canvas implements draw.Image so it can be handed to image encoders and
// font drawers directly.
type Canvas struct {
	dims Dimensions
	pix  []Color
}

// New returns a black canvas. Zero-sized canvases are valid and empty.
func New(width, height int) (*Canvas, error) {
	d := Dims(width, height)
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &Canvas{dims: d, pix: make([]Color, d.Len())}, nil
}

// FromBuffer builds a canvas from tightly packed R,G,B bytes.
func FromBuffer(rgb []byte, width, height int) (*Canvas, error) {
	c, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if len(rgb) != 3*c.dims.Len() {
		return nil, fmt.Errorf("%w: got %d bytes for %s", ErrBufferSize, len(rgb), c.dims)
	}
	for i := range c.pix {
		c.pix[i] = Color{R: rgb[3*i], G: rgb[3*i+1], B: rgb[3*i+2]}
	}
	return c, nil
}

// FromImage converts any image to a canvas anchored at (0,0). Every pixel
// goes through Model, so alpha is dropped from straight RGB at any bit
// depth.
func FromImage(src image.Image) *Canvas {
	if src == nil {
		return &Canvas{}
	}
	b := src.Bounds()
	c := &Canvas{dims: Dims(b.Dx(), b.Dy()), pix: make([]Color, b.Dx()*b.Dy())}
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < c.dims.Height; y++ {
			for x := 0; x < c.dims.Width; x++ {
				i := n.PixOffset(b.Min.X+x, b.Min.Y+y)
				c.pix[c.dims.Index(x, y)] = Color{R: n.Pix[i+0], G: n.Pix[i+1], B: n.Pix[i+2]}
			}
		}
		return c
	}
	if rgba, ok := src.(*image.RGBA); ok {
		for y := 0; y < c.dims.Height; y++ {
			for x := 0; x < c.dims.Width; x++ {
				i := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
				p := color.RGBA{R: rgba.Pix[i+0], G: rgba.Pix[i+1], B: rgba.Pix[i+2], A: rgba.Pix[i+3]}
				if p.A == 0xff {
					c.pix[c.dims.Index(x, y)] = Color{R: p.R, G: p.G, B: p.B}
				} else {
					c.pix[c.dims.Index(x, y)] = Model.Convert(p).(Color)
				}
			}
		}
		return c
	}
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c.pix[idx] = Model.Convert(src.At(x, y)).(Color)
			idx++
		}
	}
	return c
}

// Dimensions returns the current size.
func (c *Canvas) Dimensions() Dimensions {
	return c.dims
}

// Width is shorthand for Dimensions().Width.
func (c *Canvas) Width() int { return c.dims.Width }

// Height is shorthand for Dimensions().Height.
func (c *Canvas) Height() int { return c.dims.Height }

// RGBAt returns the pixel at (x, y), or black outside the canvas.
func (c *Canvas) RGBAt(x, y int) Color {
	if !c.dims.Contains(x, y) {
		return Black
	}
	return c.pix[c.dims.Index(x, y)]
}

// SetRGB writes the pixel at (x, y). Writes outside the canvas are ignored.
func (c *Canvas) SetRGB(x, y int, col Color) {
	if !c.dims.Contains(x, y) {
		return
	}
	c.pix[c.dims.Index(x, y)] = col
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model { return Model }

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.dims.Width, c.dims.Height)
}

// At implements image.Image.
func (c *Canvas) At(x, y int) color.Color { return c.RGBAt(x, y) }

// Set implements draw.Image.
func (c *Canvas) Set(x, y int, col color.Color) {
	c.SetRGB(x, y, Model.Convert(col).(Color))
}

// Resize reallocates the buffer to d, keeping the pixels in the overlap of
// the old and new sizes. Newly exposed pixels are black. The previous
// dimensions are returned.
func (c *Canvas) Resize(d Dimensions) (Dimensions, error) {
	old := c.dims
	if err := d.validate(); err != nil {
		return old, err
	}
	if d == old {
		return old, nil
	}
	pix := make([]Color, d.Len())
	w := min(old.Width, d.Width)
	h := min(old.Height, d.Height)
	for y := 0; y < h; y++ {
		copy(pix[d.Index(0, y):d.Index(w, y)], c.pix[old.Index(0, y):old.Index(w, y)])
	}
	c.dims = d
	c.pix = pix
	return old, nil
}

// Blit copies every pixel of src into c with src's origin at `at`.
// Destination pixels falling outside c are skipped.
func (c *Canvas) Blit(src *Canvas, at image.Point) {
	if src == nil {
		return
	}
	// overlap in destination space
	x0 := max(at.X, 0)
	y0 := max(at.Y, 0)
	x1 := min(at.X+src.dims.Width, c.dims.Width)
	y1 := min(at.Y+src.dims.Height, c.dims.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for y := y0; y < y1; y++ {
		srow := src.dims.Index(x0-at.X, y-at.Y)
		copy(c.pix[c.dims.Index(x0, y):c.dims.Index(x1, y)], src.pix[srow:srow+(x1-x0)])
	}
}

// Bytes flattens the canvas to 3*W*H bytes in R,G,B row-major order.
func (c *Canvas) Bytes() []byte {
	out := make([]byte, 3*len(c.pix))
	for i, p := range c.pix {
		out[3*i+0] = p.R
		out[3*i+1] = p.G
		out[3*i+2] = p.B
	}
	return out
}

// Clone returns a deep copy of c.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{dims: c.dims, pix: make([]Color, len(c.pix))}
	copy(out.pix, c.pix)
	return out
}
