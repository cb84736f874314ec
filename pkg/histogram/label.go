package histogram

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Fepozopo/colorogram/pkg/canvas"
)

// labelMargin is the gap in pixels between the caption and the canvas edge.
const labelMargin = 2

// Label draws text in the top-left corner of c using the built-in 7x13
// face. Text that does not fit is clipped by the canvas bounds.
func Label(c *canvas.Canvas, text string) {
	if c == nil || text == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  c,
		Src:  image.NewUniform(canvas.White),
		Face: face,
		Dot:  fixed.P(labelMargin, labelMargin+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// MaxLabel is the caption used for a histogram: its peak bucket count.
func MaxLabel(h Histogram) string {
	return fmt.Sprintf("max %.0f", h.Max)
}
