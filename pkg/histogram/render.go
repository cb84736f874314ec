package histogram

import (
	"fmt"
	"math"

	"github.com/Fepozopo/colorogram/pkg/canvas"
)

// Renderer draws a Histogram as an overlaid R/G/B bar chart. Each output
// column is interpolated between the two nearest buckets so the chart
// stays smooth when Width != 256.
type Renderer struct {
	Width  int
	Height int
	Scale  Scale
}

// Render draws h on a black Width x Height canvas. Bars grow up from the
// bottom row; each channel only sets its own component, so overlapping
// bars mix (all three give white).
func (r Renderer) Render(h Histogram) (*canvas.Canvas, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("histogram %dx%d: %w", r.Width, r.Height, canvas.ErrInvalidDimensions)
	}
	out, err := canvas.New(r.Width, r.Height)
	if err != nil {
		return nil, err
	}
	channels := h.Channels()
	for x := 0; x < r.Width; x++ {
		pos := float64(x) * (Buckets - 1) / float64(r.Width)
		col := int(math.Floor(pos))
		next := min(col+1, Buckets-1)
		percent := pos - float64(col)

		var bars [3]int
		for c, values := range channels {
			v := lerp(values[col], values[next], percent)
			bars[c] = min(r.Scale.BarHeight(v, h.Max, r.Height), r.Height)
		}
		for y := 0; y < r.Height; y++ {
			fromBottom := r.Height - y
			var p canvas.Color
			if bars[0] >= fromBottom {
				p.R = 255
			}
			if bars[1] >= fromBottom {
				p.G = 255
			}
			if bars[2] >= fromBottom {
				p.B = 255
			}
			out.SetRGB(x, y, p)
		}
	}
	return out, nil
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}
