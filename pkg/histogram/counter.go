// Package histogram counts per-channel intensity frequencies of RGB pixel
// data and renders them as a bar chart or a column-wise waveform scope.
package histogram

import "github.com/Fepozopo/colorogram/pkg/canvas"

// Buckets is the number of intensity values per 8-bit channel.
const Buckets = 256

// Histogram holds per-channel bucket counts and the largest single bucket
// across all three channels. Counts are float64 so renderers can
// interpolate between buckets without conversion.
type Histogram struct {
	Max   float64
	Red   [Buckets]float64
	Green [Buckets]float64
	Blue  [Buckets]float64
}

// Count tallies interleaved R,G,B bytes. Byte i goes to the red, green or
// blue histogram by i%3; pixel geometry is irrelevant.
func Count(buf []byte) Histogram {
	var h Histogram
	for i, v := range buf {
		switch i % 3 {
		case 0:
			h.Red[v]++
		case 1:
			h.Green[v]++
		default:
			h.Blue[v]++
		}
	}
	h.updateMax()
	return h
}

// CountColumn tallies the pixels of column x of c. Columns outside the
// canvas yield an empty histogram.
func CountColumn(c *canvas.Canvas, x int) Histogram {
	var h Histogram
	if x < 0 || x >= c.Width() {
		return h
	}
	for y := 0; y < c.Height(); y++ {
		p := c.RGBAt(x, y)
		h.Red[p.R]++
		h.Green[p.G]++
		h.Blue[p.B]++
	}
	h.updateMax()
	return h
}

func (h *Histogram) updateMax() {
	m := 0.0
	for i := 0; i < Buckets; i++ {
		m = max(m, h.Red[i], h.Green[i], h.Blue[i])
	}
	h.Max = m
}

// Channels returns the three bucket arrays in R, G, B order.
func (h *Histogram) Channels() [3]*[Buckets]float64 {
	return [3]*[Buckets]float64{&h.Red, &h.Green, &h.Blue}
}
