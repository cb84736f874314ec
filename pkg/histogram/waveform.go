package histogram

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Fepozopo/colorogram/pkg/canvas"
)

// Waveform renders a scope: one output column per source column, where
// each output row shows how many of that column's pixels have the
// corresponding intensity. Low intensities are drawn at the bottom.
//
// Every column is normalized against its own peak bucket, unlike
// Renderer which uses one image-wide maximum.
type Waveform struct {
	Height int
	// Scale defaults to Logarithmic in NewWaveform; the zero value is Linear.
	Scale Scale
	// Workers bounds the goroutines rendering columns; <= 0 uses GOMAXPROCS.
	Workers int
}

// NewWaveform returns a logarithmic waveform of the given output height.
func NewWaveform(height int) Waveform {
	return Waveform{Height: height, Scale: Logarithmic}
}

// Render produces a src.Width x w.Height scope of src.
func (w Waveform) Render(src *canvas.Canvas) (*canvas.Canvas, error) {
	if src == nil || src.Width() == 0 || src.Height() == 0 || w.Height <= 0 {
		d := canvas.Dims(0, 0)
		if src != nil {
			d = src.Dimensions()
		}
		return nil, fmt.Errorf("waveform of %s at height %d: %w", d, w.Height, canvas.ErrInvalidDimensions)
	}
	out, err := canvas.New(src.Width(), w.Height)
	if err != nil {
		return nil, err
	}

	// bucket for each output row, bottom (yInv == 0) first
	rows := make([]int, w.Height)
	for yInv := range rows {
		rows[yInv] = int(math.Round(float64(yInv) / float64(w.Height) * (Buckets - 1)))
	}

	workers := w.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	chunk := max(1, (src.Width()+workers-1)/workers)
	for start := 0; start < src.Width(); start += chunk {
		end := min(start+chunk, src.Width())
		g.Go(func() error {
			for x := start; x < end; x++ {
				w.renderColumn(out, src, x, rows)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// renderColumn writes only column x of out.
func (w Waveform) renderColumn(out, src *canvas.Canvas, x int, rows []int) {
	h := CountColumn(src, x)
	for yInv, idx := range rows {
		out.SetRGB(x, w.Height-1-yInv, canvas.Color{
			R: w.Scale.Brightness(h.Red[idx], h.Max),
			G: w.Scale.Brightness(h.Green[idx], h.Max),
			B: w.Scale.Brightness(h.Blue[idx], h.Max),
		})
	}
}
