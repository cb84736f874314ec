package canvas

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimensions is returned when a size is negative, overflows the
// index space, or is zero where a renderer needs to divide by it.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Dims is shorthand for Dimensions{Width: w, Height: h}.
func Dims(w, h int) Dimensions {
	return Dimensions{Width: w, Height: h}
}

// Index linearizes (x, y) in row-major order.
func (d Dimensions) Index(x, y int) int {
	return y*d.Width + x
}

// Len is the number of pixels covered by d.
func (d Dimensions) Len() int {
	return d.Width * d.Height
}

// Contains reports whether (x, y) lies inside d.
func (d Dimensions) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.Width && y < d.Height
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// validate rejects negative sizes and sizes whose byte length (3 per
// pixel) would not fit in an int.
func (d Dimensions) validate() error {
	if d.Width < 0 || d.Height < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDimensions, d)
	}
	if d.Width > 0 && d.Height > (math.MaxInt/3)/d.Width {
		return fmt.Errorf("%w: %s overflows", ErrInvalidDimensions, d)
	}
	return nil
}
