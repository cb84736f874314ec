package histogram

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/colorogram/pkg/canvas"
)

func uniformColumn(t *testing.T, h int, col canvas.Color) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(1, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		c.SetRGB(0, y, col)
	}
	return c
}

func TestWaveformUniformColumn(t *testing.T) {
	src := uniformColumn(t, 10, canvas.Color{R: 128, G: 0, B: 77})
	out, err := NewWaveform(128).Render(src)
	require.NoError(t, err)
	assert.Equal(t, canvas.Dims(1, 128), out.Dimensions())

	for y := 0; y < 128; y++ {
		p := out.RGBAt(0, y)
		yInv := 127 - y
		switch yInv {
		case 64: // round(64/128*255) == 128
			assert.Equal(t, uint8(255), p.R, "row %d", y)
		default:
			assert.Equal(t, uint8(0), p.R, "row %d", y)
		}
		if yInv == 0 {
			assert.Equal(t, uint8(255), p.G)
		} else {
			assert.Equal(t, uint8(0), p.G, "row %d", y)
		}
	}
	// bucket 77 is not hit by any row at this height
	for y := 0; y < 128; y++ {
		assert.Equal(t, uint8(0), out.RGBAt(0, y).B)
	}
}

func TestWaveformSinglePixelColumnIsDark(t *testing.T) {
	src := uniformColumn(t, 1, canvas.Black)
	out, err := NewWaveform(64).Render(src)
	require.NoError(t, err)
	for _, b := range out.Bytes() {
		require.Equal(t, byte(0), b)
	}

	// linear mode has no log base and lights bucket 0 at the bottom row
	lin, err := Waveform{Height: 4, Scale: Linear}.Render(src)
	require.NoError(t, err)
	assert.Equal(t, canvas.White, lin.RGBAt(0, 3))
	assert.Equal(t, canvas.Black, lin.RGBAt(0, 2))
}

func TestWaveformLocalMax(t *testing.T) {
	src, err := canvas.New(2, 8)
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		v := uint8(0)
		if y >= 4 {
			v = 200
		}
		src.SetRGB(1, y, canvas.Color{R: v, G: v, B: v})
	}
	out, err := NewWaveform(256).Render(src)
	require.NoError(t, err)

	// yInv 0 -> bucket 0, yInv 201 -> bucket 200. Column 1 peaks at 4, so
	// its half-filled buckets are still full brightness.
	assert.Equal(t, canvas.White, out.RGBAt(0, 255))
	assert.Equal(t, canvas.White, out.RGBAt(1, 255))
	assert.Equal(t, canvas.White, out.RGBAt(1, 255-201))
	assert.Equal(t, canvas.Black, out.RGBAt(0, 255-201))
}

func TestWaveformBrightness(t *testing.T) {
	// 100 black pixels set the peak; 10 white pixels give log_100(10) = 0.5
	src, err := canvas.New(1, 110)
	require.NoError(t, err)
	for y := 100; y < 110; y++ {
		src.SetRGB(0, y, canvas.White)
	}
	// at height 512 the top row (yInv 511) maps to bucket 255
	out, err := NewWaveform(512).Render(src)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.RGBAt(0, 511).R)
	assert.Equal(t, uint8(127), out.RGBAt(0, 0).R)
	assert.Equal(t, uint8(0), out.RGBAt(0, 256).R)

	lin, err := Waveform{Height: 512, Scale: Linear}.Render(src)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), lin.RGBAt(0, 511).G)
	assert.Equal(t, uint8(25), lin.RGBAt(0, 0).G)
}

func TestWaveformInvalid(t *testing.T) {
	src := uniformColumn(t, 4, canvas.White)
	_, err := NewWaveform(0).Render(src)
	assert.ErrorIs(t, err, canvas.ErrInvalidDimensions)

	empty, err := canvas.New(0, 3)
	require.NoError(t, err)
	_, err = NewWaveform(10).Render(empty)
	assert.ErrorIs(t, err, canvas.ErrInvalidDimensions)

	_, err = NewWaveform(10).Render(nil)
	assert.ErrorIs(t, err, canvas.ErrInvalidDimensions)
}

func TestWaveformWorkersAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	buf := make([]byte, 3*37*23)
	rng.Read(buf)
	src, err := canvas.FromBuffer(buf, 37, 23)
	require.NoError(t, err)

	serial, err := Waveform{Height: 40, Scale: Logarithmic, Workers: 1}.Render(src)
	require.NoError(t, err)
	for _, n := range []int{2, 5, 64} {
		par, err := Waveform{Height: 40, Scale: Logarithmic, Workers: n}.Render(src)
		require.NoError(t, err)
		assert.Equal(t, serial.Bytes(), par.Bytes(), "workers=%d", n)
	}
}

func BenchmarkWaveform(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	buf := make([]byte, 3*512*512)
	rng.Read(buf)
	src, err := canvas.FromBuffer(buf, 512, 512)
	if err != nil {
		b.Fatal(err)
	}
	w := NewWaveform(128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.Render(src); err != nil {
			b.Fatal(err)
		}
	}
}
