package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/colorogram/pkg/canvas"
)

func TestParseScale(t *testing.T) {
	cases := []struct {
		in   string
		want Scale
		ok   bool
	}{
		{"linear", Linear, true},
		{"LIN", Linear, true},
		{" log ", Logarithmic, true},
		{"Logarithmic", Logarithmic, true},
		{"sqrt", Linear, false},
		{"", Linear, false},
	}
	for _, c := range cases {
		got, err := ParseScale(c.in)
		if !c.ok {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	var s Scale
	require.NoError(t, s.UnmarshalText([]byte("log")))
	assert.Equal(t, Logarithmic, s)
	b, err := s.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "log", string(b))
}

func TestScaleDegenerateInputs(t *testing.T) {
	cases := []struct {
		name  string
		scale Scale
		v     float64
		peak  float64
		want  uint8
	}{
		{"linear zero peak", Linear, 0, 0, 0},
		{"linear full", Linear, 7, 7, 255},
		{"linear half", Linear, 5, 10, 127},
		{"log zero value", Logarithmic, 0, 100, 0},
		{"log peak one", Logarithmic, 1, 1, 0},
		{"log peak zero", Logarithmic, 0, 0, 0},
		{"log value one", Logarithmic, 1, 50, 0},
		{"log full", Logarithmic, 50, 50, 255},
		{"log above peak clamps", Logarithmic, 500, 50, 255},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.scale.Brightness(c.v, c.peak))
		})
	}
}

func TestBarHeight(t *testing.T) {
	assert.Equal(t, 50, Linear.BarHeight(49.8, 100, 100))
	assert.Equal(t, 0, Linear.BarHeight(10, 0, 100))
	assert.Equal(t, 100, Linear.BarHeight(100, 100, 100))
	assert.Equal(t, 5, Logarithmic.BarHeight(10, 100, 10))
}

func TestLabelDrawsText(t *testing.T) {
	c, err := canvas.New(80, 20)
	require.NoError(t, err)
	Label(c, MaxLabel(Histogram{Max: 1234}))
	lit := 0
	for _, b := range c.Bytes() {
		if b != 0 {
			lit++
		}
	}
	assert.Positive(t, lit)
	// the caption stays in the top-left corner
	assert.Equal(t, canvas.Black, c.RGBAt(79, 19))

	assert.Equal(t, "max 1234", MaxLabel(Histogram{Max: 1234}))

	blank, err := canvas.New(10, 10)
	require.NoError(t, err)
	Label(blank, "")
	for _, b := range blank.Bytes() {
		require.Equal(t, byte(0), b)
	}
}
