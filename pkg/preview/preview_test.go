package preview

import (
	"bytes"
	"image"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want Backend
	}{
		{"nothing", nil, None},
		{"kitty window", map[string]string{"KITTY_WINDOW_ID": "1"}, Kitty},
		{"ghostty term", map[string]string{"TERM": "xterm-ghostty"}, Kitty},
		{"iterm", map[string]string{"TERM_PROGRAM": "iTerm.app"}, Inline},
		{"wezterm", map[string]string{"TERM_PROGRAM": "WezTerm", "KITTY_WINDOW_ID": "1"}, Inline},
		{"override", map[string]string{"TERM_PROGRAM": "iTerm.app", "COLOROGRAM_PREVIEW_BACKEND": "KITTY"}, Kitty},
		{"plain xterm", map[string]string{"TERM": "xterm-256color"}, None},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Detect(env(c.env)))
		})
	}
}

func TestFit(t *testing.T) {
	small := Fit(16, 32)
	assert.Equal(t, minCols, small.Cols)
	assert.Equal(t, minRows, small.Rows)

	wide := Fit(4000, 1000)
	assert.Equal(t, maxCols, wide.Cols)
	assert.Equal(t, 10, wide.Rows)
	assert.Equal(t, wide.Cols*cellW, wide.PixelWidth)

	assert.Equal(t, Fit(0, 10), Fit(-1, -1))
}

func TestShowKittyChunks(t *testing.T) {
	// random pixels keep the PNG well above one 4096-byte base64 chunk
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	rand.New(rand.NewSource(1)).Read(img.Pix)
	var out bytes.Buffer
	require.NoError(t, Show(&out, Kitty, img))
	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\x1b_Ga=T,f=100,t=d,q=2,"))
	assert.Contains(t, s, ",m=1;")
	assert.Contains(t, s, "\x1b_Gm=0;")
	assert.Equal(t, 1, strings.Count(s, "a=T"))
}

func TestShowInline(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Show(&out, Inline, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	assert.True(t, strings.HasPrefix(out.String(), "\x1b]1337;File=name="))
	assert.Contains(t, out.String(), "inline=1;")
}

func TestShowUnsupported(t *testing.T) {
	var out bytes.Buffer
	err := Show(&out, None, image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	assert.ErrorIs(t, err, ErrUnsupportedTerminal)
	assert.Zero(t, out.Len())
}
