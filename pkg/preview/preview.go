// Package preview shows rendered images inline in terminals that speak
// the kitty graphics protocol or the iTerm2 inline-image OSC sequence.
//
// Detection is heuristic and driven by environment variables:
//   - kitty: KITTY_WINDOW_ID set, or TERM containing "kitty"/"ghostty".
//   - inline: TERM_PROGRAM one of iTerm.app, WezTerm, vscode, ... or
//     ITERM_SESSION_ID set.
//
// COLOROGRAM_PREVIEW_BACKEND=kitty|inline forces a backend.
package preview

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

// ErrUnsupportedTerminal is returned when no inline-image protocol was detected.
var ErrUnsupportedTerminal = errors.New("terminal does not support inline images")

// Backend is an inline-image protocol.
type Backend string

const (
	None   Backend = ""
	Kitty  Backend = "kitty"
	Inline Backend = "inline"
)

// Detect picks a backend from the environment using getenv (os.Getenv
// when nil).
func Detect(getenv func(string) string) Backend {
	if getenv == nil {
		getenv = os.Getenv
	}
	switch Backend(strings.ToLower(getenv("COLOROGRAM_PREVIEW_BACKEND"))) {
	case Kitty:
		return Kitty
	case Inline:
		return Inline
	}
	switch getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby", "Bobcat":
		return Inline
	}
	if getenv("ITERM_SESSION_ID") != "" {
		return Inline
	}
	if getenv("KITTY_WINDOW_ID") != "" {
		return Kitty
	}
	term := strings.ToLower(getenv("TERM"))
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return Kitty
	}
	if strings.Contains(term, "wezterm") {
		return Inline
	}
	return None
}

// Size is a placement in terminal character cells.
type Size struct {
	Cols        int
	Rows        int
	PixelWidth  int
	PixelHeight int
}

// character cell assumptions and placement clamps
const (
	cellW   = 8
	cellH   = 16
	minCols = 6
	minRows = 3
	maxCols = 80
	maxRows = 40
)

// Fit maps an image size onto a cell placement, preserving aspect ratio
// and never scaling up.
func Fit(w, h int) Size {
	if w <= 0 || h <= 0 {
		return Size{Cols: minCols, Rows: minRows, PixelWidth: minCols * cellW, PixelHeight: minRows * cellH}
	}
	scale := math.Min(1, math.Min(float64(maxCols*cellW)/float64(w), float64(maxRows*cellH)/float64(h)))
	cols := int(math.Round(float64(w) * scale / cellW))
	rows := int(math.Round(float64(h) * scale / cellH))
	cols = min(max(cols, minCols), maxCols)
	rows = min(max(rows, minRows), maxRows)
	return Size{Cols: cols, Rows: rows, PixelWidth: cols * cellW, PixelHeight: rows * cellH}
}

// Show PNG-encodes img and writes it to out using backend.
func Show(out io.Writer, backend Backend, img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	if backend == None {
		return ErrUnsupportedTerminal
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	b := img.Bounds()
	size := Fit(b.Dx(), b.Dy())
	slog.Debug("terminal preview", "backend", string(backend), "bytes", buf.Len(), "cols", size.Cols, "rows", size.Rows)
	switch backend {
	case Kitty:
		return writeKitty(out, buf.Bytes(), size)
	case Inline:
		return writeInline(out, buf.Bytes(), size)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedTerminal, backend)
	}
}

// kittyChunk is the maximum base64 payload per escape sequence.
const kittyChunk = 4096

// writeKitty transmits PNG data with the kitty graphics protocol. The
// first chunk carries the control keys (transmit+display, direct payload,
// quiet, placement); later chunks carry only the m flag.
func writeKitty(out io.Writer, data []byte, size Size) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for pos := 0; pos < len(enc); pos += kittyChunk {
		end := min(pos+kittyChunk, len(enc))
		more := 0
		if end < len(enc) {
			more = 1
		}
		var err error
		if pos == 0 {
			_, err = fmt.Fprintf(out, "\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%d;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			_, err = fmt.Fprintf(out, "\x1b_Gm=%d;%s\x1b\\", more, enc[pos:end])
		}
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, "\n")
	return err
}

// writeInline emits the iTerm2 OSC 1337 inline file sequence.
func writeInline(out io.Writer, data []byte, size Size) error {
	_, err := fmt.Fprintf(out, "\x1b]1337;File=name=%s;inline=1;size=%d;width=%dpx;height=%dpx:%s\a\n",
		base64.StdEncoding.EncodeToString([]byte("colorogram.png")),
		len(data), size.PixelWidth, size.PixelHeight,
		base64.StdEncoding.EncodeToString(data))
	return err
}
