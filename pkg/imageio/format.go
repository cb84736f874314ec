// Package imageio converts between image files and tightly packed 8-bit
// RGB buffers. It is the only place that touches the filesystem for
// pixel data.
package imageio

import (
	"path/filepath"
	"strings"
)

// Format identifies an image container.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WebP Format = "webp"
)

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".webp": WebP,
}

// FormatFromPath infers the format from the file extension. Paths without
// a known extension fall back to PNG.
func FormatFromPath(path string) Format {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return PNG
}

// CanEncode reports whether Encode can write f.
func (f Format) CanEncode() bool {
	return f != WebP
}
