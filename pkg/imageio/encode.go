package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// JPEGQuality is the quality used for .jpg/.jpeg output.
const JPEGQuality = 92

// Encode writes width x height R,G,B bytes to path in the format implied
// by its extension (PNG when the extension is missing or unknown). A
// partially written file is removed on failure.
func Encode(path string, width, height int, rgb []byte) error {
	if width < 0 || height < 0 || len(rgb) != 3*width*height {
		return &EncodeError{Path: path, Err: fmt.Errorf("rgb buffer of %d bytes does not match %dx%d", len(rgb), width, height)}
	}
	format := FormatFromPath(path)
	if !format.CanEncode() {
		return &EncodeError{Path: path, Err: fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)}
	}

	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	w := bufio.NewWriter(f)
	err = EncodeTo(w, format, toNRGBA(width, height, rgb))
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}

// EncodeTo writes img to w in the given format.
func EncodeTo(w io.Writer, format Format, img image.Image) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case GIF:
		return gif.Encode(w, img, nil)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// toNRGBA wraps packed RGB bytes in an opaque image.
func toNRGBA(width, height int, rgb []byte) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
		img.Pix[j+0] = rgb[i+0]
		img.Pix[j+1] = rgb[i+1]
		img.Pix[j+2] = rgb[i+2]
		img.Pix[j+3] = 255
	}
	return img
}
