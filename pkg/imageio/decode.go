package imageio

import (
	"bufio"
	"image"
	"os"

	"github.com/Fepozopo/colorogram/pkg/canvas"

	// registered decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered format from path and returns its size and
// pixels as R,G,B bytes in row-major order. Alpha is discarded; the
// straight color components are kept whatever the source bit depth.
func Decode(path string) (width, height int, rgb []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return 0, 0, nil, &DecodeError{Path: path, Err: err}
	}
	c := canvas.FromImage(img)
	return c.Width(), c.Height(), c.Bytes(), nil
}
