package imageio

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when a format can be read but not written.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// DecodeError reports a missing, unreadable or corrupt input image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports an unwritable destination or unsupported format.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
