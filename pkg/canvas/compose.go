package canvas

import "image"

// Compose stacks rendered below source. source is resized in place to
// the wider of the two widths and the sum of both heights, rendered is
// blitted at (0, old source height), and source is returned.
func Compose(source, rendered *Canvas) (*Canvas, error) {
	if rendered == nil {
		return source, nil
	}
	if source == nil {
		return rendered, nil
	}
	d := Dims(
		max(source.dims.Width, rendered.dims.Width),
		source.dims.Height+rendered.dims.Height,
	)
	old, err := source.Resize(d)
	if err != nil {
		return nil, err
	}
	source.Blit(rendered, image.Pt(0, old.Height))
	return source, nil
}
