package preview

import (
	"errors"
	"image"
	"image/png"
	"io"
)

// Result is either a decoded image or the reason there is none.
type Result struct {
	Path   string
	Kind   Kind
	Image  image.Image
	Reason string
}

// Available reports whether the result carries an image.
func (r Result) Available() bool { return r.Image != nil }

// Size returns the image dimensions, or zeros when unavailable.
func (r Result) Size() (int, int) {
	if r.Image == nil {
		return 0, 0
	}
	b := r.Image.Bounds()
	return b.Dx(), b.Dy()
}

// WritePNG encodes the preview image as PNG.
func (r Result) WritePNG(w io.Writer) error {
	if r.Image == nil {
		return errors.New("preview: no image to encode: " + r.Reason)
	}
	return png.Encode(w, r.Image)
}
