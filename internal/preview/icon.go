package preview

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var errIconBits = errors.New("icon bitmap bits unavailable")

// placeholderColor fills the stand-in square shown when an icon exists but
// its pixels cannot be read.
var placeholderColor = color.NRGBA{R: 0xC8, G: 0xC8, B: 0xC8, A: 0xFF}

const placeholderSize = 32

// iconGuard owns the native handles behind an extracted icon. Release must
// be called exactly once on every path.
type iconGuard interface {
	// Pixels returns top-down 32-bit BGRA rows.
	Pixels() (width, height int, bgra []byte, err error)
	Release()
}

type appIconDecoder struct {
	box     box
	extract func(path string) (iconGuard, error)
}

func newAppIconDecoder(opts Options) *appIconDecoder {
	return &appIconDecoder{box: opts.iconBox(), extract: extractIcon}
}

func (d *appIconDecoder) Decode(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	guard, err := d.extract(path)
	if err != nil {
		return nil, err
	}
	defer guard.Release()
	return fitWithin(iconImage(guard), d.box), nil
}

func iconImage(guard iconGuard) image.Image {
	width, height, pix, err := guard.Pixels()
	if err != nil || width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return placeholderIcon()
	}
	return flatten(bgraToNRGBA(pix, width, height, false))
}

func placeholderIcon() image.Image {
	return imaging.New(placeholderSize, placeholderSize, placeholderColor)
}
