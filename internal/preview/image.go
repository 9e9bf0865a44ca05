package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxDecodePixels caps the dimensions an image header may declare before
// the pixels are decoded.
const maxDecodePixels = 100_000_000

// ErrImageTooLarge reports an image whose header exceeds maxDecodePixels.
var ErrImageTooLarge = errors.New("preview: image too large to decode")

// Background is the colour transparent pixels are composited onto.
var Background = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

type box struct {
	width  int
	height int
}

type imageDecoder struct {
	box box
}

func (d imageDecoder) Decode(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := decodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return fitWithin(flatten(img), d.box), nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxDecodePixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind image: %w", err)
	}
	// Animated GIFs decode to their first frame.
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// flatten converts img into an opaque RGB or grayscale image. Gray stays
// gray; any transparency is composited onto Background.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	switch m := img.(type) {
	case *image.Gray:
		return m
	case *image.Gray16:
		dst := image.NewGray(b)
		draw.Draw(dst, b, m, b.Min, draw.Src)
		return dst
	}
	if isOpaque(img) {
		return imaging.Clone(img)
	}
	bg := imaging.New(b.Dx(), b.Dy(), Background)
	return imaging.Overlay(bg, img, image.Point{}, 1.0)
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

// fitWithin downscales img to fit the box, preserving aspect ratio. Images
// already inside the box are returned as is.
func fitWithin(img image.Image, bounds box) image.Image {
	b := img.Bounds()
	if b.Dx() <= bounds.width && b.Dy() <= bounds.height {
		return img
	}
	return imaging.Fit(img, bounds.width, bounds.height, imaging.Lanczos)
}
