package preview

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func solid(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestClassify(t *testing.T) {
	cases := map[string]Kind{
		"photo.JPG":        KindImage,
		"scan.tif":         KindImage,
		"favicon.ico":      KindImage,
		"report.Pdf":       KindDocument,
		"clip.m4v":         KindVideo,
		"movie.MKV":        KindVideo,
		"setup.exe":        KindApplication,
		"package.deb":      KindApplication,
		"notes.txt":        KindUnknown,
		"Makefile":         KindUnknown,
		"archive.tar.gz":   KindUnknown,
		"/tmp/dir.png/raw": KindUnknown,
	}
	for name, want := range cases {
		if got := Classify(name); got != want {
			t.Errorf("Classify(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestPreviewDownscalesLargeImage(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "wide.png", solid(1000, 400, color.NRGBA{R: 10, G: 120, B: 200, A: 255}))

	d := NewDispatcher(Capabilities{}, DefaultOptions(), nil)
	result := d.Preview(context.Background(), path)
	if !result.Available() {
		t.Fatalf("expected image, got reason %q", result.Reason)
	}
	if result.Kind != KindImage {
		t.Fatalf("unexpected kind %s", result.Kind)
	}
	w, h := result.Size()
	if w != 500 || h != 200 {
		t.Fatalf("expected 500x200, got %dx%d", w, h)
	}
}

func TestPreviewNeverUpscales(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "tiny.png", solid(20, 10, color.NRGBA{R: 1, G: 2, B: 3, A: 255}))

	d := NewDispatcher(Capabilities{}, DefaultOptions(), nil)
	result := d.Preview(context.Background(), path)
	if w, h := result.Size(); w != 20 || h != 10 {
		t.Fatalf("expected original 20x10, got %dx%d", w, h)
	}
}

func TestPreviewCompositesTransparencyOnBackground(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "clear.png", solid(4, 4, color.NRGBA{}))

	d := NewDispatcher(Capabilities{}, DefaultOptions(), nil)
	result := d.Preview(context.Background(), path)
	if !result.Available() {
		t.Fatalf("expected image, got %q", result.Reason)
	}
	r, g, b, a := result.Image.At(1, 1).RGBA()
	if r>>8 != 0xFF || g>>8 != 0xFF || b>>8 != 0xFF || a>>8 != 0xFF {
		t.Fatalf("expected opaque white, got %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestPreviewKeepsGrayscale(t *testing.T) {
	dir := t.TempDir()
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	path := writePNG(t, dir, "gray.png", gray)

	d := NewDispatcher(Capabilities{}, DefaultOptions(), nil)
	result := d.Preview(context.Background(), path)
	if _, ok := result.Image.(*image.Gray); !ok {
		t.Fatalf("expected *image.Gray, got %T", result.Image)
	}
}

func nearColor(got color.Color, want color.NRGBA, tolerance int) bool {
	c := color.NRGBAModel.Convert(got).(color.NRGBA)
	diff := func(a, b uint8) bool {
		d := int(a) - int(b)
		return d <= tolerance && d >= -tolerance
	}
	return diff(c.R, want.R) && diff(c.G, want.G) && diff(c.B, want.B) && diff(c.A, want.A)
}

func TestPreviewNormalizesColorModels(t *testing.T) {
	white := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	red := color.NRGBA{R: 0xFF, A: 0xFF}

	cases := []struct {
		name   string
		write  func(t *testing.T, path string)
		gray   bool
		pixels map[image.Point]color.NRGBA
	}{
		{
			name: "a.GIF",
			write: func(t *testing.T, path string) {
				pal := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.NRGBA{}, red})
				pal.SetColorIndex(1, 1, 1)
				var buf bytes.Buffer
				if err := gif.Encode(&buf, pal, nil); err != nil {
					t.Fatalf("encode gif: %v", err)
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					t.Fatalf("write gif: %v", err)
				}
			},
			pixels: map[image.Point]color.NRGBA{{0, 0}: white, {1, 1}: red},
		},
		{
			name: "deep.png",
			write: func(t *testing.T, path string) {
				img := image.NewGray16(image.Rect(0, 0, 4, 4))
				for i := range img.Pix {
					img.Pix[i] = 0x80
				}
				writePNG(t, filepath.Dir(path), filepath.Base(path), img)
			},
			gray:   true,
			pixels: map[image.Point]color.NRGBA{{2, 2}: {R: 0x80, G: 0x80, B: 0x80, A: 0xFF}},
		},
		{
			name: "photo.jpg",
			write: func(t *testing.T, path string) {
				var buf bytes.Buffer
				if err := jpeg.Encode(&buf, solid(16, 16, red), &jpeg.Options{Quality: 95}); err != nil {
					t.Fatalf("encode jpeg: %v", err)
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					t.Fatalf("write jpeg: %v", err)
				}
			},
			pixels: map[image.Point]color.NRGBA{{8, 8}: red},
		},
	}

	d := NewDispatcher(Capabilities{}, DefaultOptions(), nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name)
			tc.write(t, path)

			result := d.Preview(context.Background(), path)
			if !result.Available() {
				t.Fatalf("expected image, got reason %q", result.Reason)
			}
			switch result.Image.(type) {
			case *image.Gray:
				if !tc.gray {
					t.Fatal("unexpected grayscale result")
				}
			case *image.NRGBA:
				if tc.gray {
					t.Fatal("expected grayscale result")
				}
			default:
				t.Fatalf("unexpected image type %T", result.Image)
			}
			for pt, want := range tc.pixels {
				if got := result.Image.At(pt.X, pt.Y); !nearColor(got, want, 8) {
					t.Errorf("pixel %v = %v, want %v", pt, got, want)
				}
			}
		})
	}
}

func TestFlattenProducesOpaqueRGB(t *testing.T) {
	cmyk := image.NewCMYK(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			cmyk.Set(x, y, color.CMYK{M: 0xFF, Y: 0xFF})
		}
	}
	clear64 := image.NewNRGBA64(image.Rect(0, 0, 2, 2))
	alpha := image.NewAlpha(image.Rect(0, 0, 2, 2))

	cases := map[string]struct {
		img  image.Image
		want color.NRGBA
	}{
		"cmyk":           {cmyk, color.NRGBA{R: 0xFF, A: 0xFF}},
		"transparent 64": {clear64, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
		"alpha mask":     {alpha, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			out := flatten(tc.img)
			if _, ok := out.(*image.NRGBA); !ok {
				t.Fatalf("expected *image.NRGBA, got %T", out)
			}
			if !isOpaque(out) {
				t.Fatal("flattened image must be opaque")
			}
			if got := out.At(1, 1); !nearColor(got, tc.want, 1) {
				t.Fatalf("pixel = %v, want %v", got, tc.want)
			}
		})
	}
}

// hugePNGHeader returns a valid PNG signature and IHDR chunk that declare
// width x height pixels with no image data behind them.
func hugePNGHeader(width, height uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	ihdr := make([]byte, 17)
	copy(ihdr, "IHDR")
	binary.BigEndian.PutUint32(ihdr[4:], width)
	binary.BigEndian.PutUint32(ihdr[8:], height)
	ihdr[12] = 8 // bit depth
	ihdr[13] = 6 // RGBA
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], 13)
	buf.Write(length[:])
	buf.Write(ihdr)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc32.ChecksumIEEE(ihdr))
	buf.Write(sum[:])
	return buf.Bytes()
}

func TestPreviewRefusesOversizedImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bomb.png")
	if err := os.WriteFile(path, hugePNGHeader(60000, 60000), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := decodeImageFile(path); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}

	d := NewDispatcher(Capabilities{}, DefaultOptions(), nil)
	result := d.Preview(context.Background(), path)
	if result.Available() || result.Reason != "Image preview not available" {
		t.Fatalf("expected unavailable image, got %+v", result)
	}
}

func TestPreviewCorruptImageGivesReason(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(path, []byte("not really a jpeg"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d := NewDispatcher(Capabilities{}, DefaultOptions(), nil)
	result := d.Preview(context.Background(), path)
	if result.Available() {
		t.Fatal("expected no image for corrupt file")
	}
	if result.Reason != "Image preview not available" {
		t.Fatalf("unexpected reason %q", result.Reason)
	}
}

func TestReasonsNameMissingCapabilities(t *testing.T) {
	d := NewDispatcher(Capabilities{}, DefaultOptions(), nil)

	doc := d.Preview(context.Background(), "/nowhere/report.pdf")
	if !strings.Contains(doc.Reason, "pdftoppm, pdfinfo") {
		t.Fatalf("document reason should name poppler: %q", doc.Reason)
	}
	video := d.Preview(context.Background(), "/nowhere/clip.mp4")
	if !strings.Contains(video.Reason, "ffmpeg, ffprobe") {
		t.Fatalf("video reason should name ffmpeg: %q", video.Reason)
	}
	app := d.Preview(context.Background(), "/nowhere/setup.exe")
	if !strings.HasPrefix(app.Reason, "App icon not available") {
		t.Fatalf("unexpected app reason %q", app.Reason)
	}
	unknown := d.Preview(context.Background(), "/nowhere/notes.txt")
	if unknown.Kind != KindUnknown || !strings.HasPrefix(unknown.Reason, "Preview not available") {
		t.Fatalf("unexpected unknown result %+v", unknown)
	}
}

func TestReasonWithCapabilityOmitsInstallHint(t *testing.T) {
	d := NewDispatcher(Capabilities{Document: true, Video: true}, DefaultOptions(), nil)
	if got := d.Reason(KindDocument); got != "PDF preview not available" {
		t.Fatalf("unexpected document reason %q", got)
	}
	if got := d.Reason(KindVideo); got != "Video preview not available" {
		t.Fatalf("unexpected video reason %q", got)
	}
}

func TestPreviewRecoversFromDecoderPanic(t *testing.T) {
	d := NewDispatcher(Capabilities{}, DefaultOptions(), nil)
	d.decoders[KindImage] = DecoderFunc(func(context.Context, string) (image.Image, error) {
		panic("boom")
	})
	result := d.Preview(context.Background(), "x.png")
	if result.Available() || result.Reason != "Image preview not available" {
		t.Fatalf("expected recovered reason, got %+v", result)
	}
}

func TestPreviewTreatsEmptyImageAsUnavailable(t *testing.T) {
	d := NewDispatcher(Capabilities{}, DefaultOptions(), nil)
	d.decoders[KindImage] = DecoderFunc(func(context.Context, string) (image.Image, error) {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil
	})
	if result := d.Preview(context.Background(), "x.png"); result.Available() {
		t.Fatal("expected empty image to be unavailable")
	}
}

func TestWritePNG(t *testing.T) {
	result := Result{Kind: KindImage, Image: solid(3, 2, color.NRGBA{A: 255})}
	var buf bytes.Buffer
	if err := result.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}

	if err := (Result{Reason: "nope"}).WritePNG(&buf); err == nil {
		t.Fatal("expected error without image")
	}
}

func TestUnsupportedDecoder(t *testing.T) {
	_, err := unsupportedDecoder{}.Decode(context.Background(), "x")
	if !errors.Is(err, ErrDecoderUnavailable) {
		t.Fatalf("expected ErrDecoderUnavailable, got %v", err)
	}
}
