package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sift/internal/logging"
)

// Dispatcher routes files to the decoder for their Kind.
type Dispatcher struct {
	caps     Capabilities
	decoders map[Kind]Decoder
	logger   *slog.Logger
}

// NewDispatcher builds a dispatcher for the given capability set. Missing
// capabilities are bound to a decoder that always reports unavailability.
func NewDispatcher(caps Capabilities, opts Options, logger *slog.Logger) *Dispatcher {
	opts = opts.withDefaults()
	if logger == nil {
		logger = logging.NewNop()
	}
	d := &Dispatcher{
		caps:   caps,
		logger: logging.NewComponentLogger(logger, "preview"),
	}
	d.decoders = map[Kind]Decoder{
		KindImage:       imageDecoder{box: opts.mediaBox()},
		KindDocument:    unsupportedDecoder{},
		KindVideo:       unsupportedDecoder{},
		KindApplication: unsupportedDecoder{},
	}
	if caps.Document {
		d.decoders[KindDocument] = newDocumentDecoder(opts)
	}
	if caps.Video {
		d.decoders[KindVideo] = newVideoDecoder(opts)
	}
	if caps.Application {
		d.decoders[KindApplication] = newAppIconDecoder(opts)
	}
	return d
}

// Preview classifies path and decodes it. It never fails: decoder errors
// and panics become a Result with a Reason.
func (d *Dispatcher) Preview(ctx context.Context, path string) (result Result) {
	kind := Classify(path)
	defer func() {
		if r := recover(); r != nil {
			result = d.unavailable(path, kind, fmt.Errorf("decoder panic: %v", r))
		}
	}()

	decoder, ok := d.decoders[kind]
	if !ok {
		return d.unavailable(path, kind, nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	img, err := decoder.Decode(ctx, path)
	if err != nil {
		return d.unavailable(path, kind, err)
	}
	if img == nil || img.Bounds().Empty() {
		return d.unavailable(path, kind, errors.New("decoder returned no image"))
	}
	return Result{Path: path, Kind: kind, Image: img}
}

func (d *Dispatcher) unavailable(path string, kind Kind, err error) Result {
	if err != nil && !errors.Is(err, ErrDecoderUnavailable) {
		d.logger.Debug("preview decode failed",
			logging.String("path", path),
			logging.String("kind", string(kind)),
			logging.Error(err),
		)
	}
	return Result{Path: path, Kind: kind, Reason: d.Reason(kind)}
}

// Reason returns the unavailability message for kind, naming what to
// install when the matching capability is missing.
func (d *Dispatcher) Reason(kind Kind) string {
	switch kind {
	case KindImage:
		return "Image preview not available"
	case KindDocument:
		if d.caps.Document {
			return "PDF preview not available"
		}
		return "PDF preview not available\n(Install poppler-utils: pdftoppm, pdfinfo for PDF support)"
	case KindVideo:
		if d.caps.Video {
			return "Video preview not available"
		}
		return "Video preview not available\n(Install ffmpeg: ffmpeg, ffprobe for video support)"
	case KindApplication:
		if d.caps.Application {
			return "App icon not available"
		}
		return "App icon not available\n(Icon extraction requires Windows shell32)"
	default:
		return "Preview not available\n(Only images, PDFs, videos, and apps are previewed)"
	}
}
