package preview

import "strings"

const (
	defaultMaxWidth        = 500
	defaultMaxHeight       = 200
	defaultIconMaxWidth    = 128
	defaultIconMaxHeight   = 128
	defaultMaxDocumentZoom = 2.0
)

// Capabilities records which optional decoders are usable. It is resolved
// once at startup and never re-checked.
type Capabilities struct {
	Document    bool
	Video       bool
	Application bool
}

// Options sizes previews and names the external tools decoders run.
type Options struct {
	MaxWidth        int
	MaxHeight       int
	IconMaxWidth    int
	IconMaxHeight   int
	MaxDocumentZoom float64

	FFmpeg   string
	FFprobe  string
	Pdftoppm string
	Pdfinfo  string
}

// DefaultOptions returns the stock bounding boxes and tool names.
func DefaultOptions() Options {
	return Options{
		MaxWidth:        defaultMaxWidth,
		MaxHeight:       defaultMaxHeight,
		IconMaxWidth:    defaultIconMaxWidth,
		IconMaxHeight:   defaultIconMaxHeight,
		MaxDocumentZoom: defaultMaxDocumentZoom,
		FFmpeg:          "ffmpeg",
		FFprobe:         "ffprobe",
		Pdftoppm:        "pdftoppm",
		Pdfinfo:         "pdfinfo",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxWidth <= 0 {
		o.MaxWidth = def.MaxWidth
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = def.MaxHeight
	}
	if o.IconMaxWidth <= 0 {
		o.IconMaxWidth = def.IconMaxWidth
	}
	if o.IconMaxHeight <= 0 {
		o.IconMaxHeight = def.IconMaxHeight
	}
	if o.MaxDocumentZoom <= 0 {
		o.MaxDocumentZoom = def.MaxDocumentZoom
	}
	o.FFmpeg = orDefault(o.FFmpeg, def.FFmpeg)
	o.FFprobe = orDefault(o.FFprobe, def.FFprobe)
	o.Pdftoppm = orDefault(o.Pdftoppm, def.Pdftoppm)
	o.Pdfinfo = orDefault(o.Pdfinfo, def.Pdfinfo)
	return o
}

func (o Options) mediaBox() box { return box{width: o.MaxWidth, height: o.MaxHeight} }

func (o Options) iconBox() box { return box{width: o.IconMaxWidth, height: o.IconMaxHeight} }

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
