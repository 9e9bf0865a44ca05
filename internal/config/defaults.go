package config

const (
	defaultStateDir         = "~/.local/state/sift"
	defaultLogDir           = "~/.local/state/sift/logs"
	defaultLookbackHours    = 24
	defaultPreviewWidth     = 500
	defaultPreviewHeight    = 200
	defaultIconWidth        = 128
	defaultIconHeight       = 128
	defaultMaxDocumentZoom  = 2.0
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
)

// MaxLookbackHours bounds the scan window so it always fits a time.Duration.
const MaxLookbackHours = 24 * 365 * 100

// Decoder names accepted in preview.disabled_decoders.
const (
	DecoderDocument    = "document"
	DecoderVideo       = "video"
	DecoderApplication = "application"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Scan: Scan{
			LookbackHours: defaultLookbackHours,
		},
		Preview: Preview{
			MaxWidth:        defaultPreviewWidth,
			MaxHeight:       defaultPreviewHeight,
			IconMaxWidth:    defaultIconWidth,
			IconMaxHeight:   defaultIconHeight,
			MaxDocumentZoom: defaultMaxDocumentZoom,
		},
		Decoders: Decoders{
			FFmpeg:   "ffmpeg",
			FFprobe:  "ffprobe",
			Pdftoppm: "pdftoppm",
			Pdfinfo:  "pdfinfo",
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
