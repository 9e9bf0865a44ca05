package deps

import "strings"

// Decoder names, matching preview kinds and preview.disabled_decoders.
const (
	DecoderImage       = "image"
	DecoderDocument    = "document"
	DecoderVideo       = "video"
	DecoderApplication = "application"
)

// DecoderOptions names the binaries to probe and the decoders to skip.
type DecoderOptions struct {
	FFmpeg   string
	FFprobe  string
	Pdftoppm string
	Pdfinfo  string
	// IconSupport reports whether this build can extract application icons.
	IconSupport bool
	// Disabled reports decoders switched off in configuration. Nil disables none.
	Disabled func(name string) bool
}

// DecoderStatus reports whether one preview decoder can run.
type DecoderStatus struct {
	Name        string
	Description string
	Available   bool
	Detail      string
	Binaries    []Status
}

// Commands lists the binaries the decoder needs, comma separated.
func (s DecoderStatus) Commands() string {
	names := make([]string, 0, len(s.Binaries))
	for _, bin := range s.Binaries {
		names = append(names, bin.Command)
	}
	return strings.Join(names, ", ")
}

// ResolveDecoders reports the availability of every preview decoder.
func ResolveDecoders(opts DecoderOptions) []DecoderStatus {
	statuses := []DecoderStatus{
		{
			Name:        DecoderImage,
			Description: "JPEG, PNG, GIF, BMP, ICO, WebP, TIFF",
			Available:   true,
			Detail:      "built in",
		},
		binaryDecoder(DecoderDocument, "PDF first page via poppler-utils", []Requirement{
			{Name: "pdfinfo", Command: opts.Pdfinfo, Description: "PDF page count and size"},
			{Name: "pdftoppm", Command: opts.Pdftoppm, Description: "PDF page rasterizer"},
		}),
		binaryDecoder(DecoderVideo, "first video frame via ffmpeg", []Requirement{
			{Name: "ffprobe", Command: opts.FFprobe, Description: "video stream inspection"},
			{Name: "ffmpeg", Command: opts.FFmpeg, Description: "frame extraction"},
		}),
		{
			Name:        DecoderApplication,
			Description: "application icons via Windows shell32",
			Available:   opts.IconSupport,
		},
	}
	if !opts.IconSupport {
		statuses[3].Detail = "requires Windows shell32"
	}

	for i := range statuses {
		if statuses[i].Name == DecoderImage {
			continue
		}
		if opts.Disabled != nil && opts.Disabled(statuses[i].Name) {
			statuses[i].Available = false
			statuses[i].Detail = "disabled in config"
		}
	}
	return statuses
}

func binaryDecoder(name, description string, reqs []Requirement) DecoderStatus {
	status := DecoderStatus{
		Name:        name,
		Description: description,
		Available:   true,
		Binaries:    CheckBinaries(reqs),
	}
	var missing []string
	for _, bin := range status.Binaries {
		if !bin.Available {
			status.Available = false
			missing = append(missing, bin.Detail)
		}
	}
	status.Detail = strings.Join(missing, "; ")
	return status
}

// Available reports whether the named decoder is usable.
func Available(statuses []DecoderStatus, name string) bool {
	for _, status := range statuses {
		if status.Name == name {
			return status.Available
		}
	}
	return false
}
