package preview

import (
	"path/filepath"

	"golang.org/x/text/cases"
)

// Kind is the preview classification of a file.
type Kind string

const (
	KindImage       Kind = "image"
	KindDocument    Kind = "document"
	KindVideo       Kind = "video"
	KindApplication Kind = "application"
	KindUnknown     Kind = "unknown"
)

var (
	imageExtensions       = extensionSet(".jpg", ".jpeg", ".png", ".gif", ".bmp", ".ico", ".webp", ".tiff", ".tif")
	documentExtensions    = extensionSet(".pdf")
	videoExtensions       = extensionSet(".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv", ".webm", ".m4v")
	applicationExtensions = extensionSet(".exe", ".msi", ".app", ".dmg", ".deb", ".rpm", ".pkg")
)

// classification order matters: the first matching set wins.
var classification = []struct {
	kind Kind
	exts map[string]struct{}
}{
	{KindImage, imageExtensions},
	{KindDocument, documentExtensions},
	{KindVideo, videoExtensions},
	{KindApplication, applicationExtensions},
}

func extensionSet(exts ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[ext] = struct{}{}
	}
	return set
}

// Classify maps path to a Kind by its extension, ignoring case.
func Classify(path string) Kind {
	ext := cases.Fold().String(filepath.Ext(path))
	if ext == "" {
		return KindUnknown
	}
	for _, class := range classification {
		if _, ok := class.exts[ext]; ok {
			return class.kind
		}
	}
	return KindUnknown
}
