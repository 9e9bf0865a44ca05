// Package preview turns a file path into something a reviewer can look at.
//
// Dispatcher classifies a path by extension (image, document, video,
// application, unknown) and hands it to the decoder registered for that
// kind. Which decoders exist is fixed when the Dispatcher is built from a
// Capabilities value; a missing capability is served by a stand-in decoder
// that always reports unavailability. Preview never fails: every decode
// error collapses into a Result carrying a human-readable reason.
//
// Images decode in-process (stdlib, golang.org/x/image, and a small ICO
// reader). PDFs render through poppler's pdftoppm, videos through ffmpeg,
// and application icons through the Windows shell. Every result is fitted
// into a bounding box with a Lanczos filter and never upscaled.
package preview
