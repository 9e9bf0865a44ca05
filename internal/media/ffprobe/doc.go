// Package ffprobe wraps ffprobe's JSON output for the video preview decoder.
//
// Inspect runs ffprobe against a file and returns the parsed streams and
// container format. FirstVideoStream picks the stream whose frame the
// decoder extracts; its Width and Height size the raw frame buffer.
package ffprobe
