//go:build !windows

package preview

// IconExtractionSupported reports whether this build can read application
// icons from executables.
const IconExtractionSupported = false

func extractIcon(string) (iconGuard, error) {
	return nil, ErrDecoderUnavailable
}
