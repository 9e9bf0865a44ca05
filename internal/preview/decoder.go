package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrDecoderUnavailable is returned by the stand-in decoder installed for a
// capability that was not detected at startup.
var ErrDecoderUnavailable = errors.New("preview: decoder unavailable")

// Decoder renders a preview image for a single file.
type Decoder interface {
	Decode(ctx context.Context, path string) (image.Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, path string) (image.Image, error)

// Decode calls f.
func (f DecoderFunc) Decode(ctx context.Context, path string) (image.Image, error) {
	return f(ctx, path)
}

type unsupportedDecoder struct{}

func (unsupportedDecoder) Decode(context.Context, string) (image.Image, error) {
	return nil, ErrDecoderUnavailable
}

// commandRunner executes an external tool and returns its stdout.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return nil, fmt.Errorf("%s: %w", filepath.Base(name), err)
		}
		return nil, fmt.Errorf("%s: %w: %s", filepath.Base(name), err, detail)
	}
	return stdout.Bytes(), nil
}
