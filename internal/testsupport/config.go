package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"sift/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The watch directory exists; state and log directories are left for the
// code under test to create.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WatchDir = filepath.Join(base, "downloads")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "state", "logs")
	if err := os.MkdirAll(cfgVal.Paths.WatchDir, 0o755); err != nil {
		t.Fatalf("mkdir watch dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithLookbackHours overrides the scan window.
func WithLookbackHours(hours int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.LookbackHours = hours
	}
}

// WithDisabledDecoders lists decoders the config switches off.
func WithDisabledDecoders(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Preview.DisabledDecoders = append([]string(nil), names...)
	}
}

// WithStubbedBinaries writes stub executables for the provided names,
// prepends them to PATH, and points the decoder config at them. If names is
// empty, every decoder binary is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe", "pdftoppm", "pdfinfo"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			file := name
			if runtime.GOOS == "windows" {
				file += ".exe"
			}
			target := filepath.Join(binDir, file)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
			switch name {
			case "ffmpeg":
				b.cfg.Decoders.FFmpeg = target
			case "ffprobe":
				b.cfg.Decoders.FFprobe = target
			case "pdftoppm":
				b.cfg.Decoders.Pdftoppm = target
			case "pdfinfo":
				b.cfg.Decoders.Pdfinfo = target
			}
		}
		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// WithoutDecoderBinaries points every decoder at a path that does not exist.
func WithoutDecoderBinaries() ConfigOption {
	return func(b *configBuilder) {
		missing := filepath.Join(b.baseDir, "missing")
		b.cfg.Decoders.FFmpeg = filepath.Join(missing, "ffmpeg")
		b.cfg.Decoders.FFprobe = filepath.Join(missing, "ffprobe")
		b.cfg.Decoders.Pdftoppm = filepath.Join(missing, "pdftoppm")
		b.cfg.Decoders.Pdfinfo = filepath.Join(missing, "pdfinfo")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WatchDir)
}

// WriteConfigFile encodes cfg to config.toml under its base directory and
// returns the path, for commands that take --config.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
