package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, executableName(name))
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present")
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" || results[0].Path == "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank status %#v", results[2])
	}
}

func TestResolveDecoders(t *testing.T) {
	binDir := t.TempDir()
	opts := DecoderOptions{
		Pdfinfo:  writeStub(t, binDir, "pdfinfo"),
		Pdftoppm: writeStub(t, binDir, "pdftoppm"),
		FFprobe:  writeStub(t, binDir, "ffprobe"),
		FFmpeg:   filepath.Join(binDir, "missing-ffmpeg"),
	}

	statuses := ResolveDecoders(opts)
	if len(statuses) != 4 {
		t.Fatalf("expected four decoders, got %d", len(statuses))
	}
	if !Available(statuses, DecoderImage) {
		t.Fatal("image decoding is always available")
	}
	if !Available(statuses, DecoderDocument) {
		t.Fatalf("document decoder should be available: %+v", statuses[1])
	}
	if Available(statuses, DecoderVideo) {
		t.Fatal("video decoder needs both ffmpeg and ffprobe")
	}
	if !strings.Contains(statuses[2].Detail, "missing-ffmpeg") {
		t.Fatalf("video detail should name the missing binary: %q", statuses[2].Detail)
	}
	if Available(statuses, DecoderApplication) {
		t.Fatal("application decoder needs icon support")
	}
	if statuses[1].Commands() != opts.Pdfinfo+", "+opts.Pdftoppm {
		t.Fatalf("unexpected commands %q", statuses[1].Commands())
	}
}

func TestResolveDecodersHonoursDisabled(t *testing.T) {
	binDir := t.TempDir()
	disabled := func(name string) bool {
		return name == DecoderDocument || name == DecoderImage
	}
	opts := DecoderOptions{
		Pdfinfo:     writeStub(t, binDir, "pdfinfo"),
		Pdftoppm:    writeStub(t, binDir, "pdftoppm"),
		IconSupport: true,
		Disabled:    disabled,
	}
	statuses := ResolveDecoders(opts)
	if Available(statuses, DecoderDocument) {
		t.Fatal("disabled document decoder should be unavailable")
	}
	if statuses[1].Detail != "disabled in config" {
		t.Fatalf("unexpected detail %q", statuses[1].Detail)
	}
	if !Available(statuses, DecoderImage) {
		t.Fatal("image decoding cannot be disabled")
	}
	if !Available(statuses, DecoderApplication) {
		t.Fatal("icon support should make the application decoder available")
	}
	if Available(statuses, "audio") {
		t.Fatal("unknown decoder should be unavailable")
	}
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func TestCheckBinariesUsesLookPath(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	var asked []string
	lookPath = func(name string) (string, error) {
		asked = append(asked, name)
		return "/opt/tools/" + name, nil
	}

	results := CheckBinaries([]Requirement{{Name: "ffmpeg", Command: " ffmpeg "}})
	if len(asked) != 1 || asked[0] != "ffmpeg" {
		t.Fatalf("lookPath called with %v", asked)
	}
	if !results[0].Available || results[0].Path != "/opt/tools/ffmpeg" {
		t.Fatalf("unexpected status %#v", results[0])
	}
}
