package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStatBuildsEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	before := time.Now().Add(-time.Minute)
	entry, err := Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if entry.Path != path {
		t.Fatalf("unexpected path %q", entry.Path)
	}
	if entry.Name != "report.pdf" {
		t.Fatalf("unexpected name %q", entry.Name)
	}
	if entry.Size != 2048 {
		t.Fatalf("unexpected size %d", entry.Size)
	}
	if entry.Created.Before(before) {
		t.Fatalf("creation time %v predates the write", entry.Created)
	}
}

func TestStatRejectsDirectories(t *testing.T) {
	dir := t.TempDir()
	if _, err := Stat(dir); !errors.Is(err, ErrDirectory) {
		t.Fatalf("expected ErrDirectory, got %v", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if Exists(path) {
		t.Fatal("expected missing file to be reported absent")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Fatal("expected file to exist")
	}
}

func TestEntryFormatting(t *testing.T) {
	created := time.Date(2025, 6, 1, 9, 30, 15, 0, time.Local)
	entry := Entry{Size: 1536, Created: created}
	if got := entry.SizeFormatted(); got != "1.5 KiB" {
		t.Fatalf("unexpected size string %q", got)
	}
	if got := entry.CreatedFormatted(); got != "2025-06-01 09:30:15" {
		t.Fatalf("unexpected created string %q", got)
	}
	if got := entry.Age(created.Add(3 * time.Hour)); got != "3 hours ago" {
		t.Fatalf("unexpected age %q", got)
	}
	if (Entry{}).CreatedFormatted() != "" {
		t.Fatal("expected empty string for zero creation time")
	}
}
