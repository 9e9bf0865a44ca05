//go:build unix && !darwin

package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTrashWritesInfoRecord(t *testing.T) {
	trash := t.TempDir()
	stamp := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	op := &Operator{TrashDir: trash, Now: func() time.Time { return stamp }}

	src := filepath.Join(t.TempDir(), "my file.txt")
	writeFile(t, src, "bye")

	if err := op.Trash(src); err != nil {
		t.Fatalf("Trash: %v", err)
	}
	if Exists(src) {
		t.Fatal("expected source to be moved away")
	}
	got, err := os.ReadFile(filepath.Join(trash, "files", "my file.txt"))
	if err != nil || string(got) != "bye" {
		t.Fatalf("unexpected trashed contents %q err=%v", got, err)
	}
	info, err := os.ReadFile(filepath.Join(trash, "info", "my file.txt.trashinfo"))
	if err != nil {
		t.Fatalf("read trashinfo: %v", err)
	}
	record := string(info)
	if !strings.HasPrefix(record, "[Trash Info]\n") {
		t.Fatalf("missing header: %q", record)
	}
	if !strings.Contains(record, "my%20file.txt") {
		t.Fatalf("expected escaped path, got %q", record)
	}
	if !strings.Contains(record, "DeletionDate=2025-01-02T03:04:05") {
		t.Fatalf("unexpected deletion date: %q", record)
	}
}

func TestTrashAvoidsNameCollisions(t *testing.T) {
	trash := t.TempDir()
	op := &Operator{TrashDir: trash}

	for i := 0; i < 2; i++ {
		src := filepath.Join(t.TempDir(), "dup.txt")
		writeFile(t, src, "x")
		if err := op.Trash(src); err != nil {
			t.Fatalf("Trash #%d: %v", i, err)
		}
	}
	for _, name := range []string{"dup.txt", "dup.1.txt"} {
		if !Exists(filepath.Join(trash, "files", name)) {
			t.Fatalf("expected %s in trash", name)
		}
		if !Exists(filepath.Join(trash, "info", name+".trashinfo")) {
			t.Fatalf("expected %s.trashinfo", name)
		}
	}
}
