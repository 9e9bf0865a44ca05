package testsupport

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// pattern is an endless stream of 'B' bytes.
type pattern struct{}

func (pattern) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'B'
	}
	return len(p), nil
}

// WriteFile creates path, and any missing parents, holding size bytes. A
// size <= 0 writes a single byte so the file is never empty.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if _, err := io.CopyN(f, pattern{}, max(size, 1)); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Downloads creates files named names inside dir, the i-th one (i+1) KiB
// long, and returns their paths in the same order.
func Downloads(t testing.TB, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		WriteFile(t, path, int64(i+1)*1024)
		paths = append(paths, path)
	}
	return paths
}
