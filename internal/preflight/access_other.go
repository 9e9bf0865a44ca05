//go:build !unix

package preflight

import (
	"errors"
	"io"
	"os"
)

// checkAccess opens the directory for listing. Write permission is left to
// the file operations themselves, which report it per file.
func checkAccess(path string) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	defer dir.Close()
	_, err = dir.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
