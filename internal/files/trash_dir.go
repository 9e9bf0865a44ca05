//go:build unix

package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// reserveName finds a free name for base inside dir, calling claim until it
// succeeds. claim must fail with fs.ErrExist when the name is taken.
func reserveName(dir, base string, claim func(name string) error) (string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := base
	for attempt := 1; attempt <= 1000; attempt++ {
		err := claim(name)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		name = stem + "." + strconv.Itoa(attempt) + ext
	}
	return "", fmt.Errorf("no free trash name for %s in %s", base, dir)
}

func ensureTrashDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create trash directory %s: %w", dir, err)
		}
	}
	return nil
}
