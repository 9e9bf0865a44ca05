//go:build darwin

package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

func (o *Operator) moveToTrash(path string) error {
	trashDir := ""
	if o != nil {
		trashDir = o.TrashDir
	}
	if trashDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		trashDir = filepath.Join(home, ".Trash")
	}
	if err := ensureTrashDirs(trashDir); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	var target string
	_, err = reserveName(trashDir, filepath.Base(abs), func(name string) error {
		candidate := filepath.Join(trashDir, name)
		if _, err := os.Lstat(candidate); err == nil {
			return fs.ErrExist
		}
		target = candidate
		return nil
	})
	if err != nil {
		return err
	}
	return relocate(abs, target)
}
