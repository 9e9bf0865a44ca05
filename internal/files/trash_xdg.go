//go:build unix && !darwin

package files

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const trashInfoLayout = "2006-01-02T15:04:05"

// homeTrashDir follows the freedesktop.org trash specification.
func homeTrashDir() (string, error) {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, "Trash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

// moveToTrash writes a .trashinfo record, then moves the file into
// Trash/files under the same name. The record is written first with O_EXCL
// so it doubles as the name reservation.
func (o *Operator) moveToTrash(path string) error {
	trashDir := ""
	if o != nil {
		trashDir = o.TrashDir
	}
	if trashDir == "" {
		var err error
		if trashDir, err = homeTrashDir(); err != nil {
			return err
		}
	}
	filesDir := filepath.Join(trashDir, "files")
	infoDir := filepath.Join(trashDir, "info")
	if err := ensureTrashDirs(filesDir, infoDir); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	record := trashInfo(abs, o.now().Format(trashInfoLayout))

	name, err := reserveName(filesDir, filepath.Base(abs), func(name string) error {
		if _, err := os.Lstat(filepath.Join(filesDir, name)); err == nil {
			return fs.ErrExist
		}
		f, err := os.OpenFile(filepath.Join(infoDir, name+".trashinfo"), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		if _, err := f.WriteString(record); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			return err
		}
		return f.Close()
	})
	if err != nil {
		return err
	}

	if err := relocate(abs, filepath.Join(filesDir, name)); err != nil {
		_ = os.Remove(filepath.Join(infoDir, name+".trashinfo"))
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("trash slot %s taken: %w", name, err)
		}
		return err
	}
	return nil
}

func trashInfo(path, deletedAt string) string {
	escaped := (&url.URL{Path: path}).EscapedPath()
	return "[Trash Info]\nPath=" + escaped + "\nDeletionDate=" + deletedAt + "\n"
}
