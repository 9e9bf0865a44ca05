package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"sift/internal/fileutil"
)

// Operator executes review decisions against the filesystem.
type Operator struct {
	// TrashDir overrides the platform trash location where the platform
	// uses a directory-based trash (freedesktop, macOS).
	TrashDir string
	// Now stamps trash records; defaults to time.Now.
	Now func() time.Time
}

// NewOperator returns an Operator using the platform trash.
func NewOperator() *Operator {
	return &Operator{Now: time.Now}
}

func (o *Operator) now() time.Time {
	if o == nil || o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Trash sends path to the platform trash.
func (o *Operator) Trash(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return classify("delete", path, err)
	}
	if err := o.moveToTrash(path); err != nil {
		return classify("delete", path, err)
	}
	return nil
}

// DestinationPath returns where Move would place path inside destDir.
func DestinationPath(path, destDir string) string {
	return filepath.Join(destDir, filepath.Base(path))
}

// Move relocates path into destDir, keeping its base name, and returns the
// new location. An existing file at the destination is replaced only when
// overwrite is set. Moves across filesystems fall back to a verified copy
// followed by removal of the source.
func (o *Operator) Move(path, destDir string, overwrite bool) (string, error) {
	srcInfo, err := os.Lstat(path)
	if err != nil {
		return "", classify("move", path, err)
	}

	destInfo, err := os.Stat(destDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &ActionError{Op: "move", Path: path, Kind: KindNotFound, Err: fmt.Errorf("destination folder %s not found", destDir)}
		}
		return "", classify("move", path, err)
	}
	if !destInfo.IsDir() {
		return "", &ActionError{Op: "move", Path: path, Kind: KindOther, Err: fmt.Errorf("destination %s is not a directory", destDir)}
	}

	target := DestinationPath(path, destDir)
	if targetInfo, err := os.Lstat(target); err == nil {
		if os.SameFile(srcInfo, targetInfo) {
			return "", &ActionError{Op: "move", Path: path, Kind: KindOther, Err: errors.New("source and destination are the same file")}
		}
		if !overwrite {
			return "", &ActionError{Op: "move", Path: path, Kind: KindAlreadyExists}
		}
		if targetInfo.IsDir() {
			return "", &ActionError{Op: "move", Path: path, Kind: KindOther, Err: fmt.Errorf("cannot overwrite directory %s", target)}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", classify("move", path, err)
	}

	if err := relocate(path, target); err != nil {
		return "", classify("move", path, err)
	}
	return target, nil
}

// relocate renames src to dst, copying across devices when needed.
func relocate(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}
	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("copy across devices: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
