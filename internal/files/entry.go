package files

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// CreatedLayout formats creation timestamps for display.
const CreatedLayout = "2006-01-02 15:04:05"

// ErrDirectory is returned by Stat when the path resolves to a directory.
var ErrDirectory = errors.New("path is a directory")

// Entry identifies a file under review.
type Entry struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size_bytes"`
	Created time.Time `json:"created"`
}

// Stat builds an Entry for path, following symlinks. Directories yield
// ErrDirectory.
func Stat(path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Entry{}, err
	}
	if info.IsDir() {
		return Entry{}, ErrDirectory
	}
	return Entry{
		Path:    abs,
		Name:    filepath.Base(abs),
		Size:    info.Size(),
		Created: creationTime(abs, info),
	}, nil
}

// Exists reports whether something is still present at path. Errors other
// than "not exist" count as present so a transient failure never drops an
// entry from review.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// SizeFormatted returns the size in IEC units, e.g. "1.2 MiB".
func (e Entry) SizeFormatted() string {
	if e.Size < 0 {
		return humanize.IBytes(0)
	}
	return humanize.IBytes(uint64(e.Size))
}

// CreatedFormatted returns the creation time in local time using CreatedLayout.
func (e Entry) CreatedFormatted() string {
	if e.Created.IsZero() {
		return ""
	}
	return e.Created.In(time.Local).Format(CreatedLayout)
}

// Age reports how long before now the entry was created.
func (e Entry) Age(now time.Time) string {
	if e.Created.IsZero() {
		return ""
	}
	return humanize.RelTime(e.Created, now, "ago", "from now")
}
