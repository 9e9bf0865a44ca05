package scan

import (
	"errors"
	"fmt"
)

// ErrDirectoryNotFound matches any *ScanError.
var ErrDirectoryNotFound = errors.New("directory not found")

// ErrInvalidLookback is returned for negative lookback windows.
var ErrInvalidLookback = errors.New("lookback must not be negative")

// ScanErrorKind distinguishes the ways the watched directory can be unusable.
type ScanErrorKind string

const (
	DirectoryNotFound ScanErrorKind = "directory_not_found"
	NotADirectory     ScanErrorKind = "not_a_directory"
)

// ScanError reports that the watched directory cannot be scanned at all.
type ScanError struct {
	Kind ScanErrorKind
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	switch e.Kind {
	case NotADirectory:
		return fmt.Sprintf("scan: %s is not a directory", e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("scan: folder not found at %s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("scan: folder not found at %s", e.Path)
	}
}

func (e *ScanError) Unwrap() error { return e.Err }

func (e *ScanError) Is(target error) bool { return target == ErrDirectoryNotFound }

// AccessError records a single entry that could not be inspected.
type AccessError struct {
	Path string
	Err  error
}

func (e AccessError) Error() string {
	return fmt.Sprintf("access %s: %v", e.Path, e.Err)
}

func (e AccessError) Unwrap() error { return e.Err }
