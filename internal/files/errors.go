package files

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// ActionKind classifies why a filesystem action failed.
type ActionKind string

const (
	KindNotFound         ActionKind = "not_found"
	KindPermissionDenied ActionKind = "permission_denied"
	KindAlreadyExists    ActionKind = "already_exists"
	KindOther            ActionKind = "other"
)

// Sentinels matched by errors.Is against an *ActionError of the same kind.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyExists    = errors.New("already exists")
)

// ActionError reports a failed delete or move. The queue entry it refers to
// is left in place so the caller can retry or move on.
type ActionError struct {
	Op   string
	Path string
	Kind ActionKind
	Err  error
}

func (e *ActionError) Error() string {
	name := filepath.Base(e.Path)
	var detail string
	switch e.Kind {
	case KindNotFound:
		detail = "not found"
	case KindPermissionDenied:
		detail = "permission denied (the file may be open in another program; close it and try again)"
	case KindAlreadyExists:
		detail = fmt.Sprintf("%q already exists in the destination folder", name)
	default:
		detail = "failed"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, name, detail, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, name, detail)
}

func (e *ActionError) Unwrap() error { return e.Err }

// Is matches the package sentinels by kind.
func (e *ActionError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrPermissionDenied:
		return e.Kind == KindPermissionDenied
	case ErrAlreadyExists:
		return e.Kind == KindAlreadyExists
	}
	return false
}

// KindOf returns the ActionKind carried by err, or KindOther.
func KindOf(err error) ActionKind {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr.Kind
	}
	return KindOther
}

func classify(op, path string, err error) *ActionError {
	if err == nil {
		return nil
	}
	var existing *ActionError
	if errors.As(err, &existing) {
		return existing
	}
	kind := KindOther
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission), isBusy(err):
		kind = KindPermissionDenied
	case errors.Is(err, fs.ErrExist):
		kind = KindAlreadyExists
	}
	return &ActionError{Op: op, Path: path, Kind: kind, Err: err}
}
