package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the resource is absent from the bundle.
	ErrNotFound = errors.New("resource not found")
	// ErrMismatch means the extracted file differs from the resource.
	ErrMismatch = errors.New("extracted file does not match resource")
)

// Error describes a failed extraction step. Op is one of mkdir, open, create,
// read, write, close or verify.
type Error struct {
	Op       string
	Resource string
	Path     string
	Err      error
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrMismatch) {
		return fmt.Sprintf("can't extract the file: %s", e.Resource)
	}
	if e.Path == "" {
		return fmt.Sprintf("extract %s: %s: %v", e.Resource, e.Op, e.Err)
	}
	return fmt.Sprintf("extract %s: %s %s: %v", e.Resource, e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
