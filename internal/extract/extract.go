// Package extract copies files out of a bundled resource space onto disk and
// checks that the copy is byte-identical to the resource.
package extract

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bagtoad/nativelib/internal/verify"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

const copyBufferSize = 8 * 1024

// Extractor reads resources from FS.
type Extractor struct {
	fsys    fs.FS
	log     *zap.Logger
	tempDir func() (string, error)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger failures are reported to.
func WithLogger(log *zap.Logger) Option {
	return func(e *Extractor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithTempDir replaces the function that provisions a fresh directory for
// ExtractToTemp.
func WithTempDir(fn func() (string, error)) Option {
	return func(e *Extractor) {
		if fn != nil {
			e.tempDir = fn
		}
	}
}

// New returns an Extractor reading from fsys.
func New(fsys fs.FS, opts ...Option) *Extractor {
	e := &Extractor{
		fsys:    fsys,
		log:     zap.NewNop(),
		tempDir: CreateTempDir,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateTempDir creates a new uniquely named directory under the system
// temporary directory.
func CreateTempDir() (string, error) {
	dir, err := os.MkdirTemp("", "nativelib-*")
	if err != nil {
		return "", fmt.Errorf("cannot create temp dir: %w", err)
	}
	return dir, nil
}

// Has reports whether a regular file exists at name in fsys.
func Has(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.Mode().IsRegular()
}

// ExtractToDir extracts resourceDir/fileName into dstDir keeping its name.
func (e *Extractor) ExtractToDir(resourceDir, fileName, dstDir string) (string, error) {
	return e.ExtractAs(resourceDir, fileName, dstDir, fileName)
}

// ExtractToTemp extracts resourceDir/fileName into a freshly created
// temporary directory as outputName.
func (e *Extractor) ExtractToTemp(resourceDir, fileName, outputName string) (string, error) {
	dir, err := e.tempDir()
	if err != nil {
		e.log.Error("cannot provision extraction directory", zap.Error(err))
		return "", &Error{Op: "mkdir", Resource: path.Join(resourceDir, fileName), Err: err}
	}
	extracted, err := e.ExtractAs(resourceDir, fileName, dir, outputName)
	if err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	return extracted, nil
}

// ExtractAs extracts resourceDir/fileName to dstDir/outputName and verifies
// the copy. The destination must not exist yet. On failure the error is
// logged and returned, and no partial file is left behind.
func (e *Extractor) ExtractAs(resourceDir, fileName, dstDir, outputName string) (string, error) {
	resource := path.Join(resourceDir, fileName)
	dst := filepath.Join(dstDir, outputName)

	err := e.copyAndVerify(resource, dst)
	if err != nil {
		e.log.Error("extraction failed",
			zap.String("resource", resource),
			zap.String("path", dst),
			zap.Error(err),
		)
		var extractErr *Error
		if errors.As(err, &extractErr) && extractErr.Op != "open" && extractErr.Op != "create" {
			os.Remove(dst) // partial or corrupt copy
		}
		return "", err
	}

	e.log.Debug("extracted resource", zap.String("resource", resource), zap.String("path", dst))
	return dst, nil
}

func (e *Extractor) copyAndVerify(resource, dst string) error {
	if err := e.copy(resource, dst); err != nil {
		return err
	}
	return e.verify(resource, dst)
}

func (e *Extractor) copy(resource, dst string) (err error) {
	src, err := e.fsys.Open(resource)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNotFound
		}
		return &Error{Op: "open", Resource: resource, Path: dst, Err: err}
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			err = appendClose(err, &Error{Op: "close", Resource: resource, Path: dst, Err: cerr})
		}
	}()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return &Error{Op: "create", Resource: resource, Path: dst, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			err = appendClose(err, &Error{Op: "close", Resource: resource, Path: dst, Err: cerr})
		}
	}()

	buf := make([]byte, copyBufferSize)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return &Error{Op: "write", Resource: resource, Path: dst, Err: writeErr}
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return &Error{Op: "read", Resource: resource, Path: dst, Err: readErr}
		}
	}
}

// appendClose folds a close failure into err. A lone close failure is
// returned as is.
func appendClose(err error, closeErr *Error) error {
	if err == nil {
		return closeErr
	}
	return multierror.Append(err, closeErr)
}

func (e *Extractor) verify(resource, dst string) (err error) {
	want, err := e.fsys.Open(resource)
	if err != nil {
		return &Error{Op: "verify", Resource: resource, Path: dst, Err: err}
	}
	defer func() {
		if cerr := want.Close(); cerr != nil {
			err = appendClose(err, &Error{Op: "close", Resource: resource, Path: dst, Err: cerr})
		}
	}()

	got, err := os.Open(dst)
	if err != nil {
		return &Error{Op: "verify", Resource: resource, Path: dst, Err: err}
	}
	defer func() {
		if cerr := got.Close(); cerr != nil {
			err = appendClose(err, &Error{Op: "close", Resource: resource, Path: dst, Err: cerr})
		}
	}()

	equal, err := verify.ContentsEqual(want, got)
	if err != nil {
		return &Error{Op: "verify", Resource: resource, Path: dst, Err: err}
	}
	if !equal {
		return &Error{Op: "verify", Resource: resource, Path: dst, Err: ErrMismatch}
	}
	return nil
}
