// Package loader extracts the bundled native library for the current
// platform so it can be dynamically loaded.
//
// A Loader checks the platform against an allow-list, locates
// lib/<os>/<arch>/<mapped name> in the resource space, copies it to a
// uniquely named file, verifies the copy and makes it executable. Every call
// to Load produces a new file; the caller owns it and is responsible for
// removing it.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/bagtoad/nativelib/internal/bundle"
	"github.com/bagtoad/nativelib/internal/extract"
	"github.com/bagtoad/nativelib/internal/perm"
	"github.com/bagtoad/nativelib/internal/platform"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultVersion tags extracted file names when no version is configured.
const DefaultVersion = "0.1.0"

// ErrInvalidName is returned for library names that are empty or could
// escape the output directory.
var ErrInvalidName = errors.New("invalid library name")

// ValidateName checks that name is a bare library name such as "sqlsmith".
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Library is the result of a successful Load.
type Library struct {
	Name     string
	Platform platform.Platform
	Resource string // path inside the resource space
	Path     string // extracted file on disk
}

// Loader extracts one named library. It is safe to call Load concurrently.
type Loader struct {
	name      string
	version   string
	platform  platform.Platform
	supported platform.Set
	fsys      fs.FS
	outputDir string
	log       *zap.Logger
	newID     func() string
}

// Option configures a Loader.
type Option func(*Loader)

// WithPlatform overrides the detected platform.
func WithPlatform(p platform.Platform) Option {
	return func(l *Loader) { l.platform = p }
}

// WithSupported replaces the platform allow-list.
func WithSupported(s platform.Set) Option {
	return func(l *Loader) { l.supported = s }
}

// WithVersion sets the version prefix of extracted file names.
func WithVersion(v string) Option {
	return func(l *Loader) {
		if v != "" {
			l.version = v
		}
	}
}

// WithFS sets the resource space the library is read from. It defaults to
// the bundle compiled into the binary.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) { l.fsys = fsys }
}

// WithOutputDir extracts into dir instead of a fresh temporary directory.
func WithOutputDir(dir string) Option {
	return func(l *Loader) { l.outputDir = dir }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithIDGenerator replaces the random component of extracted file names.
func WithIDGenerator(fn func() string) Option {
	return func(l *Loader) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// New returns a Loader for the library called name, e.g. "sqlsmith".
func New(name string, opts ...Option) *Loader {
	l := &Loader{
		name:      name,
		version:   DefaultVersion,
		platform:  platform.Current(),
		supported: platform.DefaultSupported,
		fsys:      bundle.FS(),
		log:       zap.NewNop(),
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the logical library name.
func (l *Loader) Name() string {
	return l.name
}

// Platform returns the platform the loader extracts for.
func (l *Loader) Platform() platform.Platform {
	return l.platform
}

// CheckPlatformSupported fails with *platform.UnsupportedError when the
// loader's platform is not on the allow-list.
func (l *Loader) CheckPlatformSupported() error {
	return platform.Check(l.platform, l.supported)
}

// LibraryFileName returns the platform specific file name of the library.
func (l *Loader) LibraryFileName() string {
	return platform.MapLibraryName(l.name, l.platform.OS)
}

// ResourcePath returns where the library is expected in the resource space.
func (l *Loader) ResourcePath() string {
	return path.Join(platform.ResourceDir(l.platform), l.LibraryFileName())
}

// OutputName returns a fresh file name of the form <version>-<id>-<file>.
func (l *Loader) OutputName() string {
	return fmt.Sprintf("%s-%s-%s", l.version, l.newID(), l.LibraryFileName())
}

// Load extracts the library for the loader's platform and returns the
// extracted file. Names rejected by ValidateName fail before anything is
// written.
func (l *Loader) Load() (*Library, error) {
	if err := ValidateName(l.name); err != nil {
		return nil, err
	}
	if err := l.CheckPlatformSupported(); err != nil {
		return nil, err
	}

	dir := platform.ResourceDir(l.platform)
	fileName := l.LibraryFileName()
	resource := l.ResourcePath()
	if !extract.Has(l.fsys, resource) {
		// the platform is allowed but nothing was bundled for it
		l.log.Error("native library not bundled", zap.String("resource", resource))
		return nil, &extract.Error{Op: "open", Resource: resource, Err: extract.ErrNotFound}
	}

	outputName := l.OutputName()
	e := extract.New(l.fsys, extract.WithLogger(l.log))

	var (
		extracted string
		err       error
	)
	if l.outputDir != "" {
		extracted, err = e.ExtractAs(dir, fileName, l.outputDir, outputName)
	} else {
		extracted, err = e.ExtractToTemp(dir, fileName, outputName)
	}
	if err != nil {
		return nil, err
	}

	if err := perm.MakeExecutable(extracted); err != nil {
		l.log.Warn("cannot mark library executable", zap.String("path", extracted), zap.Error(err))
	}

	l.log.Info("extracted native library",
		zap.String("library", l.name),
		zap.String("platform", l.platform.String()),
		zap.String("path", extracted),
	)

	return &Library{
		Name:     l.name,
		Platform: l.platform,
		Resource: resource,
		Path:     extracted,
	}, nil
}
