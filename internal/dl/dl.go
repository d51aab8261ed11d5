// Package dl checks that an extracted shared library can actually be opened
// by the system dynamic loader.
package dl

import "errors"

// ErrUnsupported is returned where the host has no dlopen.
var ErrUnsupported = errors.New("dynamic loading is not supported on this platform")
