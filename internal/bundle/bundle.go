// Package bundle holds the native libraries shipped inside the binary.
//
// Libraries are laid out as lib/<os>/<arch>/<file>, for example
// lib/Mac/x86_64/libsqlsmith.dylib. They are only embedded when building
// with the embed_native tag; otherwise the bundle is empty.
//
// To build a self-contained binary, copy each platform's library into
// internal/bundle/lib/<os>/<arch>/ and build with -tags embed_native. The
// build fails with "pattern lib: no matching files found" until at least one
// library is in place.
package bundle

import "io/fs"

// FS returns the bundled resource space.
func FS() fs.FS {
	return files
}

// Embedded reports whether this binary was built with bundled libraries.
func Embedded() bool {
	return embedded
}
