package platform

import "path"

// ResourceRoot is the top directory of the bundled library tree.
const ResourceRoot = "lib"

// MapLibraryName returns the file name a shared library called name has on
// the given OS, e.g. "libfoo.dylib" on Mac and "foo.dll" on Windows.
func MapLibraryName(name, osName string) string {
	switch osName {
	case "Mac":
		return "lib" + name + ".dylib"
	case "Windows":
		return name + ".dll"
	default:
		return "lib" + name + ".so"
	}
}

// ResourceDir returns the directory holding the library for p inside the
// bundled resource space: lib/<os>/<arch>.
func ResourceDir(p Platform) string {
	return path.Join(ResourceRoot, p.OS, p.Arch)
}
