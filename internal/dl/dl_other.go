//go:build !(darwin || linux || freebsd)

package dl

// Probe is not available on this platform.
func Probe(path string) error {
	return ErrUnsupported
}
