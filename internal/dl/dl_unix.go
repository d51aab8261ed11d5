//go:build darwin || linux || freebsd

package dl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Probe opens the library at path with RTLD_NOW and closes it again.
func Probe(path string) error {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("failed to load shared library: %w", err)
	}
	if handle == 0 {
		return fmt.Errorf("shared library handle is nil after loading: %s", path)
	}
	if err := purego.Dlclose(handle); err != nil {
		return fmt.Errorf("failed to close library: %w", err)
	}
	return nil
}
