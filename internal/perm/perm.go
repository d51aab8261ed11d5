// Package perm sets file permissions on extracted libraries.
package perm

import (
	"fmt"
	"os"
)

// Executable is world-readable, owner-writable and executable.
const Executable os.FileMode = 0755

// MakeExecutable marks the file at path readable, owner-writable and
// executable so the dynamic loader can map it.
func MakeExecutable(path string) error {
	if err := os.Chmod(path, Executable); err != nil {
		return fmt.Errorf("cannot set permissions on %s: %w", path, err)
	}
	return nil
}
