// Package scanner lists the native libraries present in a resource space.
package scanner

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bagtoad/nativelib/internal/platform"
)

// Entry is one bundled library file.
type Entry struct {
	Platform platform.Platform
	File     string
	Size     int64
}

// Path returns the entry's location inside the resource space.
func (e Entry) Path() string {
	return path.Join(platform.ResourceDir(e.Platform), e.File)
}

// Scan walks lib/<os>/<arch>/ in fsys and returns every regular file found
// at that depth, sorted by path. Hidden files and files at other depths are
// ignored.
func Scan(fsys fs.FS) ([]Entry, error) {
	if _, err := fs.Stat(fsys, platform.ResourceRoot); err != nil {
		return nil, fmt.Errorf("no bundled libraries: %w", err)
	}

	var entries []Entry
	err := fs.WalkDir(fsys, platform.ResourceRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && p != platform.ResourceRoot {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		parts := strings.Split(p, "/")
		if len(parts) != 4 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("cannot stat %s: %w", p, err)
		}
		entries = append(entries, Entry{
			Platform: platform.Platform{OS: parts[1], Arch: parts[2]},
			File:     parts[3],
			Size:     info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot scan bundle: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no bundled libraries found under %s", platform.ResourceRoot)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path() < entries[j].Path() })
	return entries, nil
}
