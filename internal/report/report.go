// Package report renders human readable output for the nativelib commands.
package report

import (
	"fmt"
	"io"

	"github.com/bagtoad/nativelib/internal/loader"
	"github.com/bagtoad/nativelib/internal/platform"
	"github.com/bagtoad/nativelib/internal/scanner"
)

// PrintLoad writes a summary of an extracted library.
func PrintLoad(w io.Writer, lib *loader.Library) {
	fmt.Fprintf(w, "Library:   %s\n", lib.Name)
	fmt.Fprintf(w, "Platform:  %s\n", lib.Platform)
	fmt.Fprintf(w, "Resource:  %s\n", lib.Resource)
	fmt.Fprintf(w, "Extracted: %s\n", lib.Path)
}

// PrintPlatform writes the running platform and whether it is supported.
func PrintPlatform(w io.Writer, p platform.Platform, supported platform.Set) {
	status := "supported"
	if !supported.Contains(p) {
		status = "unsupported"
	}
	fmt.Fprintf(w, "Platform:  %s (%s)\n", p, status)
	fmt.Fprint(w, "Allowed:  ")
	for _, s := range supported.Sorted() {
		fmt.Fprintf(w, " %s", s)
	}
	fmt.Fprintln(w)
}

// PrintInventory lists bundled libraries, marking the ones whose platform is
// on the allow-list.
func PrintInventory(w io.Writer, entries []scanner.Entry, supported platform.Set) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No bundled libraries.")
		return
	}

	fmt.Fprintf(w, "Bundled libraries: %d\n\n", len(entries))
	for _, e := range entries {
		mark := " "
		if supported.Contains(e.Platform) {
			mark = "*"
		}
		fmt.Fprintf(w, "  %s %-20s %-28s %10d bytes\n", mark, e.Platform, e.File, e.Size)
	}
	fmt.Fprintln(w, "\n* = allowed on this build")
}
