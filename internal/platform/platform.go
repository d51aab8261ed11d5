// Package platform describes the operating system and CPU architecture the
// process runs on, and decides whether that pair is one we ship a native
// library for.
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupported is matched by every error returned from Check.
var ErrUnsupported = errors.New("unsupported platform")

// Platform is an (operating system, architecture) pair using the names of the
// bundled resource layout, e.g. {"Mac", "x86_64"}.
type Platform struct {
	OS   string
	Arch string
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// osNames maps GOOS values to resource directory names.
var osNames = map[string]string{
	"darwin":  "Mac",
	"linux":   "Linux",
	"windows": "Windows",
	"freebsd": "FreeBSD",
}

// archNames maps GOARCH values to resource directory names.
var archNames = map[string]string{
	"amd64":   "x86_64",
	"arm64":   "aarch64",
	"386":     "x86",
	"arm":     "arm",
	"ppc64le": "ppc64le",
	"s390x":   "s390x",
}

var (
	currentOnce sync.Once
	current     Platform
)

// Current returns the platform of the running process. It is computed once.
func Current() Platform {
	currentOnce.Do(func() {
		current = FromGo(runtime.GOOS, runtime.GOARCH)
	})
	return current
}

// FromGo translates GOOS/GOARCH values. Unknown values are kept as-is.
func FromGo(goos, goarch string) Platform {
	p := Platform{OS: goos, Arch: goarch}
	if name, ok := osNames[goos]; ok {
		p.OS = name
	}
	if name, ok := archNames[goarch]; ok {
		p.Arch = name
	}
	return p
}

// Parse reads a descriptor written as "os/arch".
func Parse(s string) (Platform, error) {
	osName, arch, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || osName == "" || arch == "" || strings.Contains(arch, "/") {
		return Platform{}, fmt.Errorf("invalid platform %q: want os/arch", s)
	}
	return Platform{OS: osName, Arch: arch}, nil
}

// Set is an allow-list of platforms.
type Set map[Platform]struct{}

// DefaultSupported is the only pair a library is shipped for unless
// configured otherwise.
var DefaultSupported = NewSet(Platform{OS: "Mac", Arch: "x86_64"})

// NewSet builds a Set from the given platforms.
func NewSet(platforms ...Platform) Set {
	s := make(Set, len(platforms))
	for _, p := range platforms {
		s[p] = struct{}{}
	}
	return s
}

// ParseSet parses a list of "os/arch" descriptors.
func ParseSet(values []string) (Set, error) {
	s := make(Set, len(values))
	for _, v := range values {
		p, err := Parse(v)
		if err != nil {
			return nil, err
		}
		s[p] = struct{}{}
	}
	return s, nil
}

// Contains reports whether p is in the set.
func (s Set) Contains(p Platform) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the members ordered by their string form.
func (s Set) Sorted() []Platform {
	out := make([]Platform, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// UnsupportedError is returned by Check for a platform outside the allow-list.
type UnsupportedError struct {
	OS   string
	Arch string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported platform: os.name=%s and os.arch=%s", e.OS, e.Arch)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Check fails with *UnsupportedError unless p is in supported.
func Check(p Platform, supported Set) error {
	if supported.Contains(p) {
		return nil
	}
	return &UnsupportedError{OS: p.OS, Arch: p.Arch}
}
