package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAllowed(t *testing.T) {
	err := Check(Platform{OS: "Mac", Arch: "x86_64"}, DefaultSupported)
	assert.NoError(t, err)
}

func TestCheckUnsupported(t *testing.T) {
	err := Check(Platform{OS: "Linux", Arch: "aarch64"}, DefaultSupported)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.Contains(t, err.Error(), "os.name=Linux")
	assert.Contains(t, err.Error(), "os.arch=aarch64")

	var unsupported *UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "Linux", unsupported.OS)
	assert.Equal(t, "aarch64", unsupported.Arch)
}

func TestCheckEmptySet(t *testing.T) {
	err := Check(Platform{OS: "Mac", Arch: "x86_64"}, NewSet())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFromGo(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         Platform
	}{
		{"darwin", "amd64", Platform{"Mac", "x86_64"}},
		{"linux", "arm64", Platform{"Linux", "aarch64"}},
		{"windows", "386", Platform{"Windows", "x86"}},
		{"plan9", "mips", Platform{"plan9", "mips"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromGo(tt.goos, tt.goarch), "%s/%s", tt.goos, tt.goarch)
	}
}

func TestCurrentIsStable(t *testing.T) {
	assert.Equal(t, Current(), Current())
	assert.NotEmpty(t, Current().OS)
}

func TestParse(t *testing.T) {
	p, err := Parse(" Linux/x86_64 ")
	require.NoError(t, err)
	assert.Equal(t, Platform{OS: "Linux", Arch: "x86_64"}, p)

	for _, bad := range []string{"", "Linux", "/x86_64", "Linux/", "a/b/c"} {
		_, err := Parse(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseSet(t *testing.T) {
	s, err := ParseSet([]string{"Mac/x86_64", "Linux/x86_64"})
	require.NoError(t, err)
	assert.True(t, s.Contains(Platform{"Linux", "x86_64"}))
	assert.Equal(t, []Platform{{"Linux", "x86_64"}, {"Mac", "x86_64"}}, s.Sorted())

	_, err = ParseSet([]string{"Mac"})
	assert.Error(t, err)
}

func TestMapLibraryName(t *testing.T) {
	assert.Equal(t, "libsqlsmith.dylib", MapLibraryName("sqlsmith", "Mac"))
	assert.Equal(t, "libsqlsmith.so", MapLibraryName("sqlsmith", "Linux"))
	assert.Equal(t, "sqlsmith.dll", MapLibraryName("sqlsmith", "Windows"))
}

func TestResourceDir(t *testing.T) {
	assert.Equal(t, "lib/Mac/x86_64", ResourceDir(Platform{OS: "Mac", Arch: "x86_64"}))
}
