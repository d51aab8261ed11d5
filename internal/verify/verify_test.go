package verify

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentsEqual(t *testing.T) {
	large := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 10000)

	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"both empty", nil, nil, true},
		{"same", []byte("native"), []byte("native"), true},
		{"same large", large, append([]byte(nil), large...), true},
		{"differ", []byte("native"), []byte("nativf"), false},
		{"prefix", []byte("nat"), []byte("native"), false},
		{"longer", []byte("native"), []byte("nat"), false},
		{"empty vs data", nil, []byte{0}, false},
		{"zero bytes", []byte{0, 0}, []byte{0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContentsEqual(bytes.NewReader(tt.a), bytes.NewReader(tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentsEqualDifferAtEnd(t *testing.T) {
	a := bytes.Repeat([]byte{1}, 9000)
	b := append(bytes.Repeat([]byte{1}, 8999), 2)

	got, err := ContentsEqual(bytes.NewReader(a), bytes.NewReader(b))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestContentsEqualAlreadyBuffered(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("library"))
	assert.Same(t, br, buffered(br))

	got, err := ContentsEqual(br, strings.NewReader("library"))
	require.NoError(t, err)
	assert.True(t, got)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestContentsEqualReadError(t *testing.T) {
	_, err := ContentsEqual(strings.NewReader("x"), failingReader{})
	assert.EqualError(t, err, "disk on fire")

	_, err = ContentsEqual(io.MultiReader(failingReader{}), strings.NewReader("x"))
	assert.Error(t, err)
}
