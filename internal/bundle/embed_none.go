//go:build !embed_native

package bundle

import "embed"

var files embed.FS

const embedded = false
