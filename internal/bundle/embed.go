//go:build embed_native

package bundle

import "embed"

//go:embed lib
var libFS embed.FS

var files = libFS

const embedded = true
