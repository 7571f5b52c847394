package buildergen

import (
	"embed"
	"io/fs"
)

//go:embed pkg/option/doc.go pkg/option/errors.go pkg/option/option.go
var embeddedRuntime embed.FS

// RuntimeFS exposes the sources of the option package generated builders
// import, so projects can vendor it under their own import path and point
// runtime.import in .buildergen.yaml at the copy.
//
// Typical use:
//
//	buildergen runtime --out internal/option
func RuntimeFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntime, "pkg/option")
	if err != nil {
		return embeddedRuntime
	}
	return sub
}
