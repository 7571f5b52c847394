package buildergen

import (
	"io/fs"

	"github.com/goliatone/go-buildergen/pkg/emit"
)

// EmbeddedTemplates exposes the built-in emitter templates so callers can
// copy and extend them, then pass the result to emit.Options.Templates.
func EmbeddedTemplates() fs.FS {
	return emit.TemplatesFS()
}
