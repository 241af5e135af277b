package buildergen

import (
	"io/fs"

	"github.com/goliatone/go-buildergen/pkg/renderers/golang"
)

// EmbeddedTemplates exposes the built-in Go renderer templates so callers can
// copy and adjust them, then pass the result to golang.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return golang.TemplatesFS()
}
