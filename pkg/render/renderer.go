package render

import (
	"context"

	"github.com/goliatone/go-buildergen/pkg/model"
)

// Renderer converts planned builders into a byte representation (Go source,
// JSON manifests, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	// Extensions lists the output file extensions the renderer claims,
	// including the leading dot.
	Extensions() []string
	Render(ctx context.Context, file model.File, options RenderOptions) ([]byte, error)
}
