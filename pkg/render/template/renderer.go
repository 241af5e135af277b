package template

import (
	"io"
)

// TemplateRenderer is the contract renderers rely on to stitch generated
// fragments into files.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
