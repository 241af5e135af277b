// Package manifest renders planned builders as indented JSON so the field
// plans can be inspected or diffed without generating code.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
)

// Name is the registry key of the manifest renderer.
const Name = "json"

type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a renderer indenting with two spaces.
func New() *Renderer {
	return &Renderer{indent: "  "}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Extensions() []string {
	return []string{".json"}
}

// Render encodes the planned file. Options are ignored; the manifest carries
// no header and keeps the planned package name.
func (r *Renderer) Render(_ context.Context, file model.File, _ render.RenderOptions) ([]byte, error) {
	if file.Builders == nil {
		file.Builders = []model.BuilderModel{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", r.indent)
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("manifest renderer: encode: %w", err)
	}
	return buf.Bytes(), nil
}
