// Package buildergen generates fluent builders for Go structs. The root
// package re-exports the common entry points; the pipeline lives in
// pkg/orchestrator.
package buildergen

import (
	"context"

	"github.com/goliatone/go-buildergen/pkg/orchestrator"
	"github.com/goliatone/go-buildergen/pkg/render"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// RenderOptions aliases render.RenderOptions for callers of the root package.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateSource loads source, detects its format and renders builders for
// the requested structs (marked ones when types is empty) as Go code.
func GenerateSource(ctx context.Context, source schema.Source, types []string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source: source,
		Types:  types,
	})
}

// GenerateFromDocument renders builders from a pre-loaded document,
// bypassing the loader.
func GenerateFromDocument(ctx context.Context, doc schema.Document, types []string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document: &doc,
		Types:    types,
	})
}
