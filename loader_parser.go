package buildergen

import (
	"fmt"

	golangparser "github.com/goliatone/go-buildergen/internal/golang"
	internalloader "github.com/goliatone/go-buildergen/internal/loader"
	openapiparser "github.com/goliatone/go-buildergen/internal/openapi/parser"
	"github.com/goliatone/go-buildergen/internal/yamlschema"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return internalloader.New(schema.NewLoaderOptions(options...))
}

// NewParser constructs the frontend for format.
func NewParser(format schema.Format, options ...schema.ParserOption) (schema.Parser, error) {
	cfg := schema.NewParserOptions(options...)
	switch format {
	case schema.FormatGo:
		return golangparser.New(cfg), nil
	case schema.FormatYAML:
		return yamlschema.New(cfg), nil
	case schema.FormatOpenAPI:
		return openapiparser.New(cfg), nil
	default:
		return nil, fmt.Errorf("buildergen: unknown format %q", format)
	}
}
