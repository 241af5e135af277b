// Package parser is the OpenAPI frontend: object schemas under
// components.schemas become struct schemas.
package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-buildergen/internal/naming"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// BuilderExtension carries a builder directive on a property, written the
// way it would follow the colon of a Go comment directive.
const BuilderExtension = "x-builder"

const componentRefPrefix = "#/components/schemas/"

// Option configures parser behaviour beyond the shared ParserOptions.
type Option func(*Parser)

// WithValidation validates the document with kin-openapi before converting
// it. Broken references then fail early instead of degrading to "any".
func WithValidation(enabled bool) Option {
	return func(p *Parser) {
		p.validate = enabled
	}
}

// WithExternalRefs allows $ref values pointing outside the document.
func WithExternalRefs(enabled bool) Option {
	return func(p *Parser) {
		p.externalRefs = enabled
	}
}

// Parser implements schema.Parser using kin-openapi.
type Parser struct {
	options      schema.ParserOptions
	validate     bool
	externalRefs bool
}

var _ schema.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options schema.ParserOptions, opts ...Option) *Parser {
	if options.Package == "" {
		options.Package = schema.DefaultPackage
	}
	if options.Directive == "" {
		options.Directive = schema.DefaultDirective
	}
	if options.OptionalWrapper == "" {
		options.OptionalWrapper = schema.DefaultOptionalWrapper
	}
	if options.RepeatedWrapper == "" {
		options.RepeatedWrapper = schema.DefaultRepeatedWrapper
	}
	p := &Parser{options: options}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Parse converts every object schema under components.schemas, sorted by
// component name. Inline object properties become their own structs named
// after the parent and the property.
func (p *Parser) Parse(ctx context.Context, doc schema.Document) (schema.File, error) {
	if err := ctx.Err(); err != nil {
		return schema.File{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return schema.File{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.externalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.File{}, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return schema.File{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return schema.File{}, errors.New("openapi parser: document has no component schemas")
	}

	c := &converter{parser: p}
	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		ref := spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil || !isObject(ref.Value) {
			continue
		}
		if err := c.convertObject(naming.GoName(name), ref.Value); err != nil {
			return schema.File{}, err
		}
	}
	if len(c.structs) == 0 {
		return schema.File{}, errors.New("openapi parser: no object schemas found")
	}

	out := schema.File{
		Package: p.options.Package,
		Path:    doc.Location(),
		Structs: c.structs,
	}
	if c.usesTime {
		out.Imports = append(out.Imports, schema.Import{Path: "time"})
	}
	out.EnsureWrapperImport(p.options.WrapperImport, p.options.OptionalWrapper, p.options.RepeatedWrapper)
	return out, nil
}

type converter struct {
	parser   *Parser
	structs  []schema.Struct
	usesTime bool
}

func (c *converter) convertObject(name string, value *openapi3.Schema) error {
	out := schema.Struct{
		Name:       name,
		Doc:        strings.TrimSpace(value.Description),
		EmitStruct: true,
		Marked:     true,
	}
	// Reserve the position so nested structs follow their parent.
	index := len(c.structs)
	c.structs = append(c.structs, schema.Struct{})

	required := make(map[string]bool, len(value.Required))
	for _, prop := range value.Required {
		required[prop] = true
	}

	props := make([]string, 0, len(value.Properties))
	for prop := range value.Properties {
		props = append(props, prop)
	}
	slices.Sort(props)

	for _, prop := range props {
		ref := value.Properties[prop]
		fieldName := naming.GoName(prop)
		typ, err := c.goType(name+fieldName, ref)
		if err != nil {
			return fmt.Errorf("openapi parser: %s.%s: %w", name, prop, err)
		}

		tag := fmt.Sprintf(`json:"%s"`, prop)
		if !required[prop] {
			tag = fmt.Sprintf(`json:"%s,omitempty"`, prop)
			if !isArray(ref) {
				typ = c.parser.options.OptionalWrapper + "[" + typ + "]"
			}
		}

		expr, err := schema.ParseTypeExpr(typ)
		if err != nil {
			return fmt.Errorf("openapi parser: %s.%s: %w", name, prop, err)
		}
		field := schema.Field{Name: fieldName, Type: expr, Tag: tag}
		if directive, ok := builderDirective(ref); ok {
			field.Annotations = []schema.RawAnnotation{{
				Path: c.parser.options.Directive,
				Args: schema.TokenizeArgs(directive),
			}}
		}
		out.Fields = append(out.Fields, field)
	}

	c.structs[index] = out
	return nil
}

// goType maps a property schema to Go type syntax. hint names the struct
// synthesized for inline objects.
func (c *converter) goType(hint string, ref *openapi3.SchemaRef) (string, error) {
	if ref == nil {
		return "any", nil
	}
	if ref.Ref != "" {
		name, ok := strings.CutPrefix(ref.Ref, componentRefPrefix)
		if !ok {
			return "", fmt.Errorf("unsupported reference %q", ref.Ref)
		}
		// Only object components become structs; scalar and array
		// components are inlined.
		if ref.Value == nil || isObject(ref.Value) {
			return naming.GoName(name), nil
		}
		return c.goType(hint, &openapi3.SchemaRef{Value: ref.Value})
	}
	value := ref.Value
	if value == nil {
		return "any", nil
	}

	switch {
	case value.Type.Is(openapi3.TypeString):
		switch value.Format {
		case "date-time", "date":
			c.usesTime = true
			return "time.Time", nil
		case "byte", "binary":
			return "[]byte", nil
		}
		return "string", nil
	case value.Type.Is(openapi3.TypeInteger):
		switch value.Format {
		case "int32":
			return "int32", nil
		case "int64":
			return "int64", nil
		}
		return "int", nil
	case value.Type.Is(openapi3.TypeNumber):
		if value.Format == "float" {
			return "float32", nil
		}
		return "float64", nil
	case value.Type.Is(openapi3.TypeBoolean):
		return "bool", nil
	case value.Type.Is(openapi3.TypeArray):
		elem, err := c.goType(hint+"Item", value.Items)
		if err != nil {
			return "", err
		}
		return c.parser.options.RepeatedWrapper + "[" + elem + "]", nil
	case isObject(value):
		if len(value.Properties) > 0 {
			if err := c.convertObject(hint, value); err != nil {
				return "", err
			}
			return hint, nil
		}
		if extra := value.AdditionalProperties.Schema; extra != nil {
			elem, err := c.goType(hint+"Value", extra)
			if err != nil {
				return "", err
			}
			return "map[string]" + elem, nil
		}
		return "map[string]any", nil
	}
	return "any", nil
}

func isObject(value *openapi3.Schema) bool {
	if value.Type.Is(openapi3.TypeObject) {
		return true
	}
	return value.Type == nil && len(value.Properties) > 0
}

func isArray(ref *openapi3.SchemaRef) bool {
	return ref != nil && ref.Ref == "" && ref.Value != nil && ref.Value.Type.Is(openapi3.TypeArray)
}

// builderDirective reads the x-builder extension. kin-openapi may hand the
// value over decoded or as raw JSON depending on how the document was loaded.
func builderDirective(ref *openapi3.SchemaRef) (string, bool) {
	if ref == nil || ref.Value == nil {
		return "", false
	}
	raw, ok := ref.Value.Extensions[BuilderExtension]
	if !ok {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", false
		}
		return s, s != ""
	}
	return "", false
}
