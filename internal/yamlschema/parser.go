// Package yamlschema reads struct schemas from YAML documents for projects
// that describe their data outside Go source.
package yamlschema

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

type document struct {
	Package string      `yaml:"package"`
	Imports []importDoc `yaml:"imports"`
	Structs []structDoc `yaml:"structs"`
}

// importDoc accepts either a bare path or a {name, path} mapping.
type importDoc struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

func (i *importDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		i.Path = node.Value
		return nil
	}
	type plain importDoc
	return node.Decode((*plain)(i))
}

type structDoc struct {
	Name   string     `yaml:"name"`
	Emit   *bool      `yaml:"emit"`
	Doc    string     `yaml:"doc"`
	Fields []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Tag     string `yaml:"tag"`
	Builder string `yaml:"builder"`
}

// Parser implements schema.Parser for YAML struct schemas.
type Parser struct {
	directive string
	pkg       string
	wrappers  []string
	wrapPath  string
}

var _ schema.Parser = (*Parser)(nil)

// New constructs a Parser. The package option is used when the document does
// not declare one.
func New(options schema.ParserOptions) *Parser {
	p := &Parser{
		directive: options.Directive,
		pkg:       options.Package,
		wrappers:  []string{options.OptionalWrapper, options.RepeatedWrapper},
		wrapPath:  options.WrapperImport,
	}
	if p.directive == "" {
		p.directive = schema.DefaultDirective
	}
	if p.pkg == "" {
		p.pkg = schema.DefaultPackage
	}
	return p
}

// Parse implements schema.Parser.
func (p *Parser) Parse(ctx context.Context, doc schema.Document) (schema.File, error) {
	if err := ctx.Err(); err != nil {
		return schema.File{}, err
	}

	var raw document
	if err := yaml.Unmarshal(doc.Raw(), &raw); err != nil {
		return schema.File{}, fmt.Errorf("yaml parser: decode %s: %w", doc.Location(), err)
	}
	if len(raw.Structs) == 0 {
		return schema.File{}, errors.New("yaml parser: document declares no structs")
	}

	out := schema.File{
		Package: raw.Package,
		Path:    doc.Location(),
	}
	if out.Package == "" {
		out.Package = p.pkg
	}
	for _, imp := range raw.Imports {
		if imp.Path == "" {
			return schema.File{}, errors.New("yaml parser: import path is required")
		}
		out.Imports = append(out.Imports, schema.Import{Name: imp.Name, Path: imp.Path})
	}

	for _, s := range raw.Structs {
		parsed, err := p.parseStruct(s)
		if err != nil {
			return schema.File{}, err
		}
		out.Structs = append(out.Structs, parsed)
	}
	out.EnsureWrapperImport(p.wrapPath, p.wrappers...)
	return out, nil
}

func (p *Parser) parseStruct(s structDoc) (schema.Struct, error) {
	if s.Name == "" {
		return schema.Struct{}, errors.New("yaml parser: struct name is required")
	}
	out := schema.Struct{
		Name:       s.Name,
		Doc:        s.Doc,
		EmitStruct: s.Emit == nil || *s.Emit,
		Marked:     true,
	}
	for i, f := range s.Fields {
		if f.Name == "" {
			return schema.Struct{}, fmt.Errorf("yaml parser: %s: field %d has no name", s.Name, i)
		}
		typ, err := schema.ParseTypeExpr(f.Type)
		if err != nil {
			return schema.Struct{}, fmt.Errorf("yaml parser: %s.%s: %w", s.Name, f.Name, err)
		}
		field := schema.Field{Name: f.Name, Type: typ, Tag: f.Tag}
		if f.Builder != "" {
			field.Annotations = []schema.RawAnnotation{{Path: p.directive, Args: schema.TokenizeArgs(f.Builder)}}
		}
		out.Fields = append(out.Fields, field)
	}
	return out, nil
}
