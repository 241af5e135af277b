// Package golang is the Go source frontend. It reads struct declarations and
// their comment directives into the schema IR.
package golang

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// MarkerArg is the directive argument that selects a struct for generation,
// as in //builder:generate.
const MarkerArg = "generate"

// Parser implements schema.Parser for Go source files.
type Parser struct {
	directive string
}

var _ schema.Parser = (*Parser)(nil)

// New constructs a Parser. Only the directive namespace is used; package
// names always come from the source.
func New(options schema.ParserOptions) *Parser {
	directive := options.Directive
	if directive == "" {
		directive = schema.DefaultDirective
	}
	return &Parser{directive: directive}
}

// Parse implements schema.Parser.
func (p *Parser) Parse(ctx context.Context, doc schema.Document) (schema.File, error) {
	if err := ctx.Err(); err != nil {
		return schema.File{}, err
	}
	return p.ParseSource(doc.Location(), doc.Raw())
}

// ParseSource parses one Go file. Every non-generic struct type is returned;
// Marked tells which ones carry the generate marker.
func (p *Parser) ParseSource(filename string, src []byte) (schema.File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return schema.File{}, fmt.Errorf("golang parser: %w", err)
	}

	out := schema.File{
		Package: file.Name.Name,
		Path:    filename,
		Imports: collectImports(file),
	}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok || typeSpec.Assign.IsValid() {
				continue
			}

			doc := typeSpec.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			marked := p.hasMarker(doc)

			if typeSpec.TypeParams != nil && typeSpec.TypeParams.NumFields() > 0 {
				if marked {
					return schema.File{}, fmt.Errorf("golang parser: %s: %s: generic structs are not supported",
						fset.Position(typeSpec.Pos()), typeSpec.Name.Name)
				}
				continue
			}

			out.Structs = append(out.Structs, schema.Struct{
				Name:   typeSpec.Name.Name,
				Doc:    strings.TrimSpace(doc.Text()),
				Marked: marked,
				Fields: p.collectFields(structType),
			})
		}
	}
	return out, nil
}

func (p *Parser) hasMarker(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		raw, ok := schema.ParseDirective(c.Text, p.directive)
		if !ok {
			continue
		}
		if len(raw.Args) == 1 && raw.Args[0].Kind == schema.TokenIdent && raw.Args[0].Text == MarkerArg {
			return true
		}
	}
	return false
}

// collectFields yields one descriptor per declared name. Embedded and blank
// fields cannot be set through a builder and are skipped.
func (p *Parser) collectFields(st *ast.StructType) []schema.Field {
	var fields []schema.Field
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue
		}
		typ := schema.TypeExprFromAST(field.Type)
		annotations := p.directives(field.Doc, field.Comment)
		tag := ""
		if field.Tag != nil {
			if unquoted, err := strconv.Unquote(field.Tag.Value); err == nil {
				tag = unquoted
			}
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				continue
			}
			fields = append(fields, schema.Field{
				Name:        name.Name,
				Type:        typ,
				Annotations: append([]schema.RawAnnotation(nil), annotations...),
				Tag:         tag,
			})
		}
	}
	return fields
}

// directives collects the field's directives, doc comment first, then the
// trailing comment.
func (p *Parser) directives(groups ...*ast.CommentGroup) []schema.RawAnnotation {
	var out []schema.RawAnnotation
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, c := range group.List {
			if raw, ok := schema.ParseDirective(c.Text, p.directive); ok {
				out = append(out, raw)
			}
		}
	}
	return out
}

func collectImports(file *ast.File) []schema.Import {
	var out []schema.Import
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := schema.Import{Path: path}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}
		if imp.Name == "_" {
			continue
		}
		out = append(out, imp)
	}
	return out
}
