package golang

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
	rendertemplate "github.com/goliatone/go-buildergen/pkg/render/template"
	gotemplate "github.com/goliatone/go-buildergen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Name is the registry key of the Go renderer.
const Name = "go"

// DefaultHeader is the first line of every generated file, matching the
// convention go vet and linters use to detect generated code.
const DefaultHeader = "Code generated by buildergen. DO NOT EDIT."

// runtimePkgs holds the identifiers generated code uses for the packages
// builders call into. Unused ones are pruned after stitching.
type runtimePkgs struct {
	Errors  string `json:"errors"`
	Slices  string `json:"slices"`
	Strings string `json:"strings"`
}

var stdRuntime = runtimePkgs{Errors: "errors", Slices: "slices", Strings: "strings"}

type Option func(*config)

type config struct {
	templateFS  fs.FS
	templateDir string
	header      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. It must
// provide builder.tpl and file.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates found
// there shadow the bundled ones, so the directory may override just
// builder.tpl.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithHeader overrides DefaultHeader for every render.
func WithHeader(header string) Option {
	return func(cfg *config) {
		if header = strings.TrimSpace(header); header != "" {
			cfg.header = header
		}
	}
}

// Renderer emits Go builder source for planned structs.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	header    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the Go renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), header: DefaultHeader}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(cfg.templateDir),
		gotemplate.WithFS(cfg.templateFS),
	)
	if err != nil {
		return nil, fmt.Errorf("golang renderer: configure template renderer: %w", err)
	}

	return &Renderer{templates: engine, header: cfg.header}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/x-go; charset=utf-8"
}

func (r *Renderer) Extensions() []string {
	return []string{".go"}
}

// Render stitches one builder declaration per planned struct into a single
// gofmt'ed file.
func (r *Renderer) Render(ctx context.Context, file model.File, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("golang renderer: template renderer is nil")
	}

	pkg := file.Package
	if options.Package != "" {
		pkg = options.Package
	}
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("golang renderer: invalid package name %q", pkg)
	}
	header := r.header
	if options.Header != "" {
		header = options.Header
	}

	pkgs, runtime := resolveRuntime(file.Imports)
	decls := make([]string, 0, len(file.Builders))
	for _, builder := range file.Builders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		decl, err := r.renderBuilder(builder.DistinctSlots(), pkgs)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}

	stitched, err := r.templates.RenderTemplate("file", map[string]any{
		"header":   header,
		"package":  pkg,
		"imports":  importLines(append(runtime, file.Imports...)),
		"builders": decls,
	})
	if err != nil {
		return nil, fmt.Errorf("golang renderer: render file: %w", err)
	}
	if options.SkipFormat {
		return []byte(stitched), nil
	}
	return tidy(filepath.Base(file.Source), []byte(stitched), file.Wrappers)
}

func (r *Renderer) renderBuilder(builder model.BuilderModel, pkgs runtimePkgs) (string, error) {
	if err := checkNames(builder); err != nil {
		return "", err
	}
	out, err := r.templates.RenderTemplate("builder", map[string]any{
		"struct":       builder.Struct,
		"doc":          builder.Doc,
		"builder":      builder.Builder,
		"constructor":  builder.Constructor,
		"buildMethod":  builder.BuildMethod,
		"emitStruct":   builder.EmitStruct,
		"structFields": structFields(builder.Fields),
		"fragments":    emit(builder, pkgs),
		"pkgs":         pkgs,
	})
	if err != nil {
		return "", fmt.Errorf("golang renderer: render builder %s: %w", builder.Struct, err)
	}
	return out, nil
}

// resolveRuntime picks the names generated code uses for the runtime
// packages. A source import already claiming one of the names pushes the
// runtime package behind a "std" alias.
func resolveRuntime(imports []schema.Import) (runtimePkgs, []schema.Import) {
	taken := make(map[string]string, len(imports))
	for _, imp := range imports {
		if imp.Name == "." || imp.Name == "_" {
			continue
		}
		taken[imp.AssumedName()] = imp.Path
	}

	var specs []schema.Import
	name := func(path string) string {
		imp := schema.Import{Path: path}
		if owner, ok := taken[path]; ok && owner != path {
			imp.Name = "std" + path
			for taken[imp.Name] != "" {
				imp.Name += "_"
			}
			taken[imp.Name] = path
		}
		specs = append(specs, imp)
		return imp.AssumedName()
	}
	pkgs := runtimePkgs{
		Errors:  name(stdRuntime.Errors),
		Slices:  name(stdRuntime.Slices),
		Strings: name(stdRuntime.Strings),
	}
	return pkgs, specs
}

// importLines groups the imports: standard library first, then everything
// else, each group sorted and deduplicated.
func importLines(imports []schema.Import) []string {
	seen := make(map[schema.Import]struct{})
	var std, other []schema.Import
	for _, imp := range imports {
		if imp.Path == "" {
			continue
		}
		if imp.Name != "" && imp.Name == (schema.Import{Path: imp.Path}).AssumedName() {
			imp.Name = ""
		}
		if _, ok := seen[imp]; ok {
			continue
		}
		seen[imp] = struct{}{}
		if imp.Standard() {
			std = append(std, imp)
		} else {
			other = append(other, imp)
		}
	}
	sortImports(std)
	sortImports(other)

	lines := make([]string, 0, len(std)+len(other)+1)
	for _, imp := range std {
		lines = append(lines, imp.Spec())
	}
	if len(std) > 0 && len(other) > 0 {
		lines = append(lines, "")
	}
	for _, imp := range other {
		lines = append(lines, imp.Spec())
	}
	return lines
}

// tidy drops imports the generated code does not reference and formats the
// result. Dot imports stay only while one of the wrapper names is still
// referenced; with no wrapper names known they are kept.
func tidy(name string, src []byte, wrappers []string) ([]byte, error) {
	if name == "" || name == "." {
		name = "builder.go"
	}
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, name, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("golang renderer: parse generated source: %w", err)
	}

	var imports []schema.Import
	for _, spec := range parsed.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := schema.Import{Path: path}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}
		imports = append(imports, imp)
	}

	refs := collectRefs(parsed, imports)
	for _, imp := range imports {
		if !refs.uses(imp, wrappers) {
			astutil.DeleteNamedImport(fset, parsed, imp.Name, imp.Path)
		}
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, parsed); err != nil {
		return nil, fmt.Errorf("golang renderer: format generated source: %w", err)
	}
	return buf.Bytes(), nil
}

// refs records the identifiers a generated file leaves unresolved.
type refs struct {
	// qualifiers are the X of pkg.Sel selectors.
	qualifiers map[string]bool
	// idents are the remaining unqualified identifiers.
	idents map[string]bool
	// unexplained is set when a qualifier matches no import name, meaning
	// some import's package name differs from what its path suggests.
	unexplained bool
}

func collectRefs(file *ast.File, imports []schema.Import) refs {
	r := refs{qualifiers: map[string]bool{}, idents: map[string]bool{}}

	var visit func(ast.Node) bool
	visit = func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.SelectorExpr:
			if x, ok := n.X.(*ast.Ident); ok && x.Obj == nil {
				r.qualifiers[x.Name] = true
				return false
			}
			ast.Inspect(n.X, visit)
			return false
		case *ast.KeyValueExpr:
			ast.Inspect(n.Value, visit)
			return false
		case *ast.FuncDecl:
			if n.Recv != nil {
				ast.Inspect(n.Recv, visit)
			}
			ast.Inspect(n.Type, visit)
			if n.Body != nil {
				ast.Inspect(n.Body, visit)
			}
			return false
		case *ast.Field:
			ast.Inspect(n.Type, visit)
			return false
		case *ast.Ident:
			if n.Obj == nil {
				r.idents[n.Name] = true
			}
		}
		return true
	}
	for _, decl := range file.Decls {
		if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.IMPORT {
			continue
		}
		ast.Inspect(decl, visit)
	}

	names := make(map[string]bool, len(imports))
	for _, imp := range imports {
		names[imp.AssumedName()] = true
	}
	for q := range r.qualifiers {
		if !names[q] {
			r.unexplained = true
			break
		}
	}
	return r
}

func (r refs) uses(imp schema.Import, wrappers []string) bool {
	switch imp.Name {
	case "_":
		return true
	case ".":
		if len(wrappers) == 0 {
			return true
		}
		return slices.ContainsFunc(wrappers, func(w string) bool { return r.idents[w] })
	}
	if r.qualifiers[imp.AssumedName()] {
		return true
	}
	return r.unexplained && imp.Name == "" && !imp.Standard()
}

func sortImports(imports []schema.Import) {
	slices.SortFunc(imports, func(a, b schema.Import) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
