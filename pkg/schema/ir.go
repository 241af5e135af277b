package schema

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// File is the unit a frontend produces for one document: the target package,
// the imports generated code may need, and the struct schemas in declaration
// order.
type File struct {
	Package string
	Path    string
	Imports []Import
	Structs []Struct
}

// Import is a single import spec. Name is empty unless the source aliased the
// path (including "." and "_").
type Import struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path"`
}

// Spec renders the import as it appears inside an import block.
func (i Import) Spec() string {
	if i.Name == "" {
		return strconv.Quote(i.Path)
	}
	return i.Name + " " + strconv.Quote(i.Path)
}

// Standard reports whether the import path belongs to the standard library,
// using the usual "no dot in the first element" heuristic.
func (i Import) Standard() bool {
	first, _, _ := strings.Cut(i.Path, "/")
	return !strings.Contains(first, ".")
}

// AssumedName returns the identifier the import is referenced by.
func (i Import) AssumedName() string {
	if i.Name != "" {
		return i.Name
	}
	base := path.Base(i.Path)
	if strings.HasPrefix(base, "v") {
		if _, err := strconv.Atoi(base[1:]); err == nil {
			base = path.Base(path.Dir(i.Path))
		}
	}
	base = strings.TrimPrefix(base, "go-")
	if idx := strings.IndexAny(base, ".-"); idx >= 0 {
		base = base[:idx]
	}
	return base
}

// Struct describes one data structure the engine synthesizes a builder for.
type Struct struct {
	Name string
	Doc  string
	// EmitStruct asks renderers to declare the struct itself, used by
	// frontends that do not start from Go source.
	EmitStruct bool
	// Marked reports whether the frontend selects the struct when the caller
	// does not name types explicitly: the generate marker for Go sources,
	// every struct for schema-only formats.
	Marked bool
	Fields []Field
}

// Field is one struct field as seen by the engine. It is immutable once the
// frontend hands it over.
type Field struct {
	Name        string
	Type        TypeExpr
	Annotations []RawAnnotation
	// Tag is the raw struct tag (without backquotes) used when the struct is
	// emitted.
	Tag string
}

// Lookup returns the named struct.
func (f File) Lookup(name string) (Struct, bool) {
	for _, s := range f.Structs {
		if s.Name == name {
			return s, true
		}
	}
	return Struct{}, false
}

// Select keeps the named structs, in declaration order. With no names it
// keeps the marked ones. Unknown names are an error.
func (f File) Select(names ...string) (File, error) {
	out := f
	out.Structs = nil
	if len(names) == 0 {
		for _, s := range f.Structs {
			if s.Marked {
				out.Structs = append(out.Structs, s)
			}
		}
		return out, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := f.Lookup(name); !ok {
			return File{}, fmt.Errorf("schema: struct %q not found in %s", name, f.Path)
		}
		wanted[name] = true
	}
	for _, s := range f.Structs {
		if wanted[s.Name] {
			out.Structs = append(out.Structs, s)
		}
	}
	return out, nil
}

// MentionsIdent reports whether any field type refers to the identifier, at
// any nesting depth.
func (f File) MentionsIdent(name string) bool {
	for _, s := range f.Structs {
		for _, field := range s.Fields {
			if field.Type == nil {
				continue
			}
			for _, tok := range TokenizeArgs(field.Type.String()) {
				if tok.Kind == TokenIdent && tok.Text == name {
					return true
				}
			}
		}
	}
	return false
}

// EnsureWrapperImport dot-imports path when a field mentions one of the
// wrapper names and the file does not import path yet.
func (f *File) EnsureWrapperImport(path string, wrappers ...string) {
	if path == "" {
		return
	}
	for _, imp := range f.Imports {
		if imp.Path == path {
			return
		}
	}
	for _, name := range wrappers {
		if name != "" && f.MentionsIdent(name) {
			f.Imports = append(f.Imports, Import{Name: ".", Path: path})
			return
		}
	}
}

// Names lists the struct names in declaration order.
func (f File) Names() []string {
	names := make([]string, 0, len(f.Structs))
	for _, s := range f.Structs {
		names = append(names, s.Name)
	}
	return names
}
