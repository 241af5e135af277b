package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Transformer rewrites a parsed schema file before structs are selected.
type Transformer interface {
	Transform(ctx context.Context, file *schema.File) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, file *schema.File) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, file *schema.File) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, file)
}

// PresetTransformer applies declarative struct patches loaded from a YAML (or
// JSON) document, so builders can be configured without touching the source:
//
//	structs:
//	  Order:
//	    generate: true
//	    fields:
//	      Items:
//	        builder: each = "Item"
type PresetTransformer struct {
	directive string
	document  presetDocument
}

type presetDocument struct {
	Structs map[string]structPatch `yaml:"structs"`
}

type structPatch struct {
	Generate *bool                 `yaml:"generate"`
	Emit     *bool                 `yaml:"emit"`
	Doc      string                `yaml:"doc"`
	Fields   map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	// Builder replaces the field's directive arguments.
	Builder *string `yaml:"builder"`
	Tag     *string `yaml:"tag"`
}

// NewPresetTransformer constructs a transformer from raw bytes. Directive
// names the annotation path patches produce; empty uses the default.
func NewPresetTransformer(data []byte, directive string) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	if directive == "" {
		directive = schema.DefaultDirective
	}
	return &PresetTransformer{directive: directive, document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path, directive string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data, directive)
}

// Transform applies the patches. Patches naming structs or fields the file
// does not declare are ignored, so one preset can serve several files.
func (t *PresetTransformer) Transform(ctx context.Context, file *schema.File) error {
	if file == nil {
		return errors.New("preset transformer: schema file is nil")
	}

	file.Structs = slices.Clone(file.Structs)

	names := make([]string, 0, len(t.document.Structs))
	for name := range t.document.Structs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		for idx := range file.Structs {
			if file.Structs[idx].Name == name {
				t.applyStruct(&file.Structs[idx], t.document.Structs[name])
			}
		}
	}
	return nil
}

func (t *PresetTransformer) applyStruct(s *schema.Struct, patch structPatch) {
	if patch.Generate != nil {
		s.Marked = *patch.Generate
	}
	if patch.Emit != nil {
		s.EmitStruct = *patch.Emit
	}
	if patch.Doc != "" {
		s.Doc = patch.Doc
	}

	fields := make([]schema.Field, len(s.Fields))
	copy(fields, s.Fields)
	for idx := range fields {
		fp, ok := patch.Fields[fields[idx].Name]
		if !ok {
			continue
		}
		if fp.Builder != nil {
			fields[idx].Annotations = replaceDirective(fields[idx].Annotations, t.directive, *fp.Builder)
		}
		if fp.Tag != nil {
			fields[idx].Tag = *fp.Tag
		}
	}
	s.Fields = fields
}

// replaceDirective drops existing groups for directive and puts the patched
// one first, since only the first group is honoured.
func replaceDirective(existing []schema.RawAnnotation, directive, args string) []schema.RawAnnotation {
	out := []schema.RawAnnotation{{Path: directive, Args: schema.TokenizeArgs(args)}}
	for _, ann := range existing {
		if ann.Path == directive {
			continue
		}
		out = append(out, ann)
	}
	return out
}
