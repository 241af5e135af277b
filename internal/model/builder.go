package model

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-buildergen/internal/annotation"
	"github.com/goliatone/go-buildergen/internal/naming"
	"github.com/goliatone/go-buildergen/internal/shape"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Builder converts struct schemas into builder models. It holds no state
// between calls.
type Builder struct {
	opts       Options
	classifier shape.Classifier
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.OptionalWrapper != "" {
		opts.OptionalWrapper = options.OptionalWrapper
	}
	if options.RepeatedWrapper != "" {
		opts.RepeatedWrapper = options.RepeatedWrapper
	}
	if options.BuilderSuffix != "" {
		opts.BuilderSuffix = options.BuilderSuffix
	}
	if options.BuildMethod != "" {
		opts.BuildMethod = options.BuildMethod
	}
	return &Builder{
		opts:       opts,
		classifier: shape.NewClassifier(opts.OptionalWrapper, opts.RepeatedWrapper),
	}
}

// BuildFile plans every struct of a schema file, preserving declaration order.
func (b *Builder) BuildFile(file schema.File) (File, error) {
	out := File{
		Package:  file.Package,
		Source:   file.Path,
		Imports:  append([]schema.Import(nil), file.Imports...),
		Wrappers: []string{b.opts.OptionalWrapper, b.opts.RepeatedWrapper},
	}
	for _, s := range file.Structs {
		m, err := b.Build(s)
		if err != nil {
			return File{}, err
		}
		out.Builders = append(out.Builders, m)
	}
	return out, nil
}

// Build plans a single struct. Errors only report malformed input schemas
// (missing names or types, duplicate fields); classification and annotation
// parsing never fail.
func (b *Builder) Build(s schema.Struct) (BuilderModel, error) {
	if err := validateStruct(s); err != nil {
		return BuilderModel{}, err
	}

	builderName := s.Name + b.opts.BuilderSuffix
	m := BuilderModel{
		Struct:      s.Name,
		Doc:         s.Doc,
		Builder:     builderName,
		Constructor: naming.Constructor(s.Name, builderName),
		BuildMethod: b.opts.BuildMethod,
		EmitStruct:  s.EmitStruct,
		Fields:      make([]FieldPlan, 0, len(s.Fields)),
	}
	for _, field := range s.Fields {
		m.Fields = append(m.Fields, b.Plan(field))
	}
	return m.DistinctSlots(), nil
}

// Plan combines the field's shape and annotation into a FieldPlan.
func (b *Builder) Plan(field schema.Field) FieldPlan {
	classified := b.classifier.Classify(field.Type)

	plan := FieldPlan{
		Name:  field.Name,
		Type:  field.Type.String(),
		Shape: classified.Kind,
		Elem:  classified.Elem.String(),
		Tag:   field.Tag,
		Slot:  naming.Slot(field.Name),
	}
	if parsed, ok := annotation.Parse(field.Annotations); ok {
		plan.Annotation = &parsed
	}

	switch classified.Kind {
	case shape.Repeated:
		plan.Storage = StorageSequence
		plan.Default = DefaultEmpty
		plan.Assembly = AssembleClone
		if plan.Annotation != nil && plan.Annotation.Is(annotation.TagEach) && plan.Annotation.Value != "" {
			plan.Appender = plan.Annotation.Value
		}
	case shape.Optional:
		plan.Storage = StoragePresence
		plan.Default = DefaultUnset
		plan.Assembly = AssembleCopy
		plan.Setter = naming.Setter(field.Name)
	default:
		plan.Storage = StoragePresence
		plan.Default = DefaultUnset
		plan.Assembly = AssembleUnwrap
		plan.Setter = naming.Setter(field.Name)
		plan.RequiresPresence = true
	}
	return plan
}

func validateStruct(s schema.Struct) error {
	if s.Name == "" {
		return errors.New("model builder: struct name is required")
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for i, field := range s.Fields {
		if field.Name == "" {
			return fmt.Errorf("model builder: %s: field %d has no name", s.Name, i)
		}
		if field.Type == nil {
			return fmt.Errorf("model builder: %s.%s: type is required", s.Name, field.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("model builder: %s: duplicate field %q", s.Name, field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}
