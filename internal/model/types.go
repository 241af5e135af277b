package model

import (
	"slices"

	"github.com/goliatone/go-buildergen/internal/annotation"
	"github.com/goliatone/go-buildergen/internal/shape"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// StorageKind describes how a field is held inside the builder.
type StorageKind string

const (
	// StoragePresence wraps the declared type so "not set yet" is observable.
	StoragePresence StorageKind = "presence"
	// StorageSequence stores the declared sequence directly; empty means
	// nothing was appended.
	StorageSequence StorageKind = "sequence"
)

// DefaultKind describes the value a fresh builder starts with.
type DefaultKind string

const (
	DefaultUnset DefaultKind = "unset"
	DefaultEmpty DefaultKind = "empty"
)

// AssemblyKind describes how the stored value becomes the struct field.
type AssemblyKind string

const (
	// AssembleUnwrap dereferences the presence wrapper. Only valid after the
	// presence check passed.
	AssembleUnwrap AssemblyKind = "unwrap"
	// AssembleCopy copies an optional value as-is; unset stays absent.
	AssembleCopy AssemblyKind = "copy"
	// AssembleClone copies the stored sequence.
	AssembleClone AssemblyKind = "clone"
)

// FieldPlan is the per-field generation plan every emission pass consumes.
type FieldPlan struct {
	Name       string                 `json:"name"`
	Type       string                 `json:"type"`
	Shape      shape.Kind             `json:"shape"`
	Elem       string                 `json:"elem"`
	Annotation *annotation.Annotation `json:"annotation,omitempty"`
	Tag        string                 `json:"tag,omitempty"`

	Slot     string       `json:"slot"`
	Storage  StorageKind  `json:"storage"`
	Default  DefaultKind  `json:"default"`
	Setter   string       `json:"setter,omitempty"`
	Appender string       `json:"appender,omitempty"`
	Assembly AssemblyKind `json:"assembly"`

	// RequiresPresence is set once during planning and drives both setter
	// and validation emission: plain types must be set, wrappers never block.
	RequiresPresence bool `json:"requiresPresence"`
}

// HasSetter reports whether a setter method is generated for the field.
func (p FieldPlan) HasSetter() bool {
	return p.Setter != ""
}

// HasAppender reports whether a per-element appender is generated.
func (p FieldPlan) HasAppender() bool {
	return p.Appender != ""
}

// BuilderModel is the plan for one struct's builder.
type BuilderModel struct {
	Struct      string      `json:"struct"`
	Doc         string      `json:"doc,omitempty"`
	Builder     string      `json:"builder"`
	Constructor string      `json:"constructor"`
	BuildMethod string      `json:"buildMethod"`
	EmitStruct  bool        `json:"emitStruct,omitempty"`
	Fields      []FieldPlan `json:"fields"`
}

// Required returns the fields that must be set before assembly, in
// declaration order.
func (m BuilderModel) Required() []FieldPlan {
	var out []FieldPlan
	for _, field := range m.Fields {
		if field.RequiresPresence {
			out = append(out, field)
		}
	}
	return out
}

// DistinctSlots renames storage slots that share a name with a builder
// method, since a Go type cannot have a field and a method of the same name.
// A clashing slot gets an "Items" suffix for sequences and "Value" otherwise,
// plus trailing underscores while the name is still taken. The receiver's
// Fields are not modified.
func (m BuilderModel) DistinctSlots() BuilderModel {
	methods := map[string]bool{m.BuildMethod: true}
	for _, f := range m.Fields {
		for _, name := range []string{f.Setter, f.Appender} {
			if name != "" {
				methods[name] = true
			}
		}
	}
	if !slices.ContainsFunc(m.Fields, func(f FieldPlan) bool { return methods[f.Slot] }) {
		return m
	}

	taken := make(map[string]bool, len(methods)+len(m.Fields))
	for name := range methods {
		taken[name] = true
	}
	for _, f := range m.Fields {
		taken[f.Slot] = true
	}

	m.Fields = slices.Clone(m.Fields)
	for i := range m.Fields {
		f := &m.Fields[i]
		if !methods[f.Slot] {
			continue
		}
		suffix := "Value"
		if f.Storage == StorageSequence {
			suffix = "Items"
		}
		slot := f.Slot + suffix
		for taken[slot] {
			slot += "_"
		}
		taken[slot] = true
		f.Slot = slot
	}
	return m
}

// Field looks up a plan by declared field name.
func (m BuilderModel) Field(name string) (FieldPlan, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldPlan{}, false
}

// File groups the builder models produced from one schema document.
type File struct {
	Package  string          `json:"package"`
	Source   string          `json:"source,omitempty"`
	Imports  []schema.Import `json:"imports,omitempty"`
	// Wrappers names the wrapper types the plans were classified against.
	Wrappers []string        `json:"wrappers,omitempty"`
	Builders []BuilderModel  `json:"builders"`
}

// Builder looks up a builder model by struct name.
func (f File) Builder(structName string) (BuilderModel, bool) {
	for _, b := range f.Builders {
		if b.Struct == structName {
			return b, true
		}
	}
	return BuilderModel{}, false
}
