package golang

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/model"
)

// Method is one chainable builder method: a setter or a per-element
// appender. The template supplies the receiver and the trailing "return b".
type Method struct {
	Name  string `json:"name"`
	Doc   string `json:"doc"`
	Param string `json:"param"`
	Stmt  string `json:"stmt"`
}

// Fragments carries the output of the emission passes for one builder, each
// list in field declaration order.
type Fragments struct {
	Storage  []string `json:"storage"`
	Defaults []string `json:"defaults"`
	Methods  []Method `json:"methods"`
	Checks   []string `json:"checks"`
	Assembly []string `json:"assembly"`
}

// Emit runs the four passes over the builder's field plans. The passes are
// independent of each other; they agree only through the plans.
func Emit(builder model.BuilderModel) Fragments {
	return emit(builder, stdRuntime)
}

func emit(builder model.BuilderModel, pkgs runtimePkgs) Fragments {
	checks, assembly := emitBuild(builder, pkgs.Slices)
	return Fragments{
		Storage:  emitStorage(builder.Fields),
		Defaults: emitDefaults(builder.Fields),
		Methods:  emitMethods(builder.Fields),
		Checks:   checks,
		Assembly: assembly,
	}
}

func emitStorage(fields []model.FieldPlan) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Slot+" "+storageType(f))
	}
	return out
}

func storageType(f model.FieldPlan) string {
	if f.Storage == model.StorageSequence {
		return f.Type
	}
	return "*" + f.Type
}

func emitDefaults(fields []model.FieldPlan) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f.Default {
		case model.DefaultEmpty:
			out = append(out, f.Slot+": "+f.Type+"{},")
		default:
			out = append(out, f.Slot+": nil,")
		}
	}
	return out
}

func emitMethods(fields []model.FieldPlan) []Method {
	var out []Method
	for _, f := range fields {
		if f.HasSetter() {
			out = append(out, Method{
				Name:  f.Setter,
				Doc:   "sets " + f.Name + ".",
				Param: f.Type,
				Stmt:  "b." + f.Slot + " = &value",
			})
		}
		if f.HasAppender() {
			out = append(out, Method{
				Name:  f.Appender,
				Doc:   "appends one element to " + f.Name + ".",
				Param: f.Elem,
				Stmt:  "b." + f.Slot + " = append(b." + f.Slot + ", value)",
			})
		}
	}
	return out
}

// emitBuild produces the presence checks and the assembly statements. Checks
// append the declared field name so the error lists names in declaration
// order.
func emitBuild(builder model.BuilderModel, slicesPkg string) (checks, assembly []string) {
	for _, f := range builder.Required() {
		checks = append(checks, fmt.Sprintf("if b.%s == nil {\nmissing = append(missing, %s)\n}", f.Slot, strconv.Quote(f.Name)))
	}
	for _, f := range builder.Fields {
		switch f.Assembly {
		case model.AssembleClone:
			assembly = append(assembly, fmt.Sprintf("out.%s = %s.Clone(b.%s)", f.Name, slicesPkg, f.Slot))
		case model.AssembleCopy:
			assembly = append(assembly, fmt.Sprintf("if b.%s != nil {\nout.%s = *b.%s\n}", f.Slot, f.Name, f.Slot))
		default:
			assembly = append(assembly, fmt.Sprintf("out.%s = *b.%s", f.Name, f.Slot))
		}
	}
	return checks, assembly
}

// structFields renders the declaration lines used when the builder file also
// declares the struct itself.
func structFields(fields []model.FieldPlan) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		line := f.Name + " " + f.Type
		if f.Tag != "" {
			line += " " + quoteTag(f.Tag)
		}
		out = append(out, line)
	}
	return out
}

func quoteTag(tag string) string {
	if strings.Contains(tag, "`") {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}

// checkNames reports slot or method names that would collide in the
// generated builder.
func checkNames(builder model.BuilderModel) error {
	slots := make(map[string]string, len(builder.Fields))
	methods := map[string]string{builder.BuildMethod: "build method"}
	for _, f := range builder.Fields {
		if prev, ok := slots[f.Slot]; ok {
			return fmt.Errorf("golang renderer: %s: fields %s and %s share storage slot %q", builder.Struct, prev, f.Name, f.Slot)
		}
		slots[f.Slot] = f.Name
		for _, name := range []string{f.Setter, f.Appender} {
			if name == "" {
				continue
			}
			if !token.IsIdentifier(name) {
				return fmt.Errorf("golang renderer: %s: method name %q for field %s is not a Go identifier", builder.Struct, name, f.Name)
			}
			if prev, ok := methods[name]; ok {
				return fmt.Errorf("golang renderer: %s: method %s for field %s collides with %s", builder.Struct, name, f.Name, prev)
			}
			methods[name] = "field " + f.Name
		}
	}
	for _, f := range builder.Fields {
		if prev, ok := methods[f.Slot]; ok {
			return fmt.Errorf("golang renderer: %s: storage slot %q of field %s collides with %s", builder.Struct, f.Slot, f.Name, prev)
		}
	}
	return nil
}
