package model_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-buildergen/internal/model"
	"github.com/goliatone/go-buildergen/pkg/schema"
	"github.com/goliatone/go-buildergen/pkg/testsupport"
)

func directive(args string) []schema.RawAnnotation {
	return []schema.RawAnnotation{{Path: "builder", Args: schema.TokenizeArgs(args)}}
}

func orderSchema() schema.Struct {
	return schema.Struct{
		Name: "Order",
		Fields: []schema.Field{
			{Name: "ID", Type: schema.MustParseTypeExpr("string")},
			{Name: "Note", Type: schema.MustParseTypeExpr("Optional[string]")},
			{Name: "Items", Type: schema.MustParseTypeExpr("Vec[string]"), Annotations: directive(`each = "Item"`)},
			{Name: "Tags", Type: schema.MustParseTypeExpr("Vec[string]"), Annotations: directive(`each "Tag"`)},
			{Name: "Type", Type: schema.MustParseTypeExpr("string")},
		},
	}
}

func TestBuilder_Order(t *testing.T) {
	builder := model.New(model.Options{})

	got, err := builder.Build(orderSchema())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	goldenPath := filepath.Join("testdata", "order_builder_model.golden.json")
	testsupport.WriteGolden(t, goldenPath, got)
	want := testsupport.MustLoadBuilderModel(t, goldenPath)

	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_RequiresPresenceOnlyForPlainTypes(t *testing.T) {
	builder := model.New(model.Options{})
	got, err := builder.Build(orderSchema())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var names []string
	for _, field := range got.Required() {
		names = append(names, field.Name)
	}
	if strings.Join(names, ",") != "ID,Type" {
		t.Fatalf("expected ID,Type to require presence, got %v", names)
	}

	for _, field := range got.Fields {
		if field.HasSetter() != (field.Storage == model.StoragePresence) {
			t.Fatalf("field %s: setter emission must follow presence storage", field.Name)
		}
	}
}

func TestBuilder_AppenderNeedsEachTag(t *testing.T) {
	builder := model.New(model.Options{})
	got, err := builder.Build(schema.Struct{
		Name: "Bag",
		Fields: []schema.Field{
			{Name: "Items", Type: schema.MustParseTypeExpr("Vec[int]"), Annotations: directive(`rename = "Item"`)},
			{Name: "Notes", Type: schema.MustParseTypeExpr("Vec[string]")},
			{Name: "Label", Type: schema.MustParseTypeExpr("string"), Annotations: directive(`each = "Label"`)},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, field := range got.Fields {
		if field.HasAppender() {
			t.Fatalf("field %s: expected no appender, got %q", field.Name, field.Appender)
		}
	}
	items, _ := got.Field("Items")
	if items.Annotation == nil || items.Annotation.Tag != "rename" {
		t.Fatalf("expected rename annotation to be kept on the plan, got %+v", items.Annotation)
	}
	label, _ := got.Field("Label")
	if !label.HasSetter() || !label.RequiresPresence {
		t.Fatalf("expected each annotation on a required field to leave the setter untouched")
	}
}

func TestBuilder_Naming(t *testing.T) {
	builder := model.New(model.Options{BuilderSuffix: "Factory", BuildMethod: "Assemble"})
	got, err := builder.Build(schema.Struct{
		Name:   "pair",
		Fields: []schema.Field{{Name: "a", Type: schema.MustParseTypeExpr("string")}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got.Builder != "pairFactory" || got.Constructor != "newPairFactory" || got.BuildMethod != "Assemble" {
		t.Fatalf("unexpected names: %+v", got)
	}
	if got.Fields[0].Slot != "a" || got.Fields[0].Setter != "A" {
		t.Fatalf("unexpected field names: %+v", got.Fields[0])
	}
}

func TestBuilder_RejectsMalformedSchemas(t *testing.T) {
	builder := model.New(model.Options{})
	tests := map[string]schema.Struct{
		"missing struct name": {Fields: []schema.Field{{Name: "A", Type: schema.Named{Name: "int"}}}},
		"missing field name":  {Name: "S", Fields: []schema.Field{{Type: schema.Named{Name: "int"}}}},
		"missing field type":  {Name: "S", Fields: []schema.Field{{Name: "A"}}},
		"duplicate field": {Name: "S", Fields: []schema.Field{
			{Name: "A", Type: schema.Named{Name: "int"}},
			{Name: "A", Type: schema.Named{Name: "string"}},
		}},
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := builder.Build(input); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestBuilder_BuildFileKeepsOrder(t *testing.T) {
	builder := model.New(model.Options{})
	file := schema.File{
		Package: "orders",
		Path:    "order.go",
		Imports: []schema.Import{{Path: "time"}},
		Structs: []schema.Struct{
			{Name: "B", Fields: []schema.Field{{Name: "X", Type: schema.Named{Name: "int"}}}},
			{Name: "A"},
		},
	}
	got, err := builder.BuildFile(file)
	if err != nil {
		t.Fatalf("build file: %v", err)
	}
	if got.Package != "orders" || got.Source != "order.go" || len(got.Imports) != 1 {
		t.Fatalf("unexpected file metadata: %+v", got)
	}
	if len(got.Builders) != 2 || got.Builders[0].Struct != "B" || got.Builders[1].Struct != "A" {
		t.Fatalf("expected builders in declaration order, got %+v", got.Builders)
	}
	if strings.Join(got.Wrappers, ",") != "Optional,Vec" {
		t.Fatalf("expected the wrapper names on the file, got %v", got.Wrappers)
	}
}

func TestBuilder_SlotsNeverShadowMethods(t *testing.T) {
	builder := model.New(model.Options{BuildMethod: "done"})
	got, err := builder.Build(schema.Struct{
		Name: "Command",
		Fields: []schema.Field{
			{Name: "Env", Type: schema.MustParseTypeExpr("Vec[string]"), Annotations: directive(`each = "env"`)},
			{Name: "EnvItems", Type: schema.MustParseTypeExpr("string")},
			{Name: "Done", Type: schema.MustParseTypeExpr("Optional[bool]")},
			{Name: "Tags", Type: schema.MustParseTypeExpr("Vec[string]"), Annotations: directive(`each = "Tag"`)},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := map[string]string{"Env": "envItems_", "EnvItems": "envItems", "Done": "doneValue", "Tags": "tags"}
	for name, slot := range want {
		field, ok := got.Field(name)
		if !ok {
			t.Fatalf("missing plan for %s", name)
		}
		if field.Slot != slot {
			t.Fatalf("expected %s to be stored in %q, got %q", name, slot, field.Slot)
		}
	}
}

func TestBuilderModel_DistinctSlotsLeavesReceiverAlone(t *testing.T) {
	m := model.BuilderModel{
		Struct:      "Command",
		BuildMethod: "Build",
		Fields:      []model.FieldPlan{{Name: "Env", Slot: "env", Appender: "env", Storage: model.StorageSequence}},
	}
	got := m.DistinctSlots()
	if got.Fields[0].Slot != "envItems" {
		t.Fatalf("expected envItems, got %q", got.Fields[0].Slot)
	}
	if m.Fields[0].Slot != "env" {
		t.Fatalf("receiver fields were modified: %q", m.Fields[0].Slot)
	}
}
