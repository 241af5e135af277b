package golang

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

func planOrder(t *testing.T) model.BuilderModel {
	t.Helper()
	each := func(args string) []schema.RawAnnotation {
		return []schema.RawAnnotation{{Path: "builder", Args: schema.TokenizeArgs(args)}}
	}
	builder, err := model.NewBuilder().Build(schema.Struct{
		Name: "Order",
		Fields: []schema.Field{
			{Name: "ID", Type: schema.MustParseTypeExpr("string")},
			{Name: "Note", Type: schema.MustParseTypeExpr("Optional[string]")},
			{Name: "Items", Type: schema.MustParseTypeExpr("Vec[string]"), Annotations: each(`each = "Item"`)},
			{Name: "Tags", Type: schema.MustParseTypeExpr("Vec[string]"), Annotations: each(`each "Tag"`)},
			{Name: "Type", Type: schema.MustParseTypeExpr("string")},
		},
	})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	return builder
}

func TestEmit_Order(t *testing.T) {
	got := Emit(planOrder(t))

	want := Fragments{
		Storage: []string{
			"id *string",
			"note *Optional[string]",
			"items Vec[string]",
			"tags Vec[string]",
			"type_ *string",
		},
		Defaults: []string{
			"id: nil,",
			"note: nil,",
			"items: Vec[string]{},",
			"tags: Vec[string]{},",
			"type_: nil,",
		},
		Methods: []Method{
			{Name: "ID", Doc: "sets ID.", Param: "string", Stmt: "b.id = &value"},
			{Name: "Note", Doc: "sets Note.", Param: "Optional[string]", Stmt: "b.note = &value"},
			{Name: "Item", Doc: "appends one element to Items.", Param: "string", Stmt: "b.items = append(b.items, value)"},
			{Name: "Type", Doc: "sets Type.", Param: "string", Stmt: "b.type_ = &value"},
		},
		Checks: []string{
			"if b.id == nil {\nmissing = append(missing, \"ID\")\n}",
			"if b.type_ == nil {\nmissing = append(missing, \"Type\")\n}",
		},
		Assembly: []string{
			"out.ID = *b.id",
			"if b.note != nil {\nout.Note = *b.note\n}",
			"out.Items = slices.Clone(b.items)",
			"out.Tags = slices.Clone(b.tags)",
			"out.Type = *b.type_",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestEmit_PassesAreOneToOneWithFields(t *testing.T) {
	builder := planOrder(t)
	got := Emit(builder)

	if len(got.Storage) != len(builder.Fields) {
		t.Fatalf("expected one storage slot per field, got %d", len(got.Storage))
	}
	if len(got.Defaults) != len(builder.Fields) {
		t.Fatalf("expected one default per field, got %d", len(got.Defaults))
	}
	if len(got.Assembly) != len(builder.Fields) {
		t.Fatalf("expected one assembly statement per field, got %d", len(got.Assembly))
	}
}

func TestEmit_NoRequiredFieldsMeansNoChecks(t *testing.T) {
	builder, err := model.NewBuilder().Build(schema.Struct{
		Name: "Prefs",
		Fields: []schema.Field{
			{Name: "Theme", Type: schema.MustParseTypeExpr("Optional[string]")},
			{Name: "Langs", Type: schema.MustParseTypeExpr("Vec[string]")},
		},
	})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	got := Emit(builder)
	if len(got.Checks) != 0 {
		t.Fatalf("expected no presence checks, got %v", got.Checks)
	}
	if len(got.Methods) != 1 || got.Methods[0].Name != "Theme" {
		t.Fatalf("expected only the Theme setter, got %+v", got.Methods)
	}
}

func TestEmit_NestedWrapperKeepsInnerType(t *testing.T) {
	builder, err := model.NewBuilder().Build(schema.Struct{
		Name: "Grid",
		Fields: []schema.Field{
			{
				Name:        "Cells",
				Type:        schema.MustParseTypeExpr("Vec[Optional[int]]"),
				Annotations: []schema.RawAnnotation{{Path: "builder", Args: schema.TokenizeArgs(`each = "Cell"`)}},
			},
		},
	})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	got := Emit(builder)
	if len(got.Methods) != 1 || got.Methods[0].Param != "Optional[int]" {
		t.Fatalf("expected appender taking Optional[int], got %+v", got.Methods)
	}
}

func TestStructFields(t *testing.T) {
	got := structFields([]model.FieldPlan{
		{Name: "SKU", Type: "string", Tag: `json:"sku"`},
		{Name: "Odd", Type: "int", Tag: "weird:`x`"},
		{Name: "Plain", Type: "bool"},
	})
	want := []string{
		"SKU string `json:\"sku\"`",
		`Odd int "weird:` + "`x`" + `"`,
		"Plain bool",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("struct fields mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckNames(t *testing.T) {
	cases := []struct {
		name   string
		fields []schema.Field
		want   string
	}{
		{
			name: "slot collision",
			fields: []schema.Field{
				{Name: "ID", Type: schema.MustParseTypeExpr("string")},
				{Name: "Id", Type: schema.MustParseTypeExpr("string")},
			},
			want: "share storage slot",
		},
		{
			name: "appender shadows setter",
			fields: []schema.Field{
				{Name: "Note", Type: schema.MustParseTypeExpr("string")},
				{
					Name:        "Notes",
					Type:        schema.MustParseTypeExpr("Vec[string]"),
					Annotations: []schema.RawAnnotation{{Path: "builder", Args: schema.TokenizeArgs(`each = "Note"`)}},
				},
			},
			want: "collides with field Note",
		},
		{
			name: "setter shadows build method",
			fields: []schema.Field{
				{Name: "Build", Type: schema.MustParseTypeExpr("string")},
			},
			want: "collides with build method",
		},
		{
			name: "appender is not an identifier",
			fields: []schema.Field{
				{
					Name:        "Items",
					Type:        schema.MustParseTypeExpr("Vec[string]"),
					Annotations: []schema.RawAnnotation{{Path: "builder", Args: schema.TokenizeArgs(`each = "add item"`)}},
				},
			},
			want: "not a Go identifier",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			builder, err := model.NewBuilder().Build(schema.Struct{Name: "Thing", Fields: tc.fields})
			if err != nil {
				t.Fatalf("plan: %v", err)
			}
			err = checkNames(builder)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCheckNames_SlotMatchesMethod(t *testing.T) {
	builder := model.BuilderModel{
		Struct:      "Command",
		BuildMethod: "Build",
		Fields: []model.FieldPlan{
			{Name: "Env", Slot: "env", Appender: "env", Storage: model.StorageSequence},
		},
	}
	err := checkNames(builder)
	if err == nil || !strings.Contains(err.Error(), `storage slot "env"`) {
		t.Fatalf("expected slot collision error, got %v", err)
	}
	if err := checkNames(builder.DistinctSlots()); err != nil {
		t.Fatalf("distinct slots must pass: %v", err)
	}
}

func TestEmit_RuntimeQualifiers(t *testing.T) {
	got := emit(planOrder(t), runtimePkgs{Errors: "stderrors", Slices: "stdslices", Strings: "strings"})
	want := []string{
		"out.ID = *b.id",
		"if b.note != nil {\nout.Note = *b.note\n}",
		"out.Items = stdslices.Clone(b.items)",
		"out.Tags = stdslices.Clone(b.tags)",
		"out.Type = *b.type_",
	}
	if diff := cmp.Diff(want, got.Assembly); diff != "" {
		t.Fatalf("assembly mismatch (-want +got):\n%s", diff)
	}
}
