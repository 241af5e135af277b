package yamlschema_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/internal/yamlschema"
	"github.com/goliatone/go-buildergen/pkg/schema"
	"github.com/goliatone/go-buildergen/pkg/testsupport"
)

func parse(t *testing.T, doc schema.Document, options ...schema.ParserOption) schema.File {
	t.Helper()
	file, err := yamlschema.New(schema.NewParserOptions(options...)).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return file
}

func TestParser_Orders(t *testing.T) {
	file := parse(t, testsupport.LoadDocument(t, filepath.Join("testdata", "orders.yaml")))

	if file.Package != "orders" {
		t.Fatalf("unexpected package %q", file.Package)
	}
	wantImports := []schema.Import{
		{Path: "time"},
		{Name: "money", Path: "example.com/shop/money"},
		{Name: ".", Path: schema.DefaultWrapperImport},
	}
	if diff := cmp.Diff(wantImports, file.Imports); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}

	order, ok := file.Lookup("Order")
	if !ok {
		t.Fatalf("Order not parsed")
	}
	if !order.EmitStruct || !order.Marked || order.Doc != "Order is a purchase." {
		t.Fatalf("unexpected struct header %+v", order)
	}
	var types []string
	for _, field := range order.Fields {
		types = append(types, field.Type.String())
	}
	if diff := cmp.Diff([]string{"string", "time.Time", "Optional[string]", "Vec[LineItem]", "money.Amount"}, types); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if order.Fields[0].Tag != `json:"id"` {
		t.Fatalf("unexpected tag %q", order.Fields[0].Tag)
	}

	items := order.Fields[3]
	want := []schema.RawAnnotation{{
		Path: "builder",
		Args: []schema.Token{
			{Kind: schema.TokenIdent, Text: "each"},
			{Kind: schema.TokenPunct, Text: "="},
			{Kind: schema.TokenLiteral, Text: `"Item"`},
		},
	}}
	if diff := cmp.Diff(want, items.Annotations); diff != "" {
		t.Fatalf("annotation mismatch (-want +got):\n%s", diff)
	}

	line, _ := file.Lookup("LineItem")
	if line.EmitStruct {
		t.Fatalf("emit: false must be honoured")
	}
}

func TestParser_DefaultsAndOverrides(t *testing.T) {
	doc := testsupport.InlineDocument("point.yaml", `
structs:
  - name: Point
    fields:
      - {name: X, type: int}
      - {name: Y, type: int}
`)
	file := parse(t, doc, schema.WithPackage("geo"))
	if file.Package != "geo" {
		t.Fatalf("expected package fallback, got %q", file.Package)
	}
	if len(file.Imports) != 0 {
		t.Fatalf("no wrapper is used, got imports %+v", file.Imports)
	}

	wrapped := testsupport.InlineDocument("bag.yaml", `
structs:
  - name: Bag
    fields:
      - {name: Items, type: "Vec[int]"}
`)
	file = parse(t, wrapped, schema.WithWrapperImport(""))
	if len(file.Imports) != 0 {
		t.Fatalf("wrapper import disabled, got %+v", file.Imports)
	}
}

func TestParser_Errors(t *testing.T) {
	cases := map[string]string{
		"invalid yaml":   "structs: [",
		"no structs":     "package: empty\n",
		"unnamed struct": "structs:\n  - fields: []\n",
		"unnamed field":  "structs:\n  - name: A\n    fields:\n      - {type: int}\n",
		"bad type":       "structs:\n  - name: A\n    fields:\n      - {name: X, type: 'map[string'}\n",
		"empty type":     "structs:\n  - name: A\n    fields:\n      - {name: X}\n",
		"import no path": "imports:\n  - {name: x}\nstructs:\n  - name: A\n",
	}
	parser := yamlschema.New(schema.NewParserOptions())
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parser.Parse(context.Background(), testsupport.InlineDocument("bad.yaml", content))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.HasPrefix(err.Error(), "yaml parser:") {
				t.Fatalf("expected package prefixed error, got %v", err)
			}
		})
	}
}
