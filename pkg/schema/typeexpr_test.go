package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

func TestParseTypeExpr(t *testing.T) {
	tests := []struct {
		input string
		want  schema.TypeExpr
	}{
		{input: "string", want: schema.Named{Name: "string"}},
		{input: "Optional[string]", want: schema.Named{Name: "Optional", Args: []schema.TypeExpr{schema.Named{Name: "string"}}}},
		{input: "Vec[Optional[int]]", want: schema.Named{Name: "Vec", Args: []schema.TypeExpr{
			schema.Named{Name: "Optional", Args: []schema.TypeExpr{schema.Named{Name: "int"}}},
		}}},
		{input: "Pair[string, int]", want: schema.Named{Name: "Pair", Args: []schema.TypeExpr{
			schema.Named{Name: "string"}, schema.Named{Name: "int"},
		}}},
		{input: "*string", want: schema.Other{Text: "*string"}},
		{input: "[]string", want: schema.Other{Text: "[]string"}},
		{input: "map[string]int", want: schema.Other{Text: "map[string]int"}},
		{input: "time.Time", want: schema.Other{Text: "time.Time"}},
		{input: "wrap.Optional[string]", want: schema.Other{Text: "wrap.Optional[string]"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := schema.ParseTypeExpr(tt.input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
			if got.String() != tt.input {
				t.Fatalf("expected round trip %q, got %q", tt.input, got.String())
			}
		})
	}
}

func TestParseTypeExprRejectsInvalidInput(t *testing.T) {
	if _, err := schema.ParseTypeExpr("   "); err == nil {
		t.Fatalf("expected error for empty expression")
	}
	if _, err := schema.ParseTypeExpr("Optional["); err == nil {
		t.Fatalf("expected error for malformed expression")
	}
}
