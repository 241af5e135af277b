package orchestrator

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

func TestParserRegistry(t *testing.T) {
	registry := NewParserRegistry()
	parser := schema.ParserFunc(func(context.Context, schema.Document) (schema.File, error) {
		return schema.File{Package: "stub"}, nil
	})

	if err := registry.Register(" YAML ", parser); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !registry.Has(schema.FormatYAML) {
		t.Fatalf("expected normalized format to be registered")
	}
	if _, err := registry.Get("yaml"); err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := registry.Register("", parser); err == nil {
		t.Fatalf("expected error for empty format")
	}
	if err := registry.Register("go", nil); err == nil {
		t.Fatalf("expected error for nil parser")
	}

	_, err := registry.Get("go")
	if err == nil || !strings.Contains(err.Error(), "have yaml") {
		t.Fatalf("expected error listing registered formats, got %v", err)
	}
}
