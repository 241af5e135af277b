package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
)

type stubRenderer struct {
	name string
	exts []string
}

func (s stubRenderer) Name() string         { return s.name }
func (s stubRenderer) ContentType() string  { return "text/plain" }
func (s stubRenderer) Extensions() []string { return s.exts }
func (s stubRenderer) Render(context.Context, model.File, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(stubRenderer{name: "go"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "go"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected error for unnamed renderer")
	}
}

func TestRegistryForPath(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "go", exts: []string{".go"}})
	registry.MustRegister(stubRenderer{name: "json", exts: []string{".json"}})

	got, err := registry.ForPath("out/order_builder.go")
	if err != nil {
		t.Fatalf("for path: %v", err)
	}
	if got.Name() != "go" {
		t.Fatalf("expected go renderer, got %q", got.Name())
	}

	got, err = registry.ForPath("plans.JSON")
	if err != nil {
		t.Fatalf("for path: %v", err)
	}
	if got.Name() != "json" {
		t.Fatalf("expected json renderer, got %q", got.Name())
	}

	if _, err := registry.ForPath("README"); err == nil {
		t.Fatalf("expected error for path without extension")
	}
	if _, err := registry.ForPath("schema.yaml"); err == nil {
		t.Fatalf("expected error for unclaimed extension")
	}
}

func TestRegistryList(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "json"})
	registry.MustRegister(stubRenderer{name: "go"})

	names := registry.List()
	if len(names) != 2 || names[0] != "go" || names[1] != "json" {
		t.Fatalf("unexpected names: %v", names)
	}
	if !registry.Has("go") || registry.Has("html") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := registry.Get("html"); err == nil {
		t.Fatalf("expected error for missing renderer")
	}
}

func TestRegistryDescribe(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "JSON", exts: []string{"json"}})
	registry.MustRegister(stubRenderer{name: "go", exts: []string{".go"}})

	want := []render.Info{
		{Name: "go", ContentType: "text/plain", Extensions: []string{".go"}},
		{Name: "json", ContentType: "text/plain", Extensions: []string{"json"}},
	}
	if diff := cmp.Diff(want, registry.Describe()); diff != "" {
		t.Fatalf("describe mismatch (-want +got):\n%s", diff)
	}

	if _, err := registry.Get(" Json "); err != nil {
		t.Fatalf("expected case-insensitive lookup: %v", err)
	}
	got, err := registry.ForPath("plans.json")
	if err != nil || got.Name() != "JSON" {
		t.Fatalf("expected extension without dot to be indexed, got %v %v", got, err)
	}
}
