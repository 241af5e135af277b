package template_test

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-buildergen/pkg/render/template/gotemplate"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var written strings.Builder
	result, err := engine.RenderTemplate("decl", map[string]any{"name": "OrderBuilder"}, &written)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	want := "type OrderBuilder struct{}\n"
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written.String() != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written.String())
	}
}

func TestGoTemplateEngine_GoCommentFilter(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("doc.tpl", map[string]any{
		"doc": "Order is a purchase.\n\nIt has lines.  ",
	})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	want := "// Order is a purchase.\n//\n// It has lines.\n"
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	type field struct {
		Slot string `json:"slot"`
		Type string `json:"type"`
	}
	data := struct {
		Fields []field `json:"fields"`
	}{Fields: []field{{Slot: "id", Type: "*string"}, {Slot: "items", Type: "Vec[string]"}}}

	result, err := engine.RenderTemplate("fields", data)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if result != "id *string;items Vec[string];" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestGoTemplateEngine_BaseDirShadowsFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "decl.tpl"), []byte("custom {{ name }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithFS(templatesFS(t)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("decl", map[string]any{"name": "Order"})
	if err != nil {
		t.Fatalf("render shadowed template: %v", err)
	}
	if result != "custom Order" {
		t.Fatalf("expected the directory template to win, got %q", result)
	}

	if _, err := engine.RenderTemplate("fields", map[string]any{}); err != nil {
		t.Fatalf("expected fallback to the fs templates: %v", err)
	}
}

func TestGoTemplateEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
	if _, err := gotemplate.New(gotemplate.WithBaseDir(filepath.Join(t.TempDir(), "missing"))); err == nil {
		t.Fatalf("expected error for a missing base dir")
	}
	if _, err := newEngine(t).RenderTemplate("absent", nil); err == nil {
		t.Fatalf("expected error for an unknown template")
	}
}

func templatesFS(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return sub
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS(t)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
