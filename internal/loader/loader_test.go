package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-buildergen/internal/loader"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

const orderSource = "package orders\n\ntype Order struct{ ID string }\n"

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.go")
	if err := os.WriteFile(path, []byte(orderSource), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(schema.NewLoaderOptions())
	doc, err := l.Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != orderSource {
		t.Fatalf("unexpected content %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"schemas/order.yaml": {Data: []byte("package: orders\n")},
	}
	l := loader.New(schema.NewLoaderOptions(schema.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), schema.SourceFromFS("schemas/order.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.HasPrefix(string(doc.Raw()), "package: orders") {
		t.Fatalf("unexpected content %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), schema.SourceFromFS("missing.yaml")); err == nil {
		t.Fatalf("expected error for missing fs entry")
	}
}

func TestLoader_FSNotConfigured(t *testing.T) {
	l := loader.New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), schema.SourceFromFS("order.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoader_HTTPDisabledByDefault(t *testing.T) {
	src, err := schema.SourceFromURL("https://example.com/openapi.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	l := loader.New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), src); err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http disabled error, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("openapi: 3.0.3\n"))
	}))
	defer server.Close()

	l := loader.New(schema.NewLoaderOptions(schema.WithHTTPFallback(time.Second)))

	src, err := schema.SourceFromURL(server.URL + "/openapi.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != "openapi: 3.0.3\n" {
		t.Fatalf("unexpected content %q", doc.Raw())
	}

	missing, err := schema.SourceFromURL(server.URL + "/missing.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := l.Load(context.Background(), missing); err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(schema.NewLoaderOptions())
	if _, err := l.Load(ctx, schema.SourceFromFile("order.go")); err == nil {
		t.Fatalf("expected cancellation error")
	}
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}
