package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// LoadDocument reads a fixture into a schema.Document using a file source.
func LoadDocument(t *testing.T, path string) schema.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (schema.Document, error) {
	if path == "" {
		return schema.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// InlineDocument wraps literal content as a document named after location.
func InlineDocument(location, content string) schema.Document {
	return schema.MustNewDocument(schema.SourceFromFS(location), []byte(content))
}

// MustLoadBuilderModel loads a JSON golden file into a BuilderModel.
func MustLoadBuilderModel(t *testing.T, path string) pkgmodel.BuilderModel {
	t.Helper()

	var out pkgmodel.BuilderModel
	if err := loadJSON(path, &out); err != nil {
		t.Fatalf("load builder model: %v", err)
	}
	return out
}

// MustLoadFile loads a JSON golden file into a planned model.File.
func MustLoadFile(t *testing.T, path string) pkgmodel.File {
	t.Helper()

	var out pkgmodel.File
	if err := loadJSON(path, &out); err != nil {
		t.Fatalf("load model file: %v", err)
	}
	return out
}

func loadJSON(path string, target any) error {
	if path == "" {
		return errors.New("testsupport: golden path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("testsupport: read golden: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("testsupport: unmarshal golden: %w", err)
	}
	return nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// CompareSource diffs two Go sources token by token, ignoring layout so
// alignment chosen by gofmt does not matter.
func CompareSource(want, got []byte) string {
	return cmp.Diff(strings.Fields(string(want)), strings.Fields(string(got)))
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
