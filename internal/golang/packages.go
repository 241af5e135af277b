package golang

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// LoadPackages expands package patterns (./..., module paths) relative to dir
// into one document per non-test Go file. Files that are already generated
// are skipped so a rerun never feeds builders back into the generator.
func LoadPackages(ctx context.Context, dir string, patterns ...string) ([]schema.Document, error) {
	if len(patterns) == 0 {
		return nil, errors.New("golang packages: at least one pattern is required")
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    packages.NeedName | packages.NeedFiles,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("golang packages: load: %w", err)
	}

	var (
		docs []schema.Document
		errs []error
	)
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			errs = append(errs, fmt.Errorf("%s: %s", pkg.PkgPath, pkgErr.Msg))
		}
		for _, path := range pkg.GoFiles {
			if strings.HasSuffix(path, "_test.go") {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("golang packages: read %s: %w", path, err)
			}
			if isGenerated(path, data) {
				continue
			}
			doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
			if err != nil {
				return nil, fmt.Errorf("golang packages: %s: %w", path, err)
			}
			docs = append(docs, doc)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("golang packages: %w", errors.Join(errs...))
	}
	return docs, nil
}

func isGenerated(path string, src []byte) bool {
	file, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil {
		return false
	}
	return ast.IsGenerated(file)
}
