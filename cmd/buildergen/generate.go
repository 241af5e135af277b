package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-buildergen/internal/golang"
	"github.com/goliatone/go-buildergen/internal/prompt"
	"github.com/goliatone/go-buildergen/pkg/orchestrator"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

type generateOptions struct {
	source       string
	packages     []string
	dir          string
	types        []string
	output       string
	format       string
	renderer     string
	packageName  string
	header       string
	templates    string
	preset       string
	setterPrefix string
	interactive  bool
}

func (o *generateOptions) Flags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.source, "source", "s", "", "schema document: Go file, YAML schema, OpenAPI document or URL")
	flags.StringSliceVar(&o.packages, "package", nil, "Go package patterns to scan, e.g. ./... (writes one file per source file)")
	flags.StringVar(&o.dir, "dir", ".", "working directory for --package patterns")
	flags.StringSliceVarP(&o.types, "type", "t", nil, "struct to generate (repeatable); defaults to marked structs")
	flags.StringVarP(&o.output, "output", "o", "", "output file; stdout when empty or -")
	flags.StringVarP(&o.format, "format", "f", "", "input format: go | yaml | openapi (detected when empty)")
	flags.StringVarP(&o.renderer, "renderer", "r", "", "renderer: go | json (inferred from the --output extension when unset)")
	flags.StringVar(&o.packageName, "package-name", "", "package name for YAML and OpenAPI inputs")
	flags.StringVar(&o.header, "header", "", "comment placed above the package clause")
	flags.StringVar(&o.templates, "templates", "", "directory with builder.tpl or file.tpl overriding the bundled templates")
	flags.StringVar(&o.preset, "preset", "", "YAML preset patching structs and field annotations")
	flags.StringVar(&o.setterPrefix, "setter-prefix", "", "prefix for setter and appender names, e.g. With")
	flags.BoolVarP(&o.interactive, "interactive", "i", false, "pick structs interactively")
	bindConfig(flags, "renderer", "output.renderer")
	bindConfig(flags, "package-name", "output.package")
	bindConfig(flags, "header", "output.header")
	bindConfig(flags, "templates", "output.templates")
}

func (o *generateOptions) validate() error {
	switch {
	case o.source == "" && len(o.packages) == 0:
		return errors.New("one of --source or --package is required")
	case o.source != "" && len(o.packages) > 0:
		return errors.New("--source and --package are mutually exclusive")
	case len(o.packages) > 0 && (o.output != "" || o.interactive):
		return errors.New("--output and --interactive apply to --source only")
	}
	return nil
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate builders from a schema document or Go packages",
		Example: `  buildergen generate --source order.go --output order_builder.go
  buildergen generate --source orders.yaml --type Order --renderer json
  buildergen generate --package ./...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			orch, err := a.generator(opts)
			if err != nil {
				return err
			}
			if len(opts.packages) > 0 {
				return a.generatePackages(cmd.Context(), orch, opts)
			}
			return a.generateSource(cmd, orch, opts)
		},
	}
	opts.Flags(cmd.Flags())
	return cmd
}

func (a *app) generator(opts *generateOptions) (*orchestrator.Orchestrator, error) {
	var extra []orchestrator.Option
	if opts.preset != "" {
		dir, name := filepath.Split(opts.preset)
		if dir == "" {
			dir = "."
		}
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(dir), name, a.cfg.Directive)
		if err != nil {
			return nil, err
		}
		extra = append(extra, orchestrator.WithTransformer(preset))
	}
	if opts.setterPrefix != "" {
		extra = append(extra, orchestrator.WithDecorators(orchestrator.SetterPrefix(opts.setterPrefix)))
	}
	return a.orchestrator(extra...), nil
}

func (a *app) generateSource(cmd *cobra.Command, orch *orchestrator.Orchestrator, opts *generateOptions) error {
	ctx := cmd.Context()
	req, err := sourceRequest(opts.source, opts.format, opts.types)
	if err != nil {
		return err
	}
	if opts.renderer == "" && opts.output != "" && opts.output != "-" {
		if renderer, err := orch.RendererForPath(opts.output); err == nil {
			req.Renderer = renderer.Name()
		}
	}

	if opts.interactive {
		parsed, err := orch.Parse(ctx, req)
		if err != nil {
			return err
		}
		types, err := prompt.SelectStructs(ctx, a.prompt, parsed)
		if err != nil {
			return err
		}
		if len(types) == 0 {
			a.log.Warn("nothing selected", "source", opts.source)
			return nil
		}
		req.Types = types
	}

	out, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}

	if opts.output == "" || opts.output == "-" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	if opts.interactive {
		if _, statErr := os.Stat(opts.output); statErr == nil {
			ok, err := prompt.ConfirmOverwrite(ctx, a.prompt, opts.output)
			if err != nil {
				return err
			}
			if !ok {
				a.log.Info("kept existing file", "path", opts.output)
				return nil
			}
		}
	}
	if err := writeOutput(opts.output, out); err != nil {
		return err
	}
	a.log.Info("wrote builders", "path", opts.output, "bytes", len(out))
	return nil
}

func (a *app) generatePackages(ctx context.Context, orch *orchestrator.Orchestrator, opts *generateOptions) error {
	renderer, err := orch.Renderer("")
	if err != nil {
		return err
	}
	ext := ".go"
	if exts := renderer.Extensions(); len(exts) > 0 {
		ext = exts[0]
	}

	docs, err := golang.LoadPackages(ctx, opts.dir, opts.packages...)
	if err != nil {
		return err
	}

	written := 0
	for _, doc := range docs {
		out, err := orch.Generate(ctx, orchestrator.Request{
			Document:         &doc,
			Format:           schema.FormatGo,
			Types:            opts.types,
			SkipUnknownTypes: true,
		})
		if errors.Is(err, orchestrator.ErrNoStructs) {
			a.log.Debug("no structs to generate", "path", doc.Location())
			continue
		}
		if err != nil {
			return err
		}

		target := outputPath(doc.Location(), a.cfg.Output.FileSuffix, ext)
		if err := writeOutput(target, out); err != nil {
			return err
		}
		a.log.Info("wrote builders", "path", target)
		written++
	}
	if written == 0 && len(opts.types) > 0 {
		return fmt.Errorf("no scanned file declares %s", strings.Join(opts.types, ", "))
	}
	a.log.Info("generation complete", "files", written, "scanned", len(docs))
	return nil
}

// outputPath maps order.go to order_builder.go next to the source.
func outputPath(source, suffix, ext string) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	return base + suffix + ext
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
