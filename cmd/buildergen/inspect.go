package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-buildergen/pkg/orchestrator"
	"github.com/goliatone/go-buildergen/pkg/renderers/manifest"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		source string
		format string
		types  []string
		parsed bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the builder plans (or the parsed structs) as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := sourceRequest(source, format, types)
			if err != nil {
				return err
			}
			orch := a.orchestrator()

			if parsed {
				file, err := orch.Parse(cmd.Context(), req)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(file); err != nil {
					return fmt.Errorf("inspect: encode: %w", err)
				}
				return nil
			}

			plans, err := orch.Plan(cmd.Context(), req)
			if err != nil {
				return err
			}
			renderer, err := orch.Renderer(manifest.Name)
			if err != nil {
				return err
			}
			out, err := renderer.Render(cmd.Context(), plans, req.RenderOptions)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&source, "source", "s", "", "schema document: Go file, YAML schema, OpenAPI document or URL")
	flags.StringVarP(&format, "format", "f", "", "input format: go | yaml | openapi (detected when empty)")
	flags.StringSliceVarP(&types, "type", "t", nil, "struct to inspect (repeatable); defaults to marked structs")
	flags.BoolVar(&parsed, "parsed", false, "print the parsed structs instead of the plans")
	return cmd
}

func sourceRequest(source, format string, types []string) (orchestrator.Request, error) {
	src, err := schema.ParseSource(source)
	if err != nil {
		return orchestrator.Request{}, err
	}
	if src == nil {
		return orchestrator.Request{}, errors.New("--source is required")
	}
	return orchestrator.Request{Source: src, Format: schema.Format(format), Types: types}, nil
}
