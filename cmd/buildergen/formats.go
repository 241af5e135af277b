package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the input formats and renderers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch := a.orchestrator()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "input formats:")
			for _, format := range orch.Formats() {
				fmt.Fprintf(out, "  %s\n", format)
			}
			fmt.Fprintln(out, "renderers:")
			for _, info := range orch.Renderers() {
				marker := " "
				if info.Name == a.cfg.Output.Renderer {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-6s %-28s %s\n", marker, info.Name, info.ContentType, strings.Join(info.Extensions, " "))
			}
			return nil
		},
	}
}
