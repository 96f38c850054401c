package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoatlas/internal/architecture"
	"repoatlas/internal/graph"
)

var (
	renderInput   string
	renderInclude []string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the architecture graph as a Mermaid diagram",
	Long: `Build the dependency and architecture graphs from a parsed snapshot
and emit a Mermaid flowchart grouped by layer, for embedding in
generated documentation.

Examples:
  repoatlas render --input snapshot.json
  repoatlas render --input snapshot.json --include src/api/server.ts --include src/db/conn.ts`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderInput, "input", "-", "Snapshot file path, or - for stdin")
	renderCmd.Flags().StringArrayVar(&renderInclude, "include", nil,
		"Limit the diagram to these paths (repeatable; default: all)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	snap, err := loadSnapshot(renderInput)
	if err != nil {
		return err
	}

	cfg := loadConfigOrDefault(logger)
	opts := graph.DefaultOptions()
	opts.HubThreshold = cfg.Graph.HubThreshold

	input := snap.toInput(repoKeyFlag)
	dep := graph.Build(input.Parsed, input.Order, opts)
	arch := architecture.Build(input.Parsed, dep, opts)

	diagram := architecture.RenderMermaid(arch, architecture.RenderOptions{
		Include: renderInclude,
	})
	fmt.Print(diagram)
	return nil
}
