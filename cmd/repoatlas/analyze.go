package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"repoatlas/internal/export"
)

var (
	analyzeInput  string
	analyzeFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full analysis over a parsed snapshot",
	Long: `Run the full analysis pipeline over a parsed repository snapshot:
change detection, dependency graph, importance ranking, architecture
graph, and skeleton. The new incremental state is persisted for the
next run.

Examples:
  repoatlas analyze --input snapshot.json
  repoatlas analyze --input - < snapshot.json
  repoatlas analyze --input snapshot.json --format yaml`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "-", "Snapshot file path, or - for stdin")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Output format (json, yaml, toml)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	format, err := export.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(analyzeInput)
	if err != nil {
		return err
	}

	cfg := loadConfigOrDefault(logger)
	engine, cleanup, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.Run(newContext(), snap.toInput(repoKeyFlag))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	data, err := export.Encode(result, format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
