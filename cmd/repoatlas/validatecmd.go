package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"repoatlas/internal/analysis"
	"repoatlas/internal/export"
	"repoatlas/internal/graph"
	"repoatlas/internal/skeleton"
	"repoatlas/internal/validate"
)

var (
	validateInput  string
	validateProse  string
	validateFormat string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check generated prose against the skeleton",
	Long: `Rebuild the skeleton from a parsed snapshot and check an externally
generated prose file against its entity set.

Missing descriptions are warnings; descriptions or relationships naming
unknown entities are errors and set a non-zero exit code.

Examples:
  repoatlas validate --input snapshot.json --prose prose.json
  repoatlas validate --input snapshot.json --prose prose.json --format yaml`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateInput, "input", "-", "Snapshot file path, or - for stdin")
	validateCmd.Flags().StringVar(&validateProse, "prose", "", "Prose file path (required)")
	validateCmd.Flags().StringVar(&validateFormat, "format", "json", "Output format (json, yaml, toml)")
	_ = validateCmd.MarkFlagRequired("prose")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	format, err := export.ParseFormat(validateFormat)
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(validateInput)
	if err != nil {
		return err
	}

	proseData, err := os.ReadFile(validateProse)
	if err != nil {
		return fmt.Errorf("failed to read prose: %w", err)
	}
	var prose validate.Prose
	if err := json.Unmarshal(proseData, &prose); err != nil {
		return fmt.Errorf("failed to parse prose: %w", err)
	}

	cfg := loadConfigOrDefault(logger)
	opts := graph.DefaultOptions()
	opts.HubThreshold = cfg.Graph.HubThreshold

	input := snap.toInput(repoKeyFlag)
	dep := graph.Build(input.Parsed, input.Order, opts)
	index := analysis.Rank(input.Order, input.Parsed, dep.InDegrees())
	sk := skeleton.Build(index, input.Parsed, skeleton.Limits{
		QuickPaths:     cfg.Skeleton.MaxQuickPaths,
		SearchPatterns: cfg.Skeleton.MaxSearchPatterns,
	})

	report := validate.Check(sk, &prose)

	data, err := export.Encode(report, format)
	if err != nil {
		return err
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return err
	}

	if !report.Passed {
		return fmt.Errorf("validation failed with %d error(s)", len(report.Errors()))
	}
	return nil
}
