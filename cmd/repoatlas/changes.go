package main

import (
	"os"

	"github.com/spf13/cobra"

	"repoatlas/internal/export"
	"repoatlas/internal/incremental"
)

var (
	changesInput  string
	changesFormat string
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Diff a snapshot against the last analyzed state",
	Long: `Compare a parsed snapshot against the persisted state of the last
analysis run, without running the pipeline or saving anything.

Reports added, modified, deleted, and unchanged files plus whether the
next run would re-analyze from scratch.

Examples:
  repoatlas changes --input snapshot.json
  repoatlas changes --input snapshot.json --format yaml`,
	RunE: runChanges,
}

func init() {
	changesCmd.Flags().StringVar(&changesInput, "input", "-", "Snapshot file path, or - for stdin")
	changesCmd.Flags().StringVar(&changesFormat, "format", "json", "Output format (json, yaml, toml)")
	rootCmd.AddCommand(changesCmd)
}

func runChanges(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	format, err := export.ParseFormat(changesFormat)
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(changesInput)
	if err != nil {
		return err
	}

	cfg := loadConfigOrDefault(logger)
	store, cleanup, err := newStore(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	input := snap.toInput(repoKeyFlag)
	ctx := newContext()

	previous, err := store.Load(ctx, input.RepoKey)
	if err != nil {
		return err
	}

	current := incremental.BuildState(input.Commit, input.Order, input.Contents, nil)
	report := incremental.DetectChanges(current, previous)

	data, err := export.Encode(report, format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
