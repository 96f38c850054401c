package main

import (
	"github.com/spf13/cobra"

	"repoatlas/internal/version"
)

var (
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
	// repoKeyFlag overrides the snapshot's repository key
	repoKeyFlag string
	// stateDirFlag overrides the configured state directory
	stateDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "repoatlas",
	Short: "repoatlas - deterministic repository structure analysis",
	Long: `repoatlas analyzes a pre-parsed repository snapshot into a dependency
graph, an importance-ranked file index, an architecture graph, and a
deterministic skeleton, with hash-based incremental change tracking
between runs.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("repoatlas version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "human",
		"Log format: human, json")
	rootCmd.PersistentFlags().StringVar(&repoKeyFlag, "repo-key", "",
		"Repository key for state persistence (default: snapshot's repoKey)")
	rootCmd.PersistentFlags().StringVar(&stateDirFlag, "state-dir", "",
		"State directory for the file store (default: from config)")
}
