package main

import (
	"context"
	"fmt"
	"os"

	"repoatlas/internal/config"
	"repoatlas/internal/graph"
	"repoatlas/internal/incremental"
	"repoatlas/internal/logging"
	"repoatlas/internal/pipeline"
	"repoatlas/internal/skeleton"
)

// newLogger builds a logger from the persistent flags.
func newLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(logFormatFlag),
		Level:  logging.ParseLevel(logLevelFlag),
	})
}

// loadConfigOrDefault loads .repoatlas/config.json from the working
// directory, falling back to defaults.
func loadConfigOrDefault(logger *logging.Logger) *config.Config {
	root, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(root)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	return cfg
}

// newStore builds the state store the config selects. --state-dir forces
// the file backend at the given directory.
func newStore(cfg *config.Config, logger *logging.Logger) (incremental.StateStore, func(), error) {
	if stateDirFlag != "" {
		return incremental.NewFileStore(stateDirFlag, logger), func() {}, nil
	}
	switch cfg.State.Store {
	case "memory":
		return incremental.NewMemoryStore(), func() {}, nil
	case "sqlite":
		store, err := incremental.OpenSQLiteStore(cfg.State.DBPath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return incremental.NewFileStore(cfg.State.Dir, logger), func() {}, nil
	}
}

// newEngine wires a pipeline engine from config. The returned cleanup
// closes the store.
func newEngine(cfg *config.Config, logger *logging.Logger) (*pipeline.Engine, func(), error) {
	store, cleanup, err := newStore(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open state store: %w", err)
	}

	opts := graph.DefaultOptions()
	opts.HubThreshold = cfg.Graph.HubThreshold

	engine, err := pipeline.NewEngine(store, nil, logger, pipeline.Options{
		GraphOptions: opts,
		SkeletonLimits: skeleton.Limits{
			QuickPaths:     cfg.Skeleton.MaxQuickPaths,
			SearchPatterns: cfg.Skeleton.MaxSearchPatterns,
		},
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return engine, cleanup, nil
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}
