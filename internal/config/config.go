package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete repoatlas configuration (v1 schema)
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Graph    GraphConfig    `json:"graph" mapstructure:"graph"`
	Skeleton SkeletonConfig `json:"skeleton" mapstructure:"skeleton"`
	State    StateConfig    `json:"state" mapstructure:"state"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// GraphConfig contains dependency graph construction settings
type GraphConfig struct {
	// HubThreshold is the minimum in-degree for a file to count as a hub
	HubThreshold int `json:"hubThreshold" mapstructure:"hubThreshold"`

	// HubFlagLimit caps how many top hubs get flagged on architecture nodes
	HubFlagLimit int `json:"hubFlagLimit" mapstructure:"hubFlagLimit"`
}

// SkeletonConfig contains skeleton output size limits
type SkeletonConfig struct {
	MaxQuickPaths     int `json:"maxQuickPaths" mapstructure:"maxQuickPaths"`
	MaxSearchPatterns int `json:"maxSearchPatterns" mapstructure:"maxSearchPatterns"`
}

// StateConfig contains incremental state persistence settings
type StateConfig struct {
	// Store selects the backend: "file", "sqlite", or "memory"
	Store string `json:"store" mapstructure:"store"`

	// Dir is the state directory for the file backend
	Dir string `json:"dir" mapstructure:"dir"`

	// DBPath is the database path for the sqlite backend
	DBPath string `json:"dbPath" mapstructure:"dbPath"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Graph: GraphConfig{
			HubThreshold: 3,
			HubFlagLimit: 20,
		},
		Skeleton: SkeletonConfig{
			MaxQuickPaths:     20,
			MaxSearchPatterns: 10,
		},
		State: StateConfig{
			Store:  "file",
			Dir:    ".repoatlas/state",
			DBPath: ".repoatlas/state.db",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .repoatlas/config.json
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".repoatlas"))

	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills zero-valued limits so a sparse config file still
// yields a usable configuration.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Graph.HubThreshold <= 0 {
		cfg.Graph.HubThreshold = def.Graph.HubThreshold
	}
	if cfg.Graph.HubFlagLimit <= 0 {
		cfg.Graph.HubFlagLimit = def.Graph.HubFlagLimit
	}
	if cfg.Skeleton.MaxQuickPaths <= 0 {
		cfg.Skeleton.MaxQuickPaths = def.Skeleton.MaxQuickPaths
	}
	if cfg.Skeleton.MaxSearchPatterns <= 0 {
		cfg.Skeleton.MaxSearchPatterns = def.Skeleton.MaxSearchPatterns
	}
	if cfg.State.Store == "" {
		cfg.State.Store = def.State.Store
	}
	if cfg.State.Dir == "" {
		cfg.State.Dir = def.State.Dir
	}
	if cfg.State.DBPath == "" {
		cfg.State.DBPath = def.State.DBPath
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

// Save writes the configuration to .repoatlas/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".repoatlas")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	switch c.State.Store {
	case "file", "sqlite", "memory":
	default:
		return &ConfigError{Field: "state.store", Message: "must be file, sqlite, or memory"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
