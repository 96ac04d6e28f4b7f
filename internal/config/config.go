// Package config loads videovault settings from config.yaml and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"videovault/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Library  LibraryConfig  `mapstructure:"library"`
	Index    IndexConfig    `mapstructure:"index"`
	Mutation MutationConfig `mapstructure:"mutation"`
	Player   PlayerConfig   `mapstructure:"player"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LibraryConfig describes where videos live
type LibraryConfig struct {
	Roots           map[string]string `mapstructure:"roots"` // rootKey -> directory
	CatalogPath     string            `mapstructure:"catalog_path"`
	VideoExtensions []string          `mapstructure:"video_extensions"`
}

// IndexConfig selects the search index backend
type IndexConfig struct {
	Backend     string `mapstructure:"backend"` // "sqlite" or "postgres"
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresURL string `mapstructure:"postgres_url"`
}

// MutationConfig tunes the mutation coordinator
type MutationConfig struct {
	UndoWindow           time.Duration `mapstructure:"undo_window"`
	SimulatedFailureRate float64       `mapstructure:"simulated_failure_rate"`
	ConflictStrategy     string        `mapstructure:"conflict_strategy"` // "fail" or "keep_both"
}

// PlayerConfig holds media player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Index backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Library: LibraryConfig{
			Roots:           map[string]string{"videos": filepath.Join(home, "Videos")},
			CatalogPath:     filepath.Join(dataDir(), "catalog.db"),
			VideoExtensions: []string{".mp4", ".mkv", ".avi", ".mov", ".webm", ".m4v", ".wmv", ".flv", ".mpg", ".mpeg"},
		},
		Index: IndexConfig{
			Backend: BackendSQLite,
		},
		Mutation: MutationConfig{
			UndoWindow:       8 * time.Second,
			ConflictStrategy: "fail",
		},
		Player: PlayerConfig{
			Command: "mpv",
			Args:    []string{},
		},
		Logging: LoggingConfig{
			File:       filepath.Join(dataDir(), "videovault.log"),
			Level:      "INFO",
			MaxSizeMB:  16,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// dataDir returns the XDG data directory for videovault
func dataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "videovault")
}

// configDir returns the XDG config directory for videovault
func configDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "videovault")
}

// LoadConfig loads configuration from file and environment. An empty path
// searches config.yaml in the config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	setDefaults(v, cfg)

	// Environment variable overrides, e.g. VIDEOVAULT_MUTATION_UNDO_WINDOW
	v.SetEnvPrefix("VIDEOVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides apply to all of them
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("library.roots", cfg.Library.Roots)
	v.SetDefault("library.catalog_path", cfg.Library.CatalogPath)
	v.SetDefault("library.video_extensions", cfg.Library.VideoExtensions)
	v.SetDefault("index.backend", cfg.Index.Backend)
	v.SetDefault("index.sqlite_path", cfg.Index.SQLitePath)
	v.SetDefault("index.postgres_url", cfg.Index.PostgresURL)
	v.SetDefault("mutation.undo_window", cfg.Mutation.UndoWindow)
	v.SetDefault("mutation.simulated_failure_rate", cfg.Mutation.SimulatedFailureRate)
	v.SetDefault("mutation.conflict_strategy", cfg.Mutation.ConflictStrategy)
	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", cfg.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", cfg.Logging.Compress)
}

// Validate checks values viper cannot type-check
func (c *Config) Validate() error {
	if len(c.Library.Roots) == 0 {
		return fmt.Errorf("library.roots: at least one root is required")
	}
	switch c.Index.Backend {
	case BackendSQLite:
	case BackendPostgres:
		if c.Index.PostgresURL == "" {
			return fmt.Errorf("index.postgres_url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("index.backend: unknown backend %q", c.Index.Backend)
	}
	if c.Mutation.UndoWindow < 0 {
		return fmt.Errorf("mutation.undo_window must not be negative")
	}
	if c.Mutation.SimulatedFailureRate < 0 || c.Mutation.SimulatedFailureRate > 1 {
		return fmt.Errorf("mutation.simulated_failure_rate must be between 0 and 1")
	}
	if _, err := c.Mutation.Conflict(); err != nil {
		return err
	}
	return nil
}

// Conflict returns the configured conflict strategy
func (m MutationConfig) Conflict() (domain.ConflictStrategy, error) {
	switch m.ConflictStrategy {
	case "", "fail":
		return domain.ConflictFail, nil
	case string(domain.ConflictKeepBoth):
		return domain.ConflictKeepBoth, nil
	default:
		return "", fmt.Errorf("mutation.conflict_strategy: unknown strategy %q", m.ConflictStrategy)
	}
}

// RootKeys returns the configured root keys joined for index naming
func (l LibraryConfig) RootKeys() string {
	keys := make([]string, 0, len(l.Roots))
	for k, dir := range l.Roots {
		keys = append(keys, k+"="+dir)
	}
	slices.Sort(keys)
	return strings.Join(keys, ";")
}
