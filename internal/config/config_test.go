package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"videovault/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
library:
  roots:
    main: /srv/videos
    archive: /mnt/archive
index:
  backend: sqlite
  sqlite_path: /tmp/index.db
mutation:
  undo_window: 5s
  simulated_failure_rate: 0.25
  conflict_strategy: keep_both
player:
  command: vlc
  args: ["--fullscreen"]
logging:
  level: DEBUG
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Library.Roots["main"] != "/srv/videos" || cfg.Library.Roots["archive"] != "/mnt/archive" {
		t.Errorf("roots = %v", cfg.Library.Roots)
	}
	if cfg.Index.SQLitePath != "/tmp/index.db" {
		t.Errorf("sqlite path = %q", cfg.Index.SQLitePath)
	}
	if cfg.Mutation.UndoWindow != 5*time.Second {
		t.Errorf("undo window = %v", cfg.Mutation.UndoWindow)
	}
	if cfg.Mutation.SimulatedFailureRate != 0.25 {
		t.Errorf("failure rate = %v", cfg.Mutation.SimulatedFailureRate)
	}
	if s, _ := cfg.Mutation.Conflict(); s != domain.ConflictKeepBoth {
		t.Errorf("conflict = %q", s)
	}
	if cfg.Player.Command != "vlc" || len(cfg.Player.Args) != 1 {
		t.Errorf("player = %+v", cfg.Player)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	// Unset keys keep defaults
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("max backups = %d, want default 3", cfg.Logging.MaxBackups)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, "library:\n  roots:\n    main: /srv/videos\n")
	t.Setenv("VIDEOVAULT_MUTATION_UNDO_WINDOW", "2s")
	t.Setenv("VIDEOVAULT_PLAYER_COMMAND", "ffplay")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Mutation.UndoWindow != 2*time.Second {
		t.Errorf("undo window = %v, want 2s", cfg.Mutation.UndoWindow)
	}
	if cfg.Player.Command != "ffplay" {
		t.Errorf("player command = %q, want ffplay", cfg.Player.Command)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "no roots", mutate: func(c *Config) { c.Library.Roots = nil }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Index.Backend = "redis" }, wantErr: true},
		{name: "postgres without url", mutate: func(c *Config) { c.Index.Backend = BackendPostgres }, wantErr: true},
		{name: "postgres with url", mutate: func(c *Config) {
			c.Index.Backend = BackendPostgres
			c.Index.PostgresURL = "postgres://localhost/videovault"
		}},
		{name: "negative window", mutate: func(c *Config) { c.Mutation.UndoWindow = -time.Second }, wantErr: true},
		{name: "rate above one", mutate: func(c *Config) { c.Mutation.SimulatedFailureRate = 1.5 }, wantErr: true},
		{name: "unknown conflict", mutate: func(c *Config) { c.Mutation.ConflictStrategy = "merge" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLibraryConfig_RootKeys(t *testing.T) {
	l := LibraryConfig{Roots: map[string]string{"b": "/y", "a": "/x"}}
	if got := l.RootKeys(); got != "a=/x;b=/y" {
		t.Errorf("RootKeys() = %q", got)
	}
}
