package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"videovault/internal/app"
	"videovault/internal/config"
	"videovault/internal/logging"
)

var (
	configPath string
	lib        *app.Library
)

var rootCmd = &cobra.Command{
	Use:   "videovault-cli",
	Short: "CLI for organizing a video library",
	Long: `videovault-cli renames, moves and deletes videos in the configured
library roots, keeping the catalog and the search index in sync.

Deletes stay undoable for the configured undo window: the command waits
and Ctrl+C during the wait restores the videos.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger, err := logging.SetupLogger(&cfg.Logging)
		if err != nil {
			logger = logging.NullLogger()
		}
		slog.SetDefault(logger)

		ctx := cmd.Context()
		lib, err = app.Open(ctx, cfg, logger, nil)
		if err != nil {
			return err
		}
		if cmd.Name() == scanCmd.Name() {
			return nil
		}
		return lib.ScanIfNeeded(ctx)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLibrary()
	},
}

func closeLibrary() error {
	if lib == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := lib.Close(ctx)
	lib = nil
	return err
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when RunE fails
	if cerr := closeLibrary(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
}

// GetLibrary returns the opened library
func GetLibrary() *app.Library {
	return lib
}
