package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"videovault/internal/adapters/player"
	"videovault/internal/adapters/tui"
	"videovault/internal/adapters/tui/views"
	"videovault/internal/app"
	"videovault/internal/config"
	"videovault/internal/logging"
)

// Version is set at build time via -ldflags
var Version = "dev"

// closeTimeout bounds how long quitting waits for pending deletes
const closeTimeout = 30 * time.Second

func main() {
	var showVersion bool
	var configPath string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to the config file")
	flag.Parse()

	if showVersion {
		fmt.Printf("videovault %s\n", Version)
		return
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting videovault", "version", Version)

	ctx := context.Background()
	notifier := &tui.ProgramNotifier{}

	lib, err := app.Open(ctx, cfg, logger, notifier)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := lib.Close(closeCtx); err != nil {
			logger.Error("failed to close library", "error", err)
		}
	}()

	if lib.NeedsScan() {
		fmt.Println("Scanning library...")
	}
	if err := lib.ScanIfNeeded(ctx); err != nil {
		return fmt.Errorf("failed to scan library: %w", err)
	}

	model := tui.NewApp(views.Services{
		Mutator: lib.Mutator,
		Items:   lib.Store,
		AbsPath: lib.Disk.AbsPath,
	}, player.NewOpener(cfg.Player.Command, cfg.Player.Args), lib.Mutator.UndoWindow())

	p := tea.NewProgram(model, tea.WithAltScreen())
	notifier.Attach(p)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
