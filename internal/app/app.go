// Package app assembles the library, search index and mutation coordinator
// from configuration. Every entry point shares it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"videovault/internal/adapters/bolt"
	"videovault/internal/adapters/filesystem"
	"videovault/internal/adapters/postgres"
	"videovault/internal/adapters/sqlite"
	"videovault/internal/application/commands"
	"videovault/internal/application/library"
	"videovault/internal/application/mutation"
	"videovault/internal/config"
	"videovault/internal/ports"
)

// Library is an opened video library
type Library struct {
	Config  *config.Config
	Logger  *slog.Logger
	Disk    *filesystem.Disk
	Store   *library.Store
	Index   ports.Index
	Mutator *mutation.Coordinator

	scanner *filesystem.Scanner
	catalog *bolt.Catalog
	rebuild bool
}

// Open wires every component. The notifier may be nil.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, notifier ports.Notifier) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	conflict, err := cfg.Mutation.Conflict()
	if err != nil {
		return nil, err
	}

	catalog, err := bolt.Open(cfg.Library.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	store := library.NewStore(library.WithCatalog(catalog), library.WithLogger(logger))
	if err := store.Load(ctx); err != nil {
		catalog.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	index, rebuild, err := openIndex(ctx, cfg)
	if err != nil {
		catalog.Close()
		return nil, err
	}

	disk := filesystem.NewDisk(cfg.Library.Roots, logger)
	coord := mutation.NewCoordinator(store, disk, index,
		mutation.WithLogger(logger),
		mutation.WithNotifier(notifier),
		mutation.WithUndoWindow(cfg.Mutation.UndoWindow),
		mutation.WithFailureInjector(mutation.FixedRate(cfg.Mutation.SimulatedFailureRate)),
		mutation.WithConflictStrategy(conflict),
	)

	return &Library{
		Config:  cfg,
		Logger:  logger,
		Disk:    disk,
		Store:   store,
		Index:   index,
		Mutator: coord,
		scanner: filesystem.NewScanner(cfg.Library.Roots, cfg.Library.VideoExtensions, logger),
		catalog: catalog,
		rebuild: rebuild,
	}, nil
}

func openIndex(ctx context.Context, cfg *config.Config) (ports.Index, bool, error) {
	switch cfg.Index.Backend {
	case config.BackendPostgres:
		idx, err := postgres.Open(ctx, cfg.Index.PostgresURL)
		if err != nil {
			return nil, false, fmt.Errorf("failed to open postgres index: %w", err)
		}
		return idx, false, nil
	default:
		idx := sqlite.NewIndex()
		if err := idx.Open(cfg.Index.SQLitePath, cfg.Library.RootKeys()); err != nil {
			return nil, false, fmt.Errorf("failed to open sqlite index: %w", err)
		}
		return idx, idx.NeedsFullRebuild(), nil
	}
}

// NeedsScan reports whether the library has never been scanned or the index
// is out of date
func (l *Library) NeedsScan() bool {
	return l.rebuild || l.Store.Len() == 0 || l.catalog.ScannedAt().IsZero()
}

// Scan refreshes the library from disk and rebuilds the index
func (l *Library) Scan(ctx context.Context) (*commands.ScanResult, error) {
	res, err := commands.NewScanCommand(l.scanner, l.Store, l.Index, l.Mutator, l.Logger).Execute(ctx)
	if err != nil {
		return nil, err
	}
	l.rebuild = false
	if err := l.catalog.MarkScanned(time.Now()); err != nil {
		l.Logger.Warn("failed to record scan time", "error", err)
	}
	return res, nil
}

// ScanIfNeeded scans when NeedsScan is true
func (l *Library) ScanIfNeeded(ctx context.Context) error {
	if !l.NeedsScan() {
		return nil
	}
	res, err := l.Scan(ctx)
	if err != nil {
		return err
	}
	l.Logger.Info("library scanned", "total", res.Total, "added", res.Added, "removed", res.Removed)
	return nil
}

// Close finalizes pending deletes, then closes the index and catalog
func (l *Library) Close(ctx context.Context) error {
	return errors.Join(
		l.Mutator.Close(ctx),
		l.Index.Close(),
		l.catalog.Close(),
	)
}
