package commands

import (
	"context"
	"fmt"
	"log/slog"

	"videovault/internal/domain"
	"videovault/internal/ports"
)

// LibraryScanner walks the configured roots for videos
type LibraryScanner interface {
	Scan(ctx context.Context, known []domain.Item) ([]domain.Item, error)
}

// LibraryWriter is the part of the library store a scan updates
type LibraryWriter interface {
	List() []domain.Item
	Upsert(ctx context.Context, items []domain.Item) int
	Remove(ctx context.Context, ids []string) []domain.Item
}

// ItemLocker holds items against concurrent mutation. A Mutator that
// implements it is held for the whole scan.
type ItemLocker interface {
	Hold(ctx context.Context, ids []string) (release func(), err error)
}

// ScanResult contains the result of a scan
type ScanResult struct {
	Added   int
	Removed int
	Total   int
	Index   *domain.SyncStats
	Message string
}

// ScanCommand refreshes the library from disk and rebuilds the search index
type ScanCommand struct {
	scanner LibraryScanner
	store   LibraryWriter
	index   ports.SearchQuerier
	mutator Mutator
	logger  *slog.Logger
}

// NewScanCommand creates a new ScanCommand. index and mutator may be nil.
func NewScanCommand(scanner LibraryScanner, store LibraryWriter, index ports.SearchQuerier, mutator Mutator, logger *slog.Logger) *ScanCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScanCommand{
		scanner: scanner,
		store:   store,
		index:   index,
		mutator: mutator,
		logger:  logger,
	}
}

// Execute runs the scan. Items hidden by a pending delete keep their id and
// stay hidden.
func (c *ScanCommand) Execute(ctx context.Context) (*ScanResult, error) {
	release, err := c.hold(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan library: %w", err)
	}
	defer release()

	known := c.store.List()
	hidden := c.hiddenItems()
	for _, item := range hidden {
		known = append(known, item)
	}

	scanned, err := c.scanner.Scan(ctx, known)
	if err != nil {
		return nil, fmt.Errorf("failed to scan library: %w", err)
	}

	visible := make([]domain.Item, 0, len(scanned))
	present := make(map[string]bool, len(scanned))
	for _, item := range scanned {
		present[item.ID] = true
		if _, ok := hidden[item.ID]; ok {
			continue
		}
		visible = append(visible, item)
	}

	var vanished []string
	for _, item := range c.store.List() {
		if !present[item.ID] {
			vanished = append(vanished, item.ID)
		}
	}

	result := &ScanResult{}
	result.Added = c.store.Upsert(ctx, visible)
	result.Removed = len(c.store.Remove(ctx, vanished))
	result.Total = len(visible)

	if c.index != nil {
		stats, err := c.index.Rebuild(ctx, c.store.List())
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild index: %w", err)
		}
		result.Index = stats
	}

	c.logger.Info("library scanned", "total", result.Total, "added", result.Added, "removed", result.Removed)
	result.Message = fmt.Sprintf("Scanned %d videos (%d new, %d removed)", result.Total, result.Added, result.Removed)
	return result, nil
}

// hold waits for in-flight mutations of every known item to settle and keeps
// new ones out until release
func (c *ScanCommand) hold(ctx context.Context) (func(), error) {
	locker, ok := c.mutator.(ItemLocker)
	if !ok {
		return func() {}, nil
	}
	var ids []string
	for _, item := range c.store.List() {
		ids = append(ids, item.ID)
	}
	for id := range c.hiddenItems() {
		ids = append(ids, id)
	}
	return locker.Hold(ctx, ids)
}

// hiddenItems returns the snapshots of items awaiting deletion
func (c *ScanCommand) hiddenItems() map[string]domain.Item {
	hidden := make(map[string]domain.Item)
	if c.mutator == nil {
		return hidden
	}
	for _, e := range c.mutator.Pending() {
		if e.Kind != domain.KindDelete {
			continue
		}
		for _, in := range e.Intents {
			hidden[in.ID] = in.Snapshot
		}
	}
	return hidden
}
