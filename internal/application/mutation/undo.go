package mutation

import (
	"context"
	"fmt"

	"videovault/internal/application"
	"videovault/internal/domain"
)

// Undo compensates the mutation registered under undoID. Unknown or already
// consumed ids are ignored. A partially failed revert returns an
// *application.UndoError; the items that did revert stay reverted. Items no
// longer in the library count as failed.
func (c *Coordinator) Undo(ctx context.Context, undoID string) error {
	entry, ok := c.registry.Peek(undoID)
	if !ok {
		return nil
	}

	release, err := c.locks.acquire(ctx, entry.IDs())
	if err != nil {
		return fmt.Errorf("undo %s: %w", undoID, err)
	}
	defer release()

	entry, token, ok := c.registry.Take(undoID)
	if !ok {
		return nil
	}

	if entry.Kind == domain.KindDelete {
		token.Cancel()
		c.restoreDeleted(ctx, entry)
		c.logger.Info("delete undone", "undo_id", undoID, "items", len(entry.Intents))
		c.notifyUndone(entry, 0)
		return nil
	}

	// Items hidden by a pending delete are not reverted; their file has to
	// stay where the delete will look for it.
	var live []domain.Intent
	var results []domain.PerItemResult
	for _, in := range Invert(entry.Intents) {
		if _, ok := c.store.Get(in.ID); !ok {
			results = append(results, notFoundResult(in.ID).PerItemResult)
			continue
		}
		live = append(live, in)
	}
	if len(live) > 0 {
		// An undo restores the exact original name or fails
		out := c.execute(ctx, entry.Kind, live, domain.DiskOptions{ConflictStrategy: domain.ConflictFail})
		results = append(results, out.results...)
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	c.notifyUndone(entry, failed)

	if failed > 0 {
		c.logger.Warn("undo partially failed", "undo_id", undoID, "failed", failed, "total", len(results))
		return &application.UndoError{
			UndoID: undoID,
			Kind:   string(entry.Kind),
			Failed: failed,
			Total:  len(results),
		}
	}
	c.logger.Info("mutation undone", "undo_id", undoID, "kind", entry.Kind, "items", len(results))
	return nil
}

// Hold blocks mutations of ids until release is called. It waits for
// running mutations of those ids first.
func (c *Coordinator) Hold(ctx context.Context, ids []string) (func(), error) {
	return c.locks.acquire(ctx, ids)
}

// Pending returns the undo entries that can still be invoked
func (c *Coordinator) Pending() []domain.UndoEntry {
	return c.registry.Pending()
}

// Close finalizes every pending delete and waits for running ones. After
// Close returns no file removal is left scheduled.
func (c *Coordinator) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.scheduler.Flush()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
