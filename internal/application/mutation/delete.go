package mutation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"videovault/internal/domain"
)

// DeleteOne hides an item now and removes its file once the undo window
// has passed
func (c *Coordinator) DeleteOne(ctx context.Context, id string) domain.ItemResult {
	release, err := c.locks.acquire(ctx, []string{id})
	if err != nil {
		return canceledResult(id, err)
	}
	defer release()

	intents := c.planner.PlanDelete([]string{id})
	if len(intents) == 0 {
		c.notifyNotFound(domain.KindDelete, id)
		return notFoundResult(id)
	}

	undoID, results := c.hide(ctx, intents)
	return domain.ItemResult{PerItemResult: results[0], UndoID: undoID, Deferred: true}
}

// BatchDelete hides every found item and schedules one finalization for all
func (c *Coordinator) BatchDelete(ctx context.Context, ids []string) domain.BatchResult {
	release, err := c.locks.acquire(ctx, ids)
	if err != nil {
		return canceledBatch(ids, err)
	}
	defer release()

	intents := c.planner.PlanDelete(ids)
	if len(intents) == 0 {
		br := domain.NewBatchResult(nil)
		br.Deferred = true
		return br
	}

	undoID, results := c.hide(ctx, intents)
	br := domain.NewBatchResult(results)
	br.UndoID = undoID
	br.Deferred = true
	return br
}

// hide removes the items from the library and the index, registers the undo
// entry and schedules the finalization
func (c *Coordinator) hide(ctx context.Context, intents []domain.Intent) (string, []domain.PerItemResult) {
	unique := uniqueIntents(intents)

	for _, item := range c.store.Remove(ctx, intentIDs(unique)) {
		c.indexRemove(ctx, item.ID)
	}

	entry := domain.UndoEntry{
		UndoID:      newUndoID(),
		Kind:        domain.KindDelete,
		Description: describe(domain.KindDelete, unique),
		Timeout:     c.undoWindow,
		CreatedAt:   c.scheduler.Now(),
		Intents:     unique,
	}
	c.registry.Register(entry)
	token := c.scheduler.Schedule(c.undoWindow, func() { c.finalize(entry.UndoID) })
	c.registry.Attach(entry.UndoID, token)

	results := make([]domain.PerItemResult, len(intents))
	for i, in := range intents {
		results[i] = domain.PerItemResult{ID: in.ID, Success: true}
	}

	c.logger.Info("delete deferred", "undo_id", entry.UndoID, "items", len(unique), "window", c.undoWindow)
	c.notifyBatch(domain.KindDelete, results, entry.UndoID, c.undoWindow)
	return entry.UndoID, results
}

// finalize removes the files of a delete that was not undone. Items whose
// file could not be removed are put back.
func (c *Coordinator) finalize(undoID string) {
	entry, _, ok := c.registry.Take(undoID)
	if !ok {
		return
	}
	ctx := context.Background()

	settled := make([]domain.PerItemResult, len(entry.Intents))
	var g errgroup.Group
	for i, in := range entry.Intents {
		g.Go(func() error {
			settled[i] = c.deleteFile(ctx, in)
			return nil
		})
	}
	_ = g.Wait()

	var restore []domain.Item
	var firstErr string
	for i, r := range settled {
		if r.Success {
			continue
		}
		if firstErr == "" {
			firstErr = r.Error
		}
		restore = append(restore, entry.Intents[i].Snapshot)
		c.logger.Warn("delete finalization failed", "undo_id", undoID, "id", r.ID, "code", r.Code, "error", r.Error)
	}

	if len(restore) > 0 {
		for _, item := range c.store.Insert(ctx, restore) {
			c.indexAdd(ctx, item)
		}
		c.notifyFinalizeFailed(len(restore), len(entry.Intents), firstErr)
	}

	c.logger.Info("delete finalized", "undo_id", undoID, "deleted", len(entry.Intents)-len(restore), "restored", len(restore))
}

func (c *Coordinator) deleteFile(ctx context.Context, in domain.Intent) (res domain.PerItemResult) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("disk delete panicked", "id", in.ID, "panic", r)
			res = domain.PerItemResult{ID: in.ID, Error: fmt.Sprintf("panic: %v", r), Code: domain.CodeException}
		}
	}()

	dr, err := c.disk.DeleteFile(ctx, in.Snapshot.Location())
	return c.settle(in, dr, err)
}

// restoreDeleted puts the snapshots of a hidden delete back
func (c *Coordinator) restoreDeleted(ctx context.Context, entry domain.UndoEntry) {
	items := make([]domain.Item, len(entry.Intents))
	for i, in := range entry.Intents {
		items[i] = in.Snapshot
	}
	for _, item := range c.store.Insert(ctx, items) {
		c.indexAdd(ctx, item)
	}
}
