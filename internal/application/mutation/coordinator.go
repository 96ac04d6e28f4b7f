// Package mutation applies rename, move and delete requests to the library
// optimistically, confirms them against the disk and rolls back the items
// whose disk operation failed.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"videovault/internal/application"
	"videovault/internal/application/library"
	"videovault/internal/application/undo"
	"videovault/internal/domain"
	"videovault/internal/ports"
)

// DefaultUndoWindow is how long a delete can be undone before the file is removed
const DefaultUndoWindow = 8 * time.Second

// Coordinator owns every mutation of the library
type Coordinator struct {
	store   *library.Store
	planner Planner
	disk    ports.DiskOperator
	index   ports.SearchIndex

	registry  *undo.Registry
	scheduler *undo.Scheduler
	locks     *lockSet

	failures   ports.FailureInjector
	random     func() float64
	notifier   ports.Notifier
	logger     *slog.Logger
	undoWindow time.Duration
	conflict   domain.ConflictStrategy
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithFailureInjector sets the source of simulated disk failures
func WithFailureInjector(f ports.FailureInjector) Option {
	return func(c *Coordinator) {
		if f != nil {
			c.failures = f
		}
	}
}

// WithRandom replaces the uniform [0,1) source used by failure injection
func WithRandom(random func() float64) Option {
	return func(c *Coordinator) {
		if random != nil {
			c.random = random
		}
	}
}

// WithNotifier sets where user notifications are sent
func WithNotifier(n ports.Notifier) Option {
	return func(c *Coordinator) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUndoWindow sets how long deletes stay undoable
func WithUndoWindow(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.undoWindow = d
		}
	}
}

// WithConflictStrategy sets the strategy used when a request leaves it unset
func WithConflictStrategy(s domain.ConflictStrategy) Option {
	return func(c *Coordinator) {
		if s != domain.ConflictDefault {
			c.conflict = s
		}
	}
}

// WithScheduler sets the scheduler running delete finalization
func WithScheduler(s *undo.Scheduler) Option {
	return func(c *Coordinator) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithRegistry shares an undo registry
func WithRegistry(r *undo.Registry) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.registry = r
		}
	}
}

// NewCoordinator creates a coordinator. A nil index disables index updates.
func NewCoordinator(store *library.Store, disk ports.DiskOperator, index ports.SearchIndex, opts ...Option) *Coordinator {
	if index == nil {
		index = ports.NopIndex{}
	}
	c := &Coordinator{
		store:      store,
		planner:    NewPlanner(store),
		disk:       disk,
		index:      index,
		registry:   undo.NewRegistry(),
		locks:      newLockSet(),
		failures:   ports.NoFailures{},
		random:     rand.Float64,
		notifier:   ports.NopNotifier{},
		logger:     slog.Default(),
		undoWindow: DefaultUndoWindow,
		conflict:   domain.ConflictFail,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.scheduler == nil {
		c.scheduler = undo.NewScheduler(nil)
	}
	return c
}

// UndoWindow returns how long deletes stay undoable
func (c *Coordinator) UndoWindow() time.Duration {
	return c.undoWindow
}

// RenameOne renames a single item. The new name is only kept if the disk
// rename succeeds.
func (c *Coordinator) RenameOne(ctx context.Context, id, newBaseName string, applyTo domain.ApplyTo, opts domain.DiskOptions) domain.ItemResult {
	if applyTo == "" {
		applyTo = domain.ApplyToBoth
	}

	release, err := c.locks.acquire(ctx, []string{id})
	if err != nil {
		return canceledResult(id, err)
	}
	defer release()

	intents := c.planner.PlanRename(id, newBaseName, applyTo)
	if len(intents) == 0 {
		c.notifyNotFound(domain.KindRename, id)
		return notFoundResult(id)
	}

	out := c.execute(ctx, domain.KindRename, intents, opts)
	undoID := c.registerReversible(domain.KindRename, out.committed)
	c.notifyBatch(domain.KindRename, out.results, undoID, 0)

	return domain.ItemResult{PerItemResult: out.results[0], UndoID: undoID}
}

// BatchRename renames every found item using a numbered pattern
func (c *Coordinator) BatchRename(ctx context.Context, ids []string, opts domain.BatchRenameOptions) domain.BatchResult {
	release, err := c.locks.acquire(ctx, ids)
	if err != nil {
		return canceledBatch(ids, err)
	}
	defer release()

	intents := c.planner.PlanBatchRename(ids, opts)
	if len(intents) == 0 {
		return domain.NewBatchResult(nil)
	}

	out := c.execute(ctx, domain.KindRename, intents, opts.Disk)
	undoID := c.registerReversible(domain.KindRename, out.committed)
	c.notifyBatch(domain.KindRename, out.results, undoID, 0)

	br := domain.NewBatchResult(out.results)
	br.UndoID = undoID
	return br
}

// MoveOne moves a single item into targetDir
func (c *Coordinator) MoveOne(ctx context.Context, id, targetDir string, opts domain.DiskOptions) domain.ItemResult {
	release, err := c.locks.acquire(ctx, []string{id})
	if err != nil {
		return canceledResult(id, err)
	}
	defer release()

	intents := c.planner.PlanMove([]string{id}, targetDir)
	if len(intents) == 0 {
		c.notifyNotFound(domain.KindMove, id)
		return notFoundResult(id)
	}

	out := c.execute(ctx, domain.KindMove, intents, opts)
	undoID := c.registerReversible(domain.KindMove, out.committed)
	c.notifyBatch(domain.KindMove, out.results, undoID, 0)

	return domain.ItemResult{PerItemResult: out.results[0], UndoID: undoID}
}

// BatchMove moves every found item into targetDir
func (c *Coordinator) BatchMove(ctx context.Context, ids []string, targetDir string, opts domain.DiskOptions) domain.BatchResult {
	release, err := c.locks.acquire(ctx, ids)
	if err != nil {
		return canceledBatch(ids, err)
	}
	defer release()

	intents := c.planner.PlanMove(ids, targetDir)
	if len(intents) == 0 {
		return domain.NewBatchResult(nil)
	}

	out := c.execute(ctx, domain.KindMove, intents, opts)
	undoID := c.registerReversible(domain.KindMove, out.committed)
	c.notifyBatch(domain.KindMove, out.results, undoID, 0)

	br := domain.NewBatchResult(out.results)
	br.UndoID = undoID
	return br
}

type execution struct {
	results   []domain.PerItemResult // One per intent, in intent order
	committed []domain.Intent        // Succeeded intents with their final Next
}

// execute runs the optimistic protocol for rename and move intents:
// apply, dispatch concurrently, roll back failures, apply resolved names.
// Callers must hold the locks of every intent id.
func (c *Coordinator) execute(ctx context.Context, kind domain.MutationKind, intents []domain.Intent, opts domain.DiskOptions) execution {
	if opts.ConflictStrategy == domain.ConflictDefault {
		opts.ConflictStrategy = c.conflict
	}
	unique := uniqueIntents(intents)

	next := make(map[string]domain.Fields, len(unique))
	for _, in := range unique {
		next[in.ID] = in.Next
	}
	for _, item := range c.store.ApplyFields(ctx, next) {
		c.indexUpdate(ctx, item)
	}

	settled := make([]domain.PerItemResult, len(unique))
	var g errgroup.Group
	for i, in := range unique {
		if !in.TouchesDisk {
			settled[i] = c.settle(in, domain.DiskResult{Success: true}, nil)
			continue
		}
		g.Go(func() error {
			settled[i] = c.dispatch(ctx, kind, in, opts)
			return nil
		})
	}
	_ = g.Wait()

	revert := make(map[string]domain.Fields)
	resolved := make(map[string]domain.Fields)
	byID := make(map[string]domain.PerItemResult, len(unique))
	committed := make([]domain.Intent, 0, len(unique))
	for i, in := range unique {
		r := settled[i]
		byID[in.ID] = r
		if !r.Success {
			revert[in.ID] = in.Original
			continue
		}
		if r.ResolvedName != "" {
			in.Next.Filename = r.ResolvedName
			resolved[in.ID] = in.Next
		}
		committed = append(committed, in)
	}

	if len(revert) > 0 {
		for _, item := range c.store.ApplyFields(ctx, revert) {
			c.indexUpdate(ctx, item)
		}
	}
	if len(resolved) > 0 {
		for _, item := range c.store.ApplyFields(ctx, resolved) {
			c.indexUpdate(ctx, item)
		}
	}

	results := make([]domain.PerItemResult, len(intents))
	for i, in := range intents {
		results[i] = byID[in.ID]
	}

	c.logger.Info("mutation settled",
		"kind", kind,
		"total", len(unique),
		"committed", len(committed),
		"rolled_back", len(revert),
		"resolved", len(resolved))

	return execution{results: results, committed: committed}
}

// dispatch performs one disk call and settles its outcome
func (c *Coordinator) dispatch(ctx context.Context, kind domain.MutationKind, in domain.Intent, opts domain.DiskOptions) (res domain.PerItemResult) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("disk operation panicked", "kind", kind, "id", in.ID, "panic", r)
			res = domain.PerItemResult{ID: in.ID, Error: fmt.Sprintf("panic: %v", r), Code: domain.CodeException}
		}
	}()

	loc := domain.LocationOf(in.ID, in.Original)
	var dr domain.DiskResult
	var err error
	switch kind {
	case domain.KindRename:
		dr, err = c.disk.AttemptRename(ctx, loc, in.Next.Filename, opts)
	case domain.KindMove:
		if in.Next.Filename != in.Original.Filename {
			opts.PreferredName = in.Next.Filename
		}
		dr, err = c.disk.MoveFile(ctx, loc, in.Next.Dir, opts)
	default:
		err = fmt.Errorf("%w: %s cannot be dispatched", application.ErrInvalidOperation, kind)
	}

	c.logger.Debug("disk operation returned",
		"kind", kind,
		"id", in.ID,
		"path", loc.Path(),
		"success", dr.Success,
		"error", err)

	return c.settle(in, dr, err)
}

// settle turns a disk outcome into a result, applying failure injection
// before the real outcome is looked at
func (c *Coordinator) settle(in domain.Intent, dr domain.DiskResult, err error) domain.PerItemResult {
	res := domain.PerItemResult{ID: in.ID}

	switch {
	case c.injectFailure():
		res.Error = domain.SimulatedFailureMessage
		res.Code = domain.CodeSimulated
	case err != nil:
		res.Error = err.Error()
		res.Code = errorCode(err)
	case !dr.Success:
		res.Error = dr.Message
		if res.Error == "" {
			res.Error = "disk operation failed"
		}
		res.Code = dr.Code
		if res.Code == "" {
			res.Code = domain.CodeDiskFailure
		}
	default:
		res.Success = true
		if dr.ResolvedName != "" && dr.ResolvedName != in.Next.Filename {
			res.ResolvedName = dr.ResolvedName
		}
	}
	return res
}

func errorCode(err error) string {
	var diskErr *application.DiskError
	if errors.As(err, &diskErr) && diskErr.Code != "" {
		return diskErr.Code
	}
	switch {
	case errors.Is(err, application.ErrNotFound):
		return domain.CodeNotFound
	case errors.Is(err, application.ErrConflict):
		return domain.CodeConflict
	case errors.Is(err, application.ErrCrossDevice):
		return domain.CodeCrossDevice
	case errors.Is(err, application.ErrUnknownRoot):
		return domain.CodeUnknownRoot
	default:
		return domain.CodeDiskFailure
	}
}

// registerReversible records the committed intents of a rename or move.
// It returns "" when nothing was committed.
func (c *Coordinator) registerReversible(kind domain.MutationKind, committed []domain.Intent) string {
	if len(committed) == 0 {
		return ""
	}
	entry := domain.UndoEntry{
		UndoID:      newUndoID(),
		Kind:        kind,
		Description: describe(kind, committed),
		CreatedAt:   c.scheduler.Now(),
		Intents:     committed,
	}
	c.registry.Register(entry)
	return entry.UndoID
}

func (c *Coordinator) indexUpdate(ctx context.Context, item domain.Item) {
	if err := c.index.Update(ctx, item); err != nil {
		c.logger.Warn("search index update failed", "id", item.ID, "error", err)
	}
}

func (c *Coordinator) indexAdd(ctx context.Context, item domain.Item) {
	if err := c.index.Add(ctx, item); err != nil {
		c.logger.Warn("search index add failed", "id", item.ID, "error", err)
	}
}

func (c *Coordinator) indexRemove(ctx context.Context, id string) {
	if err := c.index.Remove(ctx, id); err != nil {
		c.logger.Warn("search index remove failed", "id", id, "error", err)
	}
}

func newUndoID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func describe(kind domain.MutationKind, intents []domain.Intent) string {
	if len(intents) == 1 {
		return fmt.Sprintf("%s %s", verb(kind), intents[0].Snapshot.Filename)
	}
	return fmt.Sprintf("%s %d items", verb(kind), len(intents))
}

func verb(kind domain.MutationKind) string {
	switch kind {
	case domain.KindRename:
		return "Rename"
	case domain.KindMove:
		return "Move"
	case domain.KindDelete:
		return "Delete"
	default:
		return string(kind)
	}
}

func notFoundResult(id string) domain.ItemResult {
	return domain.ItemResult{PerItemResult: domain.PerItemResult{
		ID:    id,
		Error: fmt.Sprintf("item %s: %v", id, application.ErrNotFound),
		Code:  domain.CodeNotFound,
	}}
}

func canceledResult(id string, err error) domain.ItemResult {
	return domain.ItemResult{PerItemResult: domain.PerItemResult{
		ID:    id,
		Error: err.Error(),
		Code:  domain.CodeException,
	}}
}

func canceledBatch(ids []string, err error) domain.BatchResult {
	results := make([]domain.PerItemResult, len(ids))
	for i, id := range ids {
		results[i] = canceledResult(id, err).PerItemResult
	}
	return domain.NewBatchResult(results)
}
