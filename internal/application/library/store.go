// Package library holds the in-memory state of the scanned video library.
package library

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tidwall/btree"

	"videovault/internal/domain"
	"videovault/internal/ports"
)

// Store is the single-writer, copy-on-write collection of library items.
// Every write copies the tree, edits the copy and swaps it in, so a reader
// holding a snapshot never observes a partial update.
type Store struct {
	mu    sync.RWMutex
	items *btree.Map[string, domain.Item]

	catalog ports.Catalog
	logger  *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithCatalog persists every change to c
func WithCatalog(c ports.Catalog) Option {
	return func(s *Store) { s.catalog = c }
}

// WithLogger sets the logger used for persistence failures
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		items:  btree.NewMap[string, domain.Item](0),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates the store from its catalog. It is a no-op without one.
func (s *Store) Load(ctx context.Context) error {
	if s.catalog == nil {
		return nil
	}
	items, err := s.catalog.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := btree.NewMap[string, domain.Item](0)
	for _, item := range items {
		next.Set(item.ID, item.Clone())
	}
	s.items = next
	s.logger.Debug("library loaded from catalog", "items", len(items))
	return nil
}

// replace runs edit on a copy of the collection, swaps the copy in and
// persists the diff edit reports
func (s *Store) replace(ctx context.Context, edit func(next *btree.Map[string, domain.Item]) (put []domain.Item, deleted []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.items.Copy()
	put, deleted := edit(next)
	s.items = next

	s.persist(ctx, put, deleted)
}

func (s *Store) persist(ctx context.Context, put []domain.Item, deleted []string) {
	if s.catalog == nil {
		return
	}
	if len(put) > 0 {
		if err := s.catalog.Put(ctx, put); err != nil {
			s.logger.Warn("failed to persist items", "count", len(put), "error", err)
		}
	}
	if len(deleted) > 0 {
		if err := s.catalog.Delete(ctx, deleted); err != nil {
			s.logger.Warn("failed to delete persisted items", "count", len(deleted), "error", err)
		}
	}
}

// ApplyFields sets the mutable fields of every listed item in one replace.
// Unknown ids are skipped. The updated items are returned.
func (s *Store) ApplyFields(ctx context.Context, changes map[string]domain.Fields) []domain.Item {
	var updated []domain.Item
	s.replace(ctx, func(next *btree.Map[string, domain.Item]) ([]domain.Item, []string) {
		for id, f := range changes {
			item, ok := next.Get(id)
			if !ok {
				continue
			}
			item = item.WithFields(f)
			next.Set(id, item)
			updated = append(updated, item.Clone())
		}
		return updated, nil
	})
	return updated
}

// Remove drops the listed items and returns the removed records
func (s *Store) Remove(ctx context.Context, ids []string) []domain.Item {
	var removed []domain.Item
	var removedIDs []string
	s.replace(ctx, func(next *btree.Map[string, domain.Item]) ([]domain.Item, []string) {
		for _, id := range ids {
			item, ok := next.Delete(id)
			if !ok {
				continue
			}
			removed = append(removed, item.Clone())
			removedIDs = append(removedIDs, id)
		}
		return nil, removedIDs
	})
	return removed
}

// Insert adds items whose id is not already present and returns those added
func (s *Store) Insert(ctx context.Context, items []domain.Item) []domain.Item {
	var inserted []domain.Item
	s.replace(ctx, func(next *btree.Map[string, domain.Item]) ([]domain.Item, []string) {
		for _, item := range items {
			if _, ok := next.Get(item.ID); ok {
				continue
			}
			next.Set(item.ID, item.Clone())
			inserted = append(inserted, item.Clone())
		}
		return inserted, nil
	})
	return inserted
}

// Upsert adds or replaces items and returns how many were new
func (s *Store) Upsert(ctx context.Context, items []domain.Item) int {
	added := 0
	s.replace(ctx, func(next *btree.Map[string, domain.Item]) ([]domain.Item, []string) {
		put := make([]domain.Item, 0, len(items))
		for _, item := range items {
			if _, replaced := next.Set(item.ID, item.Clone()); !replaced {
				added++
			}
			put = append(put, item.Clone())
		}
		return put, nil
	})
	return added
}

// Get returns a copy of the item with the given id
func (s *Store) Get(id string) (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items.Get(id)
	if !ok {
		return domain.Item{}, false
	}
	return item.Clone(), true
}

// List returns copies of all items ordered by id
func (s *Store) List() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Item, 0, s.items.Len())
	s.items.Scan(func(_ string, item domain.Item) bool {
		items = append(items, item.Clone())
		return true
	})
	return items
}

// Len returns the number of items
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Len()
}

// FindByPath returns the item stored at path under rootKey
func (s *Store) FindByPath(rootKey, path string) (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found domain.Item
	ok := false
	s.items.Scan(func(_ string, item domain.Item) bool {
		if item.RootKey == rootKey && item.Path() == path {
			found = item.Clone()
			ok = true
			return false
		}
		return true
	})
	return found, ok
}
