package ports

import (
	"context"

	"videovault/internal/domain"
)

// SearchIndex is kept in sync with the library by the mutation layer.
// Callers treat it as fire-and-forget: errors are logged, never propagated.
type SearchIndex interface {
	Add(ctx context.Context, item domain.Item) error
	Update(ctx context.Context, item domain.Item) error
	Remove(ctx context.Context, id string) error
}

// SearchQuerier answers queries against the index
type SearchQuerier interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchHit, error)

	// Rebuild replaces the whole index content with items
	Rebuild(ctx context.Context, items []domain.Item) (*domain.SyncStats, error)
}

// Index is a full index backend
type Index interface {
	SearchIndex
	SearchQuerier
	Close() error
}

// NopIndex ignores every update and never matches
type NopIndex struct{}

func (NopIndex) Add(context.Context, domain.Item) error    { return nil }
func (NopIndex) Update(context.Context, domain.Item) error { return nil }
func (NopIndex) Remove(context.Context, string) error      { return nil }
