package ports

import (
	"context"

	"videovault/internal/domain"
)

// Catalog persists the library between runs
type Catalog interface {
	Load(ctx context.Context) ([]domain.Item, error)
	Put(ctx context.Context, items []domain.Item) error
	Delete(ctx context.Context, ids []string) error
	Close() error
}
