package sqlite

import (
	"context"
	"database/sql"
	"time"

	"videovault/internal/domain"
)

// Rebuild replaces the index content with items in one transaction
func (idx *Index) Rebuild(ctx context.Context, items []domain.Item) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{FilesScanned: len(items)}

	existing, err := idx.ids(ctx)
	if err != nil {
		return nil, err
	}

	err = idx.withTx(ctx, func(tx *sql.Tx) error {
		seen := make(map[string]bool, len(items))
		for _, item := range items {
			if err := upsertVideo(ctx, tx, item); err != nil {
				return err
			}
			seen[item.ID] = true
			if existing[item.ID] {
				stats.ItemsUpdated++
			} else {
				stats.ItemsAdded++
			}
		}

		// Remove rows of videos no longer in the library
		for id := range existing {
			if seen[id] {
				continue
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id); err != nil {
				return err
			}
			stats.ItemsRemoved++
		}

		return idx.updateMeta(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// ids returns the set of indexed ids
func (idx *Index) ids(ctx context.Context) (map[string]bool, error) {
	rows, err := idx.db.QueryContext(ctx, `SELECT id FROM videos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// Count returns the number of indexed videos
func (idx *Index) Count(ctx context.Context) (int, error) {
	var n int
	err := idx.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&n)
	return n, err
}
