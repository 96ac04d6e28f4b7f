package sqlite

import (
	"context"
	"database/sql"

	"videovault/internal/domain"
)

// execer is satisfied by *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// withTx runs fn in a transaction, committing on success
func (idx *Index) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// upsertVideo inserts or updates a video row
func upsertVideo(ctx context.Context, q execer, item domain.Item) error {
	_, err := q.ExecContext(ctx, `
		INSERT OR REPLACE INTO videos (id, name, filename, path, root_key, size, mtime)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.DisplayName, item.Filename, item.Path(), item.RootKey, item.Size, item.ModTime.Unix())
	return err
}
