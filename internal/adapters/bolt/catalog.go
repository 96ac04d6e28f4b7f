// Package bolt persists the library catalog in a BoltDB file.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"videovault/internal/domain"
	"videovault/internal/ports"
)

// Bucket names
var (
	bucketItems = []byte("items")
	bucketMeta  = []byte("meta")
)

var keyScannedAt = []byte("scanned_at")

// Catalog implements ports.Catalog using BoltDB
type Catalog struct {
	db *bolt.DB
}

var _ ports.Catalog = (*Catalog)(nil)

// Open opens or creates the catalog file at path
func Open(path string) (*Catalog, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketItems, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{db: db}, nil
}

// Close closes the database
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Load returns every stored item in id order
func (c *Catalog) Load(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketItems).ForEach(func(k, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var item domain.Item
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("decode item %s: %w", k, err)
			}
			items = append(items, item)
			return nil
		})
	})
	return items, err
}

// Put stores items in a single transaction
func (c *Catalog) Put(ctx context.Context, items []domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketItems)
		for _, item := range items {
			data, err := json.Marshal(item)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(item.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the listed ids. Missing ids are ignored.
func (c *Catalog) Delete(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketItems)
		for _, id := range ids {
			if err := b.Delete([]byte(id)); err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkScanned records the time of the last completed scan
func (c *Catalog) MarkScanned(t time.Time) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		data, err := t.MarshalText()
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keyScannedAt, data)
	})
}

// ScannedAt returns the time of the last completed scan, or zero if none
func (c *Catalog) ScannedAt() time.Time {
	var t time.Time
	c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketMeta).Get(keyScannedAt); v != nil {
			t.UnmarshalText(v)
		}
		return nil
	})
	return t
}
