package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"videovault/internal/domain"
	"videovault/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "2"

// Index implements ports.Index using SQLite
type Index struct {
	db         *sql.DB
	libraryKey string
	dbPath     string
}

// Ensure Index implements Index
var _ ports.Index = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index. An empty dbPath stores the database under the
// XDG data directory, named after libraryKey.
func (idx *Index) Open(dbPath, libraryKey string) error {
	if dbPath == "" {
		dbPath = databasePath(libraryKey)
	}
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	idx.libraryKey = libraryKey
	idx.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS videos (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			filename TEXT NOT NULL,
			path TEXT NOT NULL,
			root_key TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			mtime INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_videos_name ON videos(name COLLATE NOCASE);
		CREATE INDEX IF NOT EXISTS idx_videos_path ON videos(root_key, path);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsFullRebuild returns true if the index was built by another schema or library
func (idx *Index) NeedsFullRebuild() bool {
	var version, libraryHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'library_hash'").Scan(&libraryHash)

	return version != schemaVersion || libraryHash != hashLibraryKey(idx.libraryKey)
}

// databasePath returns the path for the SQLite database
func databasePath(libraryKey string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "videovault", hashLibraryKey(libraryKey)+".db")
}

// hashLibraryKey returns a short hash identifying the library
func hashLibraryKey(libraryKey string) string {
	h := sha256.Sum256([]byte(libraryKey))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta updates the schema version and library hash
func (idx *Index) updateMeta(ctx context.Context, q execer) error {
	_, err := q.ExecContext(ctx, `
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('library_hash', ?);
	`, schemaVersion, hashLibraryKey(idx.libraryKey))
	return err
}

// Add inserts an item, replacing any previous row with the same id
func (idx *Index) Add(ctx context.Context, item domain.Item) error {
	return upsertVideo(ctx, idx.db, item)
}

// Update rewrites the row of an item
func (idx *Index) Update(ctx context.Context, item domain.Item) error {
	return upsertVideo(ctx, idx.db, item)
}

// Remove deletes the row of an item
func (idx *Index) Remove(ctx context.Context, id string) error {
	_, err := idx.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	return err
}

// Search returns videos whose name or path contains every word of query
func (idx *Index) Search(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	var where []string
	var args []any
	for _, w := range words {
		pattern := "%" + escapeLike(w) + "%"
		where = append(where, `(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(path) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	args = append(args, limit)

	rows, err := idx.db.QueryContext(ctx, `
		SELECT id, name, path
		FROM videos
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY name COLLATE NOCASE
		LIMIT ?
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []domain.SearchHit
	for rows.Next() {
		var h domain.SearchHit
		if err := rows.Scan(&h.ID, &h.Name, &h.Path); err != nil {
			return nil, err
		}
		h.Score = score(h.Name, words)
		hits = append(hits, h)
	}

	return hits, rows.Err()
}

// score is the share of query words found in the name rather than only the path
func score(name string, words []string) float64 {
	lower := strings.ToLower(name)
	inName := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			inName++
		}
	}
	return float64(inName) / float64(len(words))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
