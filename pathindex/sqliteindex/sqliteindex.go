// Package sqliteindex provides an embedded-SQLite backend for
// pathindex.Index.
//
// The filesystem layout maps onto a single table keyed by (kind, path,
// name); the slash-joined segment path replaces the directory chain.
// Useful where one database file beats a sprawling directory tree, e.g.
// when the store lives on network storage with slow metadata operations.
package sqliteindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/embergo/pathindex"
)

// DriverName is the registered database/sql driver.
const DriverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	kind TEXT NOT NULL,
	path TEXT NOT NULL,
	name TEXT NOT NULL,
	data BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (kind, path, name)
);
CREATE INDEX IF NOT EXISTS idx_artifacts_kind_path ON artifacts(kind, path);
`

// Index implements pathindex.Index on an embedded SQLite database.
type Index struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath and bootstraps the schema.
func Open(dbPath string) (*Index, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqliteindex: open %s: %w", dbPath, err)
	}

	// WAL mode for concurrent readers; single writer connection.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqliteindex: enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqliteindex: set busy timeout: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqliteindex: apply schema: %w", err)
	}
	return &Index{db: db}, nil
}

func joinSegments(segments []string) string {
	return strings.Join(segments, "/")
}

// Write stores data at key, replacing existing content. The upsert is a
// single statement, so per-key atomicity comes from SQLite itself.
func (i *Index) Write(ctx context.Context, key pathindex.Key, data []byte) error {
	if err := key.Validate(); err != nil {
		return err
	}

	_, err := i.db.ExecContext(ctx, `
		INSERT INTO artifacts (kind, path, name, data, created_at)
		VALUES (?, ?, ?, ?, unixepoch())
		ON CONFLICT (kind, path, name) DO UPDATE SET data = excluded.data
	`, string(key.Kind), joinSegments(key.Segments), key.Name, data)
	if err != nil {
		return fmt.Errorf("sqliteindex: write %s: %w", key, err)
	}
	return nil
}

// Read returns the content at key, or pathindex.ErrNotFound.
func (i *Index) Read(ctx context.Context, key pathindex.Key) ([]byte, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var data []byte
	err := i.db.QueryRowContext(ctx, `
		SELECT data FROM artifacts WHERE kind = ? AND path = ? AND name = ?
	`, string(key.Kind), joinSegments(key.Segments), key.Name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", pathindex.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("sqliteindex: read %s: %w", key, err)
	}
	return data, nil
}

// List enumerates entries under (kind, prefix) with the conjunctive tag
// filter applied to segments beyond the prefix.
func (i *Index) List(ctx context.Context, kind pathindex.Kind, prefix []string, tags []string) ([]pathindex.Key, error) {
	prefixPath := joinSegments(prefix)

	rows, err := i.db.QueryContext(ctx, `
		SELECT path, name FROM artifacts
		WHERE kind = ? AND (path = ? OR path LIKE ? ESCAPE '\')
	`, string(kind), prefixPath, likePrefix(prefixPath))
	if err != nil {
		return nil, fmt.Errorf("sqliteindex: list %s/%s: %w", kind, prefixPath, err)
	}
	defer rows.Close()

	var keys []pathindex.Key
	for rows.Next() {
		var path, name string
		if err := rows.Scan(&path, &name); err != nil {
			return nil, fmt.Errorf("sqliteindex: scan: %w", err)
		}

		var segments []string
		if path != "" {
			segments = strings.Split(path, "/")
		}
		below := append(append([]string(nil), segments[len(prefix):]...), name)
		if !matchTags(below, tags) {
			continue
		}
		keys = append(keys, pathindex.Key{Kind: kind, Segments: segments, Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqliteindex: list %s/%s: %w", kind, prefixPath, err)
	}

	sort.Slice(keys, func(a, b int) bool { return keys[a].String() < keys[b].String() })
	return keys, nil
}

// Delete removes the entry at key.
func (i *Index) Delete(ctx context.Context, key pathindex.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}

	res, err := i.db.ExecContext(ctx, `
		DELETE FROM artifacts WHERE kind = ? AND path = ? AND name = ?
	`, string(key.Kind), joinSegments(key.Segments), key.Name)
	if err != nil {
		return fmt.Errorf("sqliteindex: delete %s: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", pathindex.ErrNotFound, key)
	}
	return nil
}

// Close closes the database.
func (i *Index) Close() error { return i.db.Close() }

// likePrefix builds a LIKE pattern matching strictly deeper paths,
// escaping LIKE metacharacters in the prefix.
func likePrefix(prefix string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	if escaped == "" {
		return "%"
	}
	return escaped + "/%"
}

func matchTags(segments, tags []string) bool {
	for _, tag := range tags {
		found := false
		for _, seg := range segments {
			if seg == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
