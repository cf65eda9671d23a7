// Package store provides the SQLite-backed reference-data store for the
// endowment simulation: funds, benchmarks, asset classes, monthly return
// and inflation series, contributions, target allocations, and the
// spending policy.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrStoreNotFound is returned by OpenExisting when the database file
// does not exist. Read-only consumers must not create one as a side effect.
var ErrStoreNotFound = errors.New("store file does not exist")

// metaVersionKey is the schema_meta key holding the schema version.
const metaVersionKey = "schema_version"

// dsnParams enables WAL and, critically, foreign-key enforcement for the
// lifetime of the connection. Referential violations fail loudly.
const dsnParams = "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)"

// Store wraps a single SQLite database connection.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the store at the given path and ensures the
// schema exists. The parent directory is created if needed.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.EnsureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// OpenExisting opens a store that must already exist on disk. It does not
// create the file and does not touch the schema, so it is safe for
// read-only operations like the summary report.
func OpenExisting(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, path)
		}
		return nil, fmt.Errorf("stat store: %w", err)
	}

	db, err := sql.Open("sqlite", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the file path the store was opened at.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema creates all tables if absent and stamps the schema version.
// Idempotent; safe to call on every open. Any DDL failure is fatal to the
// caller, which should not operate on a partial schema.
func (s *Store) EnsureSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO schema_meta (key, value) VALUES (?, ?)`,
		metaVersionKey, SchemaVersion)
	if err != nil {
		return fmt.Errorf("writing schema version: %w", err)
	}
	return nil
}

// Version returns the stored schema version, or ok=false when the meta
// row (or the table itself) is absent.
func (s *Store) Version() (string, bool) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM schema_meta WHERE key = ?`, metaVersionKey).Scan(&v)
	if err != nil {
		return "", false
	}
	return v, true
}

// TableCount returns the row count of a table, or 0 when the table is
// missing (pre-schema stores).
func (s *Store) TableCount(table string) (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return 0, nil
		}
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}
