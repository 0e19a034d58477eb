package cache

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// SQLite is the default cache driver: a single-file store that survives
// restarts but not an explicit wipe of the data directory.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("cache path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "create cache directory")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open cache db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping cache db")
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ensure cache schema")
	}

	return &SQLite{db: db}, nil
}

func (c *SQLite) Get(key string) ([]byte, bool) {
	var value []byte
	err := c.db.QueryRow(`SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (c *SQLite) Set(key string, value []byte) error {
	_, err := c.db.Exec(`
		INSERT INTO entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UnixMilli())
	return errors.Wrapf(err, "cache set %s", key)
}

func (c *SQLite) Close() error {
	return c.db.Close()
}

var _ Cache = (*SQLite)(nil)
