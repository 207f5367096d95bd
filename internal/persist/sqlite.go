package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const (
	createKVTableSQL = `
  CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
  )`

	getValueSQL = `SELECT value FROM kv WHERE key = ?`
	putValueSQL = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
)

// SQLite keeps keys in a single table of a local sqlite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and migrates) the database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(createKVTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (k *SQLite) Get(key string) ([]byte, error) {
	var value []byte
	err := k.db.QueryRow(getValueSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (k *SQLite) Put(key string, value []byte) error {
	if _, err := k.db.Exec(putValueSQL, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (k *SQLite) Close() error {
	return k.db.Close()
}
