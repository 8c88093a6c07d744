package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps one row per sanitized key in a local sqlite database.
// Same envelope and read/write-only contract as FileStore; last write wins.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the cache database at dbPath.
// Use ":memory:" for tests.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}
	createSQL := `CREATE TABLE IF NOT EXISTS cache_entries (
		addr TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`
	if _, err := db.Exec(createSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Read(addr string) ([]byte, error) {
	var data string
	row := s.db.QueryRow(`SELECT data FROM cache_entries WHERE addr = ?`, addr)
	if err := row.Scan(&data); err != nil {
		return nil, fmt.Errorf("failed to read cache row: %w", err)
	}
	return []byte(data), nil
}

func (s *SQLiteStore) Write(addr string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO cache_entries (addr, data) VALUES (?, ?)
		 ON CONFLICT(addr) DO UPDATE SET data = excluded.data`,
		addr, string(data))
	if err != nil {
		return fmt.Errorf("failed to write cache row: %w", err)
	}
	return nil
}
