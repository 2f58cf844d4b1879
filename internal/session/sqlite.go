package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// profileKey is the single row key holding the serialized thread
// mapping. There is no versioning: a foreign value at this key is
// discarded on load.
const profileKey = "spinbot_threads"

// SQLiteStore persists the thread mapping in a local SQLite database,
// standing in for the browser profile storage of the original client.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the profile database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS profile (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Load reads the stored thread mapping. An absent row or a value that
// does not parse as a thread mapping yields an empty mapping.
func (s *SQLiteStore) Load() (Threads, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM profile WHERE key = ?`, profileKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return make(Threads), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var threads Threads
	if err := json.Unmarshal([]byte(value), &threads); err != nil || threads == nil {
		slog.Warn("Stored profile did not parse, starting empty")
		return make(Threads), nil
	}
	return threads, nil
}

// Save writes the thread mapping, replacing any previous value.
func (s *SQLiteStore) Save(t Threads) error {
	data, err := encodeThreads(t)
	if err != nil {
		return fmt.Errorf("encode threads: %w", err)
	}

	query := `
	INSERT INTO profile (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.Exec(query, profileKey, string(data), time.Now().Unix()); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
