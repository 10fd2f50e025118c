// Package storage provides SQLite persistence for the threat log service.
package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite database connection.
type DB struct {
	*sql.DB
	mu sync.RWMutex
}

var (
	instance *DB
	once     sync.Once
)

// GetDB returns the singleton database instance.
func GetDB() *DB {
	return instance
}

// Initialize creates and initializes the database.
func Initialize(dataDir string) (*DB, error) {
	var initErr error
	once.Do(func() {
		dbPath := filepath.Join(dataDir, "phishguard.db")
		db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_busy_timeout=5000")
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			return
		}

		// SQLite only supports one writer
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		instance = &DB{DB: db}

		if err := instance.createTables(); err != nil {
			initErr = fmt.Errorf("failed to create tables: %w", err)
			return
		}
	})

	return instance, initErr
}

// InitializeAt opens a database at an explicit path, bypassing the
// singleton. Used by tests.
func InitializeAt(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{DB: db}
	if err := d.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return d, nil
}

func (db *DB) createTables() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS threat_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id TEXT NOT NULL UNIQUE,
			timestamp DATETIME NOT NULL,
			scan_type TEXT NOT NULL,
			target_payload TEXT NOT NULL,
			prediction TEXT NOT NULL,
			confidence TEXT NOT NULL,
			details TEXT,
			hash TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_threat_logs_scan_id ON threat_logs(scan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_threat_logs_timestamp ON threat_logs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_threat_logs_scan_type ON threat_logs(scan_type)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return fmt.Errorf("failed to execute: %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

// WithLock executes a function with write lock.
func (db *DB) WithLock(fn func() error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn()
}
