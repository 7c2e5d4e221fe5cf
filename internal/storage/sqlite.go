// Package storage implements the SQLite run ledger. Each pipeline invocation
// appends one run with its trial results and final selection; no run ever
// reads a previous run's rows to produce its output.
package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/Veraticus/scorecard/internal/config"
)

// SQLiteLedger records runs and their trial results in a SQLite database.
type SQLiteLedger struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteLedger opens (creating if necessary) the ledger at dbPath.
func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("ledger path must not be empty")
	}
	if err := config.EnsureParentDir(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filepath.Clean(dbPath)+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteLedger{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteLedger) Close() error {
	return s.db.Close()
}
