// Package sqlite implements the ProvisionJournal port on an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a single-writer SQLite connection with WAL mode enabled. A
// provisioning run writes a handful of rows, so one connection serves both
// reads and writes; busy_timeout lets concurrent operators sharing a journal
// file wait for each other instead of failing with "database is locked".
type DB struct {
	Conn *sql.DB
	path string
}

// NewDB opens the journal database at dbPath with WAL mode, busy timeout, and
// synchronous NORMAL.
func NewDB(ctx context.Context, dbPath string) (*DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		dbPath,
	)
	return open(ctx, dsn, dbPath)
}

func open(ctx context.Context, dsn, path string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}

	return &DB{Conn: conn, path: path}, nil
}

// Path returns the file the database was opened from.
func (db *DB) Path() string {
	return db.path
}

// Close closes the connection.
func (db *DB) Close() error {
	if err := db.Conn.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return nil
}
