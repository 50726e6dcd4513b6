package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending journal migrations embedded in the binary.
// Already-applied migrations are skipped, so it runs on every open.
func RunMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// OpenJournal opens the database at path, migrates it, and returns a
// JournalRepo over it together with the DB so the caller can close it.
func OpenJournal(ctx context.Context, path string) (*JournalRepo, *DB, error) {
	db, err := NewDB(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if err := RunMigrations(db.Conn); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return NewJournalRepo(db), db, nil
}
