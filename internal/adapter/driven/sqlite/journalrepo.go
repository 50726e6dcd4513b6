package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
	"github.com/ericfisherdev/keyprovisioner/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProvisionJournal = (*JournalRepo)(nil)

// JournalRepo is the SQLite implementation of the ProvisionJournal port.
type JournalRepo struct {
	db *DB
}

// NewJournalRepo creates a new JournalRepo.
func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

const journalColumns = `id, run_id, organization, org_id, key_id, key_name, location, outcome, message, created_at`

// Record appends entry. ID and CreatedAt are assigned by the database.
func (r *JournalRepo) Record(ctx context.Context, entry model.JournalEntry) error {
	const query = `INSERT INTO provision_journal
		(run_id, organization, org_id, key_id, key_name, location, outcome, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Conn.ExecContext(ctx, query,
		entry.RunID,
		entry.Organization,
		entry.OrgID,
		entry.KeyID,
		entry.KeyName,
		entry.Location,
		string(entry.Outcome),
		entry.Message,
	)
	if err != nil {
		return fmt.Errorf("record journal entry for run %s: %w", entry.RunID, err)
	}
	return nil
}

// ListByRun returns the entries of runID in insertion order.
func (r *JournalRepo) ListByRun(ctx context.Context, runID string) ([]model.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM provision_journal WHERE run_id = ? ORDER BY id`

	rows, err := r.db.Conn.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list journal for run %s: %w", runID, err)
	}
	return scanEntries(rows)
}

// ListOrphaned returns issued entries whose run has no persisted entry. Each
// one names a key that exists remotely without a local copy.
func (r *JournalRepo) ListOrphaned(ctx context.Context) ([]model.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM provision_journal j
		WHERE j.outcome = 'issued'
		AND NOT EXISTS (
			SELECT 1 FROM provision_journal p
			WHERE p.run_id = j.run_id AND p.outcome = 'persisted'
		)
		ORDER BY j.id`

	rows, err := r.db.Conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orphaned keys: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]model.JournalEntry, error) {
	defer rows.Close()

	entries := []model.JournalEntry{}
	for rows.Next() {
		var e model.JournalEntry
		var outcome, createdAt string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Organization, &e.OrgID, &e.KeyID,
			&e.KeyName, &e.Location, &outcome, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Outcome = model.JournalOutcome(outcome)

		var err error
		e.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for journal entry %d: %w", e.ID, err)
		}

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}

	return entries, nil
}

// parseTime parses the timestamp formats SQLite may produce.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
