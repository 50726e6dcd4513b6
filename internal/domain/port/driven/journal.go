package driven

import (
	"context"

	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
)

// ProvisionJournal records issued keys and their local fate so that orphaned
// remote keys can be traced after a failed run.
type ProvisionJournal interface {
	// Record appends entry to the journal.
	Record(ctx context.Context, entry model.JournalEntry) error

	// ListByRun returns the entries of a single run, oldest first.
	ListByRun(ctx context.Context, runID string) ([]model.JournalEntry, error)

	// ListOrphaned returns issued entries whose run never recorded a
	// successful persist.
	ListOrphaned(ctx context.Context) ([]model.JournalEntry, error)
}
