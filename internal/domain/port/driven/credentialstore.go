package driven

import (
	"context"

	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
)

// CredentialStore defines the driven port for the locally persisted API key.
// The adapter owns serialization; the workflow decides when to write.
type CredentialStore interface {
	// Exists reports whether location holds a well-formed record whose name
	// equals expectedName. Unreadable, malformed, or unrelated content is
	// reported as false, never as an error.
	Exists(ctx context.Context, expectedName, location string) bool

	// Persist writes record to location, replacing any existing content.
	// The write is all-or-nothing. Errors are of kind KindPersistence.
	Persist(ctx context.Context, record model.CredentialRecord, location string) error
}
