// Package filestore implements the CredentialStore port as a JSON file on the
// local file system.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
	"github.com/ericfisherdev/keyprovisioner/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*Store)(nil)

// Store reads and writes a single CredentialRecord per file path.
type Store struct {
	logger *slog.Logger
}

// New creates a Store. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger}
}

// storedShape is the minimum structure a file must have to count as a
// provisioned record. Pointer fields distinguish "missing" from "empty".
type storedShape struct {
	Key  *string `json:"key"`
	Name *string `json:"name"`
}

// Exists reports whether location holds a record named expectedName.
func (s *Store) Exists(_ context.Context, expectedName, location string) bool {
	if location == "" {
		return false
	}

	data, err := os.ReadFile(location)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("credential store unreadable", "path", location, "error", err)
		}
		return false
	}

	var shape storedShape
	if err := json.Unmarshal(data, &shape); err != nil {
		s.logger.Debug("credential store is not a record", "path", location, "error", err)
		return false
	}
	if shape.Key == nil || shape.Name == nil {
		s.logger.Debug("credential store missing key or name", "path", location)
		return false
	}

	return *shape.Name == expectedName
}

// Persist writes record as indented JSON to location. The content goes to a
// temporary file in the same directory which then replaces location, so a
// reader never observes a partial record.
func (s *Store) Persist(_ context.Context, record model.CredentialRecord, location string) error {
	const op = "persist credential"

	if location == "" {
		return model.NewError(model.KindPersistence, op, "store location is empty")
	}

	data, err := Encode(record)
	if err != nil {
		return model.WrapError(model.KindPersistence, op, err)
	}

	if err := atomic.WriteFile(location, bytes.NewReader(data)); err != nil {
		return model.WrapError(model.KindPersistence, op, err)
	}

	s.logger.Info("credential persisted", "path", location, "name", record.Name)
	return nil
}

// Encode returns the on-disk form of record: keys in lexical order, four-space
// indent, trailing newline.
func Encode(record model.CredentialRecord) ([]byte, error) {
	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
