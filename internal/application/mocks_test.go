package application_test

import (
	"context"
	"errors"

	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
)

// --- Mock implementations ---

// mockOrgService is a scriptable OrgService that counts calls.
type mockOrgService struct {
	create   func(name string) (model.CreateOrgResponse, error)
	list     func() ([]model.Organization, error)
	switchTo func(orgID int64) (string, error)
	issue    func(req model.KeyRequest) (model.IssueKeyResponse, error)

	createCalls int
	listCalls   int
	switchCalls []int64
	issueCalls  []model.KeyRequest
}

func (m *mockOrgService) CreateOrganization(_ context.Context, name string) (model.CreateOrgResponse, error) {
	m.createCalls++
	if m.create == nil {
		return model.CreateOrgResponse{}, errors.New("unexpected create call")
	}
	return m.create(name)
}

func (m *mockOrgService) ListOrganizations(_ context.Context) ([]model.Organization, error) {
	m.listCalls++
	if m.list == nil {
		return nil, errors.New("unexpected list call")
	}
	return m.list()
}

func (m *mockOrgService) SwitchOrganization(_ context.Context, orgID int64) (string, error) {
	m.switchCalls = append(m.switchCalls, orgID)
	if m.switchTo == nil {
		return "Active organization changed", nil
	}
	return m.switchTo(orgID)
}

func (m *mockOrgService) IssueKey(_ context.Context, req model.KeyRequest) (model.IssueKeyResponse, error) {
	m.issueCalls = append(m.issueCalls, req)
	if m.issue == nil {
		return model.IssueKeyResponse{}, errors.New("unexpected issue call")
	}
	return m.issue(req)
}

func (m *mockOrgService) totalCalls() int {
	return m.createCalls + m.listCalls + len(m.switchCalls) + len(m.issueCalls)
}

// freshRemote returns a mock that behaves like a service with no
// organizations: create succeeds with id 1 and the key is issued with id 1.
func freshRemote() *mockOrgService {
	return &mockOrgService{
		create: func(string) (model.CreateOrgResponse, error) {
			id := int64(1)
			return model.CreateOrgResponse{Message: "Organization created", OrgID: &id}, nil
		},
		issue: func(req model.KeyRequest) (model.IssueKeyResponse, error) {
			return model.IssueKeyResponse{ID: 1, Key: "s3cr3t", Name: req.Name}, nil
		},
	}
}

func int64Ptr(v int64) *int64 { return &v }

// mockStore is an in-memory CredentialStore keyed by location.
type mockStore struct {
	records     map[string]model.CredentialRecord
	persistErr  error
	loseWrites  bool
	existsCalls int
}

func newMockStore() *mockStore {
	return &mockStore{records: map[string]model.CredentialRecord{}}
}

func (m *mockStore) Exists(_ context.Context, expectedName, location string) bool {
	m.existsCalls++
	rec, ok := m.records[location]
	return ok && rec.Name == expectedName
}

func (m *mockStore) Persist(_ context.Context, record model.CredentialRecord, location string) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	if !m.loseWrites {
		m.records[location] = record
	}
	return nil
}

// mockJournal collects entries in memory.
type mockJournal struct {
	entries []model.JournalEntry
	err     error
}

func (m *mockJournal) Record(_ context.Context, entry model.JournalEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockJournal) ListByRun(_ context.Context, runID string) ([]model.JournalEntry, error) {
	var out []model.JournalEntry
	for _, e := range m.entries {
		if e.RunID == runID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockJournal) ListOrphaned(context.Context) ([]model.JournalEntry, error) {
	return nil, nil
}

func (m *mockJournal) outcomes() []model.JournalOutcome {
	out := make([]model.JournalOutcome, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Outcome)
	}
	return out
}
