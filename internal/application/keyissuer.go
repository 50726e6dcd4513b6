package application

import (
	"context"

	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
	"github.com/ericfisherdev/keyprovisioner/internal/domain/port/driven"
)

// KeyIssuer requests new API keys. A successful call creates a key remotely
// that this workflow cannot revoke or read back.
type KeyIssuer struct {
	orgs driven.OrgService
}

// NewKeyIssuer creates a KeyIssuer.
func NewKeyIssuer(orgs driven.OrgService) *KeyIssuer {
	return &KeyIssuer{orgs: orgs}
}

// Issue requests a key called name with role. orgID scopes the key
// explicitly; zero relies on the active organization.
func (i *KeyIssuer) Issue(ctx context.Context, name, role string, orgID int64) (model.CredentialRecord, error) {
	const op = "issue key"

	resp, err := i.orgs.IssueKey(ctx, model.KeyRequest{Name: name, Role: role, OrgID: orgID})
	if err != nil {
		return model.CredentialRecord{}, err
	}

	if resp.Message != "" {
		return model.CredentialRecord{}, model.NewError(model.KindIssueRejected, op, resp.Message)
	}
	if resp.Key == "" {
		return model.CredentialRecord{}, model.NewError(model.KindIssueMalformed, op, "response carries neither key nor message")
	}

	rec := model.CredentialRecord{ID: resp.ID, Key: resp.Key, Name: resp.Name}
	if rec.Name == "" {
		rec.Name = name
	}
	return rec, nil
}
