// Package application contains the provisioning use cases.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
	"github.com/ericfisherdev/keyprovisioner/internal/domain/port/driven"
)

// Messages returned by the remote service that drive control flow.
const (
	msgOrgCreated         = "Organization created"
	msgOrgNameTaken       = "Organization name taken"
	msgInvalidCredentials = "invalid username or password"
	msgOrgSwitched        = "Active organization changed"
)

// OrganizationResolver returns the id of an organization, creating it first
// if needed. The remote service has no get-or-create, so creation is
// attempted and a name collision falls back to a lookup. Concurrent callers
// racing on the same name converge on the winner's id.
type OrganizationResolver struct {
	orgs   driven.OrgService
	logger *slog.Logger
}

// NewOrganizationResolver creates an OrganizationResolver.
func NewOrganizationResolver(orgs driven.OrgService, logger *slog.Logger) *OrganizationResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrganizationResolver{orgs: orgs, logger: logger}
}

// ResolveOrCreate returns the id of the organization called name.
func (r *OrganizationResolver) ResolveOrCreate(ctx context.Context, name string) (int64, error) {
	const op = "create organization"

	resp, err := r.orgs.CreateOrganization(ctx, name)
	if err != nil {
		return 0, err
	}

	switch resp.Message {
	case msgOrgCreated:
		if resp.OrgID == nil {
			return 0, model.NewError(model.KindUnexpectedResponse, op, "created response carries no orgId")
		}
		r.logger.Info("organization created", "org", name, "org_id", *resp.OrgID)
		return *resp.OrgID, nil

	case msgOrgNameTaken:
		return r.lookup(ctx, name)

	case msgInvalidCredentials:
		return 0, model.NewError(model.KindUnauthorized, op, resp.Message)

	case "":
		return 0, model.NewError(model.KindUnexpectedResponse, op, "response carries no message")

	default:
		return 0, model.NewError(model.KindUnexpectedResponse, op, resp.Message)
	}
}

// lookup scans the organization list for an exact name match.
func (r *OrganizationResolver) lookup(ctx context.Context, name string) (int64, error) {
	const op = "look up organization"

	orgs, err := r.orgs.ListOrganizations(ctx)
	if err != nil {
		return 0, err
	}

	var matches []model.Organization
	for _, org := range orgs {
		if org.Name == name {
			matches = append(matches, org)
		}
	}

	switch len(matches) {
	case 0:
		return 0, model.NewError(model.KindNotFound, op,
			fmt.Sprintf("organization %q reported taken but not listed", name))
	case 1:
		r.logger.Info("organization exists", "org", name, "org_id", matches[0].ID)
		return matches[0].ID, nil
	default:
		return 0, model.NewError(model.KindOrgConflict, op,
			fmt.Sprintf("%d organizations named %q", len(matches), name))
	}
}
