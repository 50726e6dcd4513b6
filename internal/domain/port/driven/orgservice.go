package driven

import (
	"context"

	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
)

// OrgService defines the driven port for the remote service calls needed to
// provision a key. Implementations decode response bodies regardless of HTTP
// status and leave interpretation of the message field to the caller.
// Network failures are returned as KindTransport errors; undecodable bodies
// as KindUnexpectedResponse.
type OrgService interface {
	// CreateOrganization attempts to create an organization named name.
	CreateOrganization(ctx context.Context, name string) (model.CreateOrgResponse, error)

	// ListOrganizations returns every organization visible to the caller.
	ListOrganizations(ctx context.Context) ([]model.Organization, error)

	// SwitchOrganization makes orgID the caller's active organization and
	// returns the confirmation message, which may be empty.
	SwitchOrganization(ctx context.Context, orgID int64) (string, error)

	// IssueKey requests a new API key. When req.OrgID is non-zero the key is
	// scoped to that organization explicitly.
	IssueKey(ctx context.Context, req model.KeyRequest) (model.IssueKeyResponse, error)
}
