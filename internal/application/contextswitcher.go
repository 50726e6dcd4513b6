package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
	"github.com/ericfisherdev/keyprovisioner/internal/domain/port/driven"
)

// ContextSwitcher makes an organization the active context for the
// authenticated user. Keys issued afterwards without an explicit org id are
// scoped to it, so anything short of the confirmation message is fatal.
type ContextSwitcher struct {
	orgs driven.OrgService
}

// NewContextSwitcher creates a ContextSwitcher.
func NewContextSwitcher(orgs driven.OrgService) *ContextSwitcher {
	return &ContextSwitcher{orgs: orgs}
}

// Activate switches the active organization to orgID.
func (s *ContextSwitcher) Activate(ctx context.Context, orgID int64) error {
	const op = "switch organization"

	msg, err := s.orgs.SwitchOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if msg != msgOrgSwitched {
		if msg == "" {
			msg = "no confirmation message"
		}
		return model.NewError(model.KindSwitchFailed, op, fmt.Sprintf("org %d: %s", orgID, msg))
	}
	return nil
}
