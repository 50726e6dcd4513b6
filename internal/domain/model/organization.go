package model

// Organization is a tenant on the remote service. ID is assigned remotely;
// Name is unique across the service.
type Organization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateOrgResponse is the body returned by the create-organization call.
// OrgID is only set when Message reports a successful create.
type CreateOrgResponse struct {
	Message string `json:"message"`
	OrgID   *int64 `json:"orgId,omitempty"`
}

// KeyRequest is the input to key issuance. OrgID is zero when the key should
// be scoped by the caller's active organization.
type KeyRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	OrgID int64  `json:"-"`
}

// IssueKeyResponse is the body returned by the issue-key call. Exactly one of
// Message or Key is expected to be set.
type IssueKeyResponse struct {
	ID      int64  `json:"id,omitempty"`
	Key     string `json:"key,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}
