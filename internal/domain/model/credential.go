package model

// KeySuffix is appended to the organization name to form the name of the
// issued API key.
const KeySuffix = "_apikey"

// CredentialRecord is an API key issued by the remote service. Key is the
// secret and cannot be fetched again once the issuing response is gone, so the
// persisted copy is the only one.
type CredentialRecord struct {
	ID   int64  `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// KeyNameFor returns the conventional key name for an organization.
func KeyNameFor(org string) string {
	return org + KeySuffix
}

// Redacted returns a copy of the record with the secret removed, safe to log
// or render.
func (c CredentialRecord) Redacted() CredentialRecord {
	c.Key = ""
	return c
}
