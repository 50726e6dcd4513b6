package model

import "time"

// JournalEntry is one row of the provisioning journal. It never carries the
// key secret; KeyID and KeyName are enough to find the key remotely.
type JournalEntry struct {
	ID           int64          `json:"id" yaml:"id"`
	RunID        string         `json:"run_id" yaml:"run_id"`
	Organization string         `json:"organization" yaml:"organization"`
	OrgID        int64          `json:"org_id" yaml:"org_id"`
	KeyID        int64          `json:"key_id" yaml:"key_id"`
	KeyName      string         `json:"key_name" yaml:"key_name"`
	Location     string         `json:"location" yaml:"location"`
	Outcome      JournalOutcome `json:"outcome" yaml:"outcome"`
	Message      string         `json:"message,omitempty" yaml:"message,omitempty"`
	CreatedAt    time.Time      `json:"created_at" yaml:"created_at"`
}
