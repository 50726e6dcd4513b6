package model

// State is a step of the provisioning workflow.
type State string

const (
	StateIdle               State = "idle"
	StateCheckingLocal      State = "checking_local"
	StateAlreadyProvisioned State = "already_provisioned"
	StateResolving          State = "resolving"
	StateResolved           State = "resolved"
	StateSwitching          State = "switching"
	StateIssuing            State = "issuing"
	StatePersisting         State = "persisting"
	StateVerifying          State = "verifying"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// Terminal reports whether no further transition leaves s.
func (s State) Terminal() bool {
	return s == StateAlreadyProvisioned || s == StateDone || s == StateFailed
}

// ScopeMode selects how an issued key is bound to its organization.
type ScopeMode string

const (
	// ScopeModeSwitch makes the organization the active context before issuing.
	ScopeModeSwitch ScopeMode = "switch"
	// ScopeModeExplicit passes the organization id on the issue request.
	ScopeModeExplicit ScopeMode = "explicit"
)

// Valid reports whether m is a known scope mode.
func (m ScopeMode) Valid() bool {
	return m == ScopeModeSwitch || m == ScopeModeExplicit
}

// JournalOutcome records what happened to an issued key.
type JournalOutcome string

const (
	OutcomeIssued        JournalOutcome = "issued"
	OutcomePersisted     JournalOutcome = "persisted"
	OutcomePersistFailed JournalOutcome = "persist_failed"
	OutcomeVerifyFailed  JournalOutcome = "verify_failed"
)

// AdminRole is the privilege role every provisioned key is issued with.
const AdminRole = "Admin"
