package application

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
	"github.com/ericfisherdev/keyprovisioner/internal/domain/port/driven"
)

// Request is the input of one provisioning run.
type Request struct {
	Organization string
	Location     string
	ScopeMode    model.ScopeMode
}

// Provisioner runs the provisioning workflow:
//
//	checking_local -> already_provisioned
//	checking_local -> resolving -> resolved -> [switching] -> issuing
//	  -> persisting -> verifying -> done
//
// Any component error moves the run to failed. Each remote call happens at
// most once per run; retry policy belongs to the caller.
//
// Two runs against the same organization converge on one organization but
// may each issue a key, since nothing remote enforces unique key names.
// Callers needing at-most-once issuance must serialize runs externally.
type Provisioner struct {
	store    driven.CredentialStore
	resolver *OrganizationResolver
	switcher *ContextSwitcher
	issuer   *KeyIssuer
	journal  driven.ProvisionJournal
	logger   *slog.Logger
	observe  func(model.State)
	newRunID func() string
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithJournal records issued keys and their outcome. Journal failures are
// logged and never change the result of a run.
func WithJournal(journal driven.ProvisionJournal) Option {
	return func(p *Provisioner) {
		p.journal = journal
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provisioner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithStateObserver registers fn to be called on every state entered.
func WithStateObserver(fn func(model.State)) Option {
	return func(p *Provisioner) {
		p.observe = fn
	}
}

// NewProvisioner creates a Provisioner over the credential store and remote
// service ports.
func NewProvisioner(store driven.CredentialStore, orgs driven.OrgService, opts ...Option) *Provisioner {
	p := &Provisioner{
		store:    store,
		logger:   slog.Default(),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.resolver = NewOrganizationResolver(orgs, p.logger)
	p.switcher = NewContextSwitcher(orgs)
	p.issuer = NewKeyIssuer(orgs)
	return p
}

// run carries the per-invocation state of the workflow.
type run struct {
	id     string
	req    Request
	state  model.State
	logger *slog.Logger
}

// Provision runs the workflow for req. The returned Status is always
// populated; the error is non-nil exactly when Status.Success is false.
func (p *Provisioner) Provision(ctx context.Context, req Request) (model.Status, error) {
	id := p.newRunID()
	r := &run{
		id:     id,
		req:    req,
		state:  model.StateIdle,
		logger: p.logger.With("run_id", id, "org", req.Organization),
	}

	keyName := model.KeyNameFor(req.Organization)

	p.enter(r, model.StateCheckingLocal)
	if p.store.Exists(ctx, keyName, req.Location) {
		p.enter(r, model.StateAlreadyProvisioned)
		return model.Status{Success: true, Message: model.MessageAlreadyExists, State: r.state}, nil
	}

	p.enter(r, model.StateResolving)
	orgID, err := p.resolver.ResolveOrCreate(ctx, req.Organization)
	if err != nil {
		return p.fail(r, err)
	}
	p.enter(r, model.StateResolved)
	r.logger.Info("organization resolved", "org_id", orgID)

	scopeID := orgID
	if req.ScopeMode != model.ScopeModeExplicit {
		p.enter(r, model.StateSwitching)
		if err := p.switcher.Activate(ctx, orgID); err != nil {
			return p.fail(r, err)
		}
		scopeID = 0
	}

	p.enter(r, model.StateIssuing)
	rec, err := p.issuer.Issue(ctx, keyName, model.AdminRole, scopeID)
	if err != nil {
		return p.fail(r, err)
	}
	r.logger.Info("api key issued", "key_id", rec.ID, "key_name", rec.Name)
	p.record(ctx, r, orgID, rec, model.OutcomeIssued, "")

	p.enter(r, model.StatePersisting)
	if err := p.store.Persist(ctx, rec, req.Location); err != nil {
		// The key now exists remotely with no local copy and is left in place.
		r.logger.Error("issued key not persisted, remote key is orphaned",
			"key_id", rec.ID, "key_name", rec.Name, "error", err)
		p.record(ctx, r, orgID, rec, model.OutcomePersistFailed, err.Error())
		return p.fail(r, err)
	}

	p.enter(r, model.StateVerifying)
	if !p.store.Exists(ctx, keyName, req.Location) {
		verr := model.NewError(model.KindVerification, "verify credential",
			"stored record does not match "+keyName)
		p.record(ctx, r, orgID, rec, model.OutcomeVerifyFailed, verr.Error())
		p.enter(r, model.StateFailed)
		r.logger.Error("provisioning failed", "kind", verr.Kind, "error", verr)
		return model.Status{Success: false, Message: model.MessageFailed, State: r.state, Kind: verr.Kind}, verr
	}
	p.record(ctx, r, orgID, rec, model.OutcomePersisted, "")

	p.enter(r, model.StateDone)
	return model.Status{Success: true, Message: model.MessageCreated, State: r.state}, nil
}

func (p *Provisioner) enter(r *run, state model.State) {
	r.state = state
	r.logger.Debug("provisioning state", "state", state)
	if p.observe != nil {
		p.observe(state)
	}
}

func (p *Provisioner) fail(r *run, err error) (model.Status, error) {
	p.enter(r, model.StateFailed)
	kind := model.KindOf(err)
	r.logger.Error("provisioning failed", "kind", kind, "error", err)
	return model.Status{Success: false, Message: err.Error(), State: r.state, Kind: kind}, err
}

// record appends a journal entry if a journal is configured.
func (p *Provisioner) record(ctx context.Context, r *run, orgID int64, rec model.CredentialRecord, outcome model.JournalOutcome, msg string) {
	if p.journal == nil {
		return
	}
	entry := model.JournalEntry{
		RunID:        r.id,
		Organization: r.req.Organization,
		OrgID:        orgID,
		KeyID:        rec.ID,
		KeyName:      rec.Name,
		Location:     r.req.Location,
		Outcome:      outcome,
		Message:      msg,
	}
	if err := p.journal.Record(ctx, entry); err != nil {
		r.logger.Warn("journal write failed", "outcome", outcome, "error", err)
	}
}
