// Package enforcement derives the automated consequence attached to an entity from
// its latest trust score and reconciles it against the entity's open actions.
//
// It is not a sequential state machine: every call recomputes the target tier and
//
//   - resolves open actions when the target is "none"
//   - does nothing when the target equals the most recent open action
//   - otherwise opens a new action for the target tier
//
// By default a tier change leaves the previously open action open, so an entity may
// carry several open actions. WithConfig(ResolveSupersededActions: true) resolves
// them when the new tier is opened.
package enforcement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"verity/internal/governance/config"
	"verity/internal/governance/metrics"
	"verity/internal/governance/models"
	"verity/internal/governance/ports"
	dErrors "verity/pkg/domain-errors"
	"verity/pkg/platform/audit"
	"verity/pkg/platform/sentinel"
	"verity/pkg/requestcontext"
)

// Result names what a reconciliation did.
type Result string

const (
	ResultNoop     Result = "noop"
	ResultCreated  Result = "created"
	ResultResolved Result = "resolved"
)

// Outcome reports a reconciliation.
type Outcome struct {
	Result Result `json:"result"`
	// Target is the tier derived from the score; empty when no enforcement applies
	// or when the entity has never been evaluated.
	Target     models.ActionType `json:"target,omitempty"`
	TrustScore *models.TrustScore `json:"trust_score,omitempty"`
	// Created is the action opened by this call.
	Created *models.EnforcementAction `json:"created,omitempty"`
	// Resolved lists the actions closed by this call.
	Resolved []*models.EnforcementAction `json:"resolved,omitempty"`

	previouslyOpen int
}

// GetEnforcementType maps a trust score to its tier. ok is false at 80 and above.
func GetEnforcementType(score int) (models.ActionType, bool) {
	return models.EnforcementTypeForScore(score)
}

// TrustReader reads the latest entry of the trust log.
type TrustReader interface {
	Latest(ctx context.Context, ref models.EntityRef) (*models.TrustScore, error)
}

type Service struct {
	trust          TrustReader
	store          ports.EnforcementStore
	locker         Locker
	logger         *slog.Logger
	auditPublisher ports.AuditPublisher
	metrics        *metrics.Metrics
	config         config.Config
	tx             Transactor
}

// Transactor runs fn in a unit of work. Stores reached through the fn context join it.
// LockKey serializes units of work on the same key until the enclosing one ends, so
// replicas sharing a database serialize without any other lock.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockKey(ctx context.Context, key string) error
}

type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (noTx) LockKey(context.Context, string) error {
	return nil
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithConfig(cfg config.Config) Option {
	return func(s *Service) {
		s.config = cfg.Normalize()
	}
}

// WithTransactor makes one reconciliation atomic and serialized per entity within
// the transactor's database.
func WithTransactor(tx Transactor) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

// WithLocker replaces the in-process sharded locker, e.g. with a ChainLocker that
// adds a RedisLocker.
func WithLocker(l Locker) Option {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
	}
}

func New(trust TrustReader, store ports.EnforcementStore, opts ...Option) (*Service, error) {
	if trust == nil {
		return nil, errors.New("trust score reader is required")
	}
	if store == nil {
		return nil, errors.New("enforcement store is required")
	}
	svc := &Service{
		trust:  trust,
		store:  store,
		locker: NewShardedLocker(),
		config: config.DefaultConfig(),
		tx:     noTx{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ProcessEnforcement reconciles the entity's open actions with its latest trust score.
// Calls for the same entity are serialized.
func (s *Service) ProcessEnforcement(ctx context.Context, entityType models.EntityType, entityID string) (*Outcome, error) {
	ref := models.EntityRef{Type: entityType, ID: entityID}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.config.LockTimeout)
	unlock, err := s.locker.Lock(lockCtx, ref.Key())
	cancel()
	if err != nil {
		return nil, err
	}
	defer unlock()

	var outcome *Outcome
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.tx.LockKey(ctx, ref.Key()); err != nil {
			return err
		}
		var err error
		outcome, err = s.reconcile(ctx, ref)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.record(ctx, ref, outcome)
	return outcome, nil
}

// reconcile reads the latest score and open actions and performs the writes. It
// emits nothing, so a rolled back unit of work leaves no audit trail.
func (s *Service) reconcile(ctx context.Context, ref models.EntityRef) (*Outcome, error) {
	latest, err := s.trust.Latest(ctx, ref)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return &Outcome{Result: ResultNoop}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load latest trust score")
	}

	target, enforce := GetEnforcementType(latest.Score)
	open, err := s.store.ListOpen(ctx, ref)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load open enforcement actions")
	}

	outcome := &Outcome{Result: ResultNoop, Target: target, TrustScore: latest}

	if !enforce {
		if len(open) == 0 {
			return outcome, nil
		}
		outcome.Resolved, err = s.resolveAll(ctx, open)
		if err != nil {
			return nil, err
		}
		outcome.Result = ResultResolved
		return outcome, nil
	}

	if len(open) > 0 && open[0].ActionType == target {
		return outcome, nil
	}

	action := &models.EnforcementAction{
		EntityType:  ref.Type,
		EntityID:    ref.ID,
		ActionType:  target,
		Reason:      reasonFor(latest),
		TriggeredBy: models.TriggeredBySystem,
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, action); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create enforcement action")
	}
	outcome.Result = ResultCreated
	outcome.Created = action
	outcome.previouslyOpen = len(open)

	if s.config.ResolveSupersededActions && len(open) > 0 {
		outcome.Resolved, err = s.resolveAll(ctx, open)
		if err != nil {
			return nil, err
		}
	}
	return outcome, nil
}

// record emits metrics and audit events for a committed reconciliation.
func (s *Service) record(ctx context.Context, ref models.EntityRef, outcome *Outcome) {
	latest := outcome.TrustScore
	switch outcome.Result {
	case ResultNoop:
		if latest != nil {
			s.metrics.IncrementEnforcementTransition(string(ResultNoop), string(outcome.Target))
		}
	case ResultResolved:
		s.auditResolved(ctx, outcome.Resolved, latest, "trust score recovered")
	case ResultCreated:
		action := outcome.Created
		s.metrics.IncrementEnforcementTransition(string(ResultCreated), string(action.ActionType))
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventEnforcementCreated,
			"subject", ref.Key(),
			"decision", string(action.ActionType),
			"reason", action.Reason,
			"action_id", action.ID.String(),
			"score", latest.Score,
			"risk_level", string(latest.RiskLevel),
			"previously_open", outcome.previouslyOpen,
		)
		if len(outcome.Resolved) > 0 {
			s.auditResolved(ctx, outcome.Resolved, latest, "superseded by "+string(action.ActionType))
		}
	}
}

func (s *Service) resolveAll(ctx context.Context, open []*models.EnforcementAction) ([]*models.EnforcementAction, error) {
	now := requestcontext.Now(ctx)
	resolved := make([]*models.EnforcementAction, 0, len(open))
	for _, action := range open {
		updated, err := s.store.Resolve(ctx, action.ID, now)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve enforcement action")
		}
		resolved = append(resolved, updated)
	}
	return resolved, nil
}

func (s *Service) auditResolved(ctx context.Context, resolved []*models.EnforcementAction, latest *models.TrustScore, why string) {
	for _, updated := range resolved {
		s.metrics.IncrementEnforcementTransition(string(ResultResolved), string(updated.ActionType))
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventEnforcementResolved,
			"subject", updated.Ref().Key(),
			"decision", string(updated.ActionType),
			"reason", why,
			"action_id", updated.ID.String(),
			"score", latest.Score,
		)
	}
}

// ListOpen returns the entity's unresolved actions, most recent first.
func (s *Service) ListOpen(ctx context.Context, ref models.EntityRef) ([]*models.EnforcementAction, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	actions, err := s.store.ListOpen(ctx, ref)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list open enforcement actions")
	}
	return actions, nil
}

// ListHistory returns every action of the entity, most recent first.
func (s *Service) ListHistory(ctx context.Context, ref models.EntityRef) ([]*models.EnforcementAction, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	actions, err := s.store.ListByEntity(ctx, ref)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list enforcement actions")
	}
	return actions, nil
}

func reasonFor(score *models.TrustScore) string {
	return fmt.Sprintf("Trust score %d (%s risk) requires automated enforcement", score.Score, score.RiskLevel)
}
