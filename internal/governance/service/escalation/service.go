// Package escalation tracks complaints flagged for special handling. There is at
// most one case per complaint; its status may be overwritten freely by operators.
package escalation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"verity/internal/governance/config"
	"verity/internal/governance/metrics"
	"verity/internal/governance/models"
	"verity/internal/governance/ports"
	id "verity/pkg/domain"
	dErrors "verity/pkg/domain-errors"
	"verity/pkg/platform/audit"
	"verity/pkg/platform/sentinel"
	"verity/pkg/requestcontext"
)

const maxReasonLength = 2000

type Service struct {
	store          ports.EscalationStore
	logger         *slog.Logger
	auditPublisher ports.AuditPublisher
	metrics        *metrics.Metrics
	config         config.Config
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

func New(store ports.EscalationStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("escalation store is required")
	}
	svc := &Service{
		store:  store,
		config: config.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CreateEscalation opens a PENDING case for the complaint. When a case already
// exists it is returned unchanged, whatever reason or origin this call carries,
// so only the complaint id is validated for a repeat call.
func (s *Service) CreateEscalation(ctx context.Context, complaintID string, escalatedBy models.EscalatedBy, reason string) (*models.EscalationCase, error) {
	parsedID, err := id.ParseExternalID("complaint_id", complaintID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindByComplaint(ctx, parsedID.String())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load escalation case")
	}

	if !escalatedBy.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid escalated_by: must be one of USER, SYSTEM, ADMIN")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "reason is required")
	}
	if len(reason) > maxReasonLength {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "reason is too long")
	}

	now := requestcontext.Now(ctx)
	c := &models.EscalationCase{
		ComplaintID:   parsedID.String(),
		EscalatedBy:   escalatedBy,
		Reason:        reason,
		AIRiskSummary: riskSummary(escalatedBy, reason),
		Status:        models.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	stored, created, err := s.store.CreateIfAbsent(ctx, c)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create escalation case")
	}
	if !created {
		return stored, nil
	}

	s.metrics.IncrementEscalationsCreated(string(escalatedBy))
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventEscalationCreated,
		"subject", "complaint:"+stored.ComplaintID,
		"decision", string(stored.Status),
		"reason", stored.Reason,
		"case_id", stored.ID.String(),
		"escalated_by", string(escalatedBy),
	)
	return stored, nil
}

// ResolveEscalation overwrites the case status. Any status may follow any other.
func (s *Service) ResolveEscalation(ctx context.Context, caseID uuid.UUID, status models.EscalationStatus) (*models.EscalationCase, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid status: must be one of PENDING, INVESTIGATING, RESOLVED, REFERRED")
	}

	previous, err := s.store.FindByID(ctx, caseID)
	if err != nil {
		return nil, wrapLoad(err)
	}

	updated, err := s.store.UpdateStatus(ctx, caseID, status, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "escalation case not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update escalation status")
	}

	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventEscalationStatusChanged,
		"subject", "complaint:"+updated.ComplaintID,
		"decision", string(updated.Status),
		"case_id", updated.ID.String(),
		"previous_status", string(previous.Status),
	)
	return updated, nil
}

// EscalateLowRating raises a SYSTEM case when a consumer rates the resolution of a
// resolved complaint at or below the configured threshold. It returns nil when the
// rating does not warrant one.
func (s *Service) EscalateLowRating(ctx context.Context, complaintID string, rating int, complaintStatus string) (*models.EscalationCase, error) {
	if !strings.EqualFold(complaintStatus, models.ComplaintResolved) || rating > s.config.LowRatingThreshold {
		return nil, nil
	}
	reason := fmt.Sprintf("Complaint marked resolved but rated %d/5 by the consumer", rating)
	return s.CreateEscalation(ctx, complaintID, models.EscalatedBySystem, reason)
}

func (s *Service) Get(ctx context.Context, caseID uuid.UUID) (*models.EscalationCase, error) {
	c, err := s.store.FindByID(ctx, caseID)
	if err != nil {
		return nil, wrapLoad(err)
	}
	return c, nil
}

func (s *Service) GetByComplaint(ctx context.Context, complaintID string) (*models.EscalationCase, error) {
	parsedID, err := id.ParseExternalID("complaint_id", complaintID)
	if err != nil {
		return nil, err
	}
	c, err := s.store.FindByComplaint(ctx, parsedID.String())
	if err != nil {
		return nil, wrapLoad(err)
	}
	return c, nil
}

// List returns cases newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, filter models.EscalationFilter) ([]*models.EscalationCase, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid status filter")
	}
	cases, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list escalation cases")
	}
	return cases, nil
}

func riskSummary(escalatedBy models.EscalatedBy, reason string) string {
	origin := "a consumer"
	switch escalatedBy {
	case models.EscalatedBySystem:
		origin = "automated quality signals"
	case models.EscalatedByAdmin:
		origin = "a platform administrator"
	}
	return fmt.Sprintf("Escalated by %s. Reported concern: %s. Pending investigation.", origin, reason)
}

func wrapLoad(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "escalation case not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load escalation case")
}
