// Package pipeline runs the governance engines after a primary platform write.
//
// Every stage is best-effort: a failure is logged, counted and reported, and never
// returned to the caller, so it cannot block or undo the write that triggered it.
// A missed evaluation is corrected by the next event for the same entity.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"verity/internal/governance/metrics"
	"verity/internal/governance/models"
	"verity/internal/governance/service/enforcement"
	"verity/pkg/requestcontext"
)

// Stage names used in logs, metrics, spans and reports.
const (
	StageAuthenticity = "authenticity"
	StageReputation   = "reputation"
	StageTrust        = "trust"
	StageEnforcement  = "enforcement"
	StageEscalation   = "escalation"
)

const tracerName = "verity/internal/governance/pipeline"

type Authenticator interface {
	Assess(ctx context.Context, in models.ResponseInput) (*models.ResponderAuthenticityScore, error)
}

type ReputationRefresher interface {
	Refresh(ctx context.Context, brandID string) (*models.ReputationScore, error)
}

type TrustEvaluator interface {
	EvaluateEntityTrust(ctx context.Context, entityType models.EntityType, entityID string) (*models.TrustScore, error)
}

type Enforcer interface {
	ProcessEnforcement(ctx context.Context, entityType models.EntityType, entityID string) (*enforcement.Outcome, error)
}

type QualityEscalator interface {
	EscalateLowRating(ctx context.Context, complaintID string, rating int, complaintStatus string) (*models.EscalationCase, error)
	CreateEscalation(ctx context.Context, complaintID string, escalatedBy models.EscalatedBy, reason string) (*models.EscalationCase, error)
}

// FollowUpEvent is raised after a business posts a follow-up to a complaint.
type FollowUpEvent struct {
	ResponseID     string `json:"response_id"`
	BusinessUserID string `json:"business_user_id"`
	BrandID        string `json:"brand_id"`
	SenderEmail    string `json:"sender_email"`
	Text           string `json:"text"`
}

// RatingEvent is raised after a consumer rates how their complaint was handled.
type RatingEvent struct {
	ComplaintID     string `json:"complaint_id"`
	BrandID         string `json:"brand_id"`
	UserID          string `json:"user_id"`
	Rating          int    `json:"rating"`
	ComplaintStatus string `json:"complaint_status"`
}

// FlagEvent is raised when a consumer flags a complaint for special handling.
type FlagEvent struct {
	ComplaintID string `json:"complaint_id"`
	Reason      string `json:"reason"`
}

// StageFailure records a stage that failed and was skipped.
type StageFailure struct {
	Stage  string `json:"stage"`
	Entity string `json:"entity,omitempty"`
	Error  string `json:"error"`
}

// Report describes what a hook invocation achieved.
type Report struct {
	Authenticity *models.ResponderAuthenticityScore `json:"authenticity,omitempty"`
	Reputation   *models.ReputationScore            `json:"reputation,omitempty"`
	Trust        []*models.TrustScore               `json:"trust,omitempty"`
	Enforcement  []*enforcement.Outcome             `json:"enforcement,omitempty"`
	Escalation   *models.EscalationCase             `json:"escalation,omitempty"`
	Failures     []StageFailure                     `json:"failures,omitempty"`
}

// OK reports whether every stage succeeded.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Hook chains the governance engines behind domain events.
type Hook struct {
	authenticity Authenticator
	reputation   ReputationRefresher
	trust        TrustEvaluator
	enforcement  Enforcer
	escalation   QualityEscalator
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
}

type Option func(*Hook)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Hook) {
		h.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Hook) {
		h.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(h *Hook) {
		h.tracer = tracer
	}
}

// WithAuthenticity enables the authenticity stage of AfterFollowUp.
func WithAuthenticity(a Authenticator) Option {
	return func(h *Hook) {
		h.authenticity = a
	}
}

// WithReputation enables reputation refreshes.
func WithReputation(r ReputationRefresher) Option {
	return func(h *Hook) {
		h.reputation = r
	}
}

// WithEscalation enables the low-rating quality signal of AfterRating and AfterFlag.
func WithEscalation(e QualityEscalator) Option {
	return func(h *Hook) {
		h.escalation = e
	}
}

// New requires the trust and enforcement engines; the remaining stages are optional.
func New(trust TrustEvaluator, enforcer Enforcer, opts ...Option) (*Hook, error) {
	if trust == nil {
		return nil, fmt.Errorf("trust evaluator is required")
	}
	if enforcer == nil {
		return nil, fmt.Errorf("enforcer is required")
	}
	h := &Hook{
		trust:       trust,
		enforcement: enforcer,
		logger:      slog.Default(),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// AfterFollowUp scores the response, refreshes the brand's reputation, then
// re-evaluates and enforces the brand.
func (h *Hook) AfterFollowUp(ctx context.Context, ev FollowUpEvent) *Report {
	report := &Report{}
	brand := models.EntityRef{Type: models.EntityBrand, ID: ev.BrandID}

	if h.authenticity != nil && ev.ResponseID != "" {
		h.run(ctx, report, StageAuthenticity, "response:"+ev.ResponseID, func(ctx context.Context) error {
			score, err := h.authenticity.Assess(ctx, models.ResponseInput{
				ResponseID:     ev.ResponseID,
				BusinessUserID: ev.BusinessUserID,
				BrandID:        ev.BrandID,
				SenderEmail:    ev.SenderEmail,
				Text:           ev.Text,
			})
			report.Authenticity = score
			return err
		})
	}

	h.refreshReputation(ctx, report, ev.BrandID)
	h.evaluateAndEnforce(ctx, report, brand)
	return report
}

// AfterRating refreshes the brand's reputation, re-evaluates and enforces both the
// brand and the consumer, and escalates poorly rated resolutions.
func (h *Hook) AfterRating(ctx context.Context, ev RatingEvent) *Report {
	report := &Report{}

	h.refreshReputation(ctx, report, ev.BrandID)
	h.evaluateAndEnforce(ctx, report, models.EntityRef{Type: models.EntityBrand, ID: ev.BrandID})
	if ev.UserID != "" {
		h.evaluateAndEnforce(ctx, report, models.EntityRef{Type: models.EntityUser, ID: ev.UserID})
	}

	if h.escalation != nil && ev.ComplaintID != "" {
		h.run(ctx, report, StageEscalation, "complaint:"+ev.ComplaintID, func(ctx context.Context) error {
			c, err := h.escalation.EscalateLowRating(ctx, ev.ComplaintID, ev.Rating, ev.ComplaintStatus)
			report.Escalation = c
			return err
		})
	}
	return report
}

// AfterFlag opens a USER escalation for the flagged complaint.
func (h *Hook) AfterFlag(ctx context.Context, ev FlagEvent) *Report {
	report := &Report{}
	if h.escalation == nil {
		return report
	}
	h.run(ctx, report, StageEscalation, "complaint:"+ev.ComplaintID, func(ctx context.Context) error {
		c, err := h.escalation.CreateEscalation(ctx, ev.ComplaintID, models.EscalatedByUser, ev.Reason)
		report.Escalation = c
		return err
	})
	return report
}

// Reevaluate re-runs trust and enforcement for one entity.
func (h *Hook) Reevaluate(ctx context.Context, ref models.EntityRef) *Report {
	report := &Report{}
	h.evaluateAndEnforce(ctx, report, ref)
	return report
}

func (h *Hook) refreshReputation(ctx context.Context, report *Report, brandID string) {
	if h.reputation == nil || brandID == "" {
		return
	}
	h.run(ctx, report, StageReputation, "BRAND:"+brandID, func(ctx context.Context) error {
		score, err := h.reputation.Refresh(ctx, brandID)
		report.Reputation = score
		return err
	})
}

// evaluateAndEnforce skips enforcement when the evaluation failed, so an action is
// never derived from a stale score within the same event.
func (h *Hook) evaluateAndEnforce(ctx context.Context, report *Report, ref models.EntityRef) {
	if ref.ID == "" {
		return
	}
	evaluated := h.run(ctx, report, StageTrust, ref.Key(), func(ctx context.Context) error {
		score, err := h.trust.EvaluateEntityTrust(ctx, ref.Type, ref.ID)
		if score != nil {
			report.Trust = append(report.Trust, score)
		}
		return err
	})
	if !evaluated {
		return
	}
	h.run(ctx, report, StageEnforcement, ref.Key(), func(ctx context.Context) error {
		outcome, err := h.enforcement.ProcessEnforcement(ctx, ref.Type, ref.ID)
		if outcome != nil {
			report.Enforcement = append(report.Enforcement, outcome)
		}
		return err
	})
}

// run executes one stage, containing errors and panics. It reports whether the
// stage succeeded.
func (h *Hook) run(ctx context.Context, report *Report, stage, entity string, fn func(context.Context) error) (ok bool) {
	ctx, span := h.tracer.Start(ctx, "governance."+stage, trace.WithAttributes(
		attribute.String("governance.stage", stage),
		attribute.String("governance.entity", entity),
	))
	start := time.Now()

	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s stage: %v", stage, r)
		}
		h.metrics.ObserveStageDuration(stage, time.Since(start))
		if err != nil {
			ok = false
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			h.metrics.IncrementStageFailure(stage)
			report.Failures = append(report.Failures, StageFailure{Stage: stage, Entity: entity, Error: err.Error()})
			if h.logger != nil {
				h.logger.WarnContext(ctx, "governance stage failed",
					"stage", stage,
					"entity", entity,
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
			}
		}
		span.End()
	}()

	err = fn(ctx)
	return err == nil
}
