// Package trust evaluates the standing of consumers and brands and appends every
// evaluation to the trust log.
//
// Evaluation starts from a baseline of 100 and applies threshold deductions:
//
//	BRAND  resolution rate < 0.5: -20, and < 0.3: a further -20
//	       -5 per HIGH risk responder authenticity score of the brand's manager
//	USER   (only with more than 5 complaints)
//	       rejection rate > 0.4: -30, and > 0.7: a further -40
//
// The result is clamped to [0,100] and banded into a risk level.
package trust

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"verity/internal/governance/metrics"
	"verity/internal/governance/models"
	"verity/internal/governance/ports"
	dErrors "verity/pkg/domain-errors"
	"verity/pkg/platform/audit"
	"verity/pkg/platform/sentinel"
	"verity/pkg/requestcontext"
)

const (
	brandLowResolutionRate   = 0.5
	brandPoorResolutionRate  = 0.3
	brandResolutionPenalty   = 20
	highRiskResponsePenalty  = 5
	userMinComplaints        = 5
	userHighRejectionRate    = 0.4
	userAbusiveRejectionRate = 0.7
	userHighRejectionPenalty = 30
	userAbusivePenalty       = 40
)

// Deduction rule names recorded in TrustScore metadata.
const (
	RuleLowResolution    = "low_resolution_rate"
	RulePoorResolution   = "poor_resolution_rate"
	RuleHighRiskResponse = "high_risk_responses"
	RuleHighRejection    = "high_rejection_rate"
	RuleAbusiveRejection = "abusive_rejection_rate"
)

// Deduction is one applied penalty.
type Deduction struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

// ComplaintStats is the subset of ports.StatsReader the trust engine reads.
type ComplaintStats interface {
	BrandComplaintStats(ctx context.Context, brandID string) (models.BrandComplaintStats, error)
	UserComplaintStats(ctx context.Context, userID string) (models.UserComplaintStats, error)
}

// ManagerDirectory resolves the business user answering for a brand.
type ManagerDirectory interface {
	ManagerID(ctx context.Context, brandID string) (string, error)
}

// AuthenticityCounter counts stored authenticity assessments.
type AuthenticityCounter interface {
	CountByBand(ctx context.Context, businessUserID string, band models.AuthenticityBand) (int, error)
}

type Service struct {
	stats          ComplaintStats
	managers       ManagerDirectory
	authenticity   AuthenticityCounter
	log            ports.TrustScoreLog
	logger         *slog.Logger
	auditPublisher ports.AuditPublisher
	metrics        *metrics.Metrics
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

func New(
	stats ComplaintStats,
	managers ManagerDirectory,
	authenticity AuthenticityCounter,
	log ports.TrustScoreLog,
	opts ...Option,
) (*Service, error) {
	if stats == nil {
		return nil, errors.New("complaint stats reader is required")
	}
	if managers == nil {
		return nil, errors.New("manager directory is required")
	}
	if authenticity == nil {
		return nil, errors.New("authenticity counter is required")
	}
	if log == nil {
		return nil, errors.New("trust score log is required")
	}
	svc := &Service{
		stats:        stats,
		managers:     managers,
		authenticity: authenticity,
		log:          log,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// EvaluateEntityTrust computes the entity's trust and appends it to the log.
func (s *Service) EvaluateEntityTrust(ctx context.Context, entityType models.EntityType, entityID string) (*models.TrustScore, error) {
	ref := models.EntityRef{Type: entityType, ID: entityID}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	var (
		deductions []Deduction
		metadata   map[string]any
		err        error
	)
	switch entityType {
	case models.EntityBrand:
		deductions, metadata, err = s.brandDeductions(ctx, entityID)
	case models.EntityUser:
		deductions, metadata, err = s.userDeductions(ctx, entityID)
	}
	if err != nil {
		return nil, err
	}

	raw := models.TrustBaseline
	for _, d := range deductions {
		raw -= d.Points
	}
	score := models.ClampTrust(raw)
	metadata["baseline"] = models.TrustBaseline
	metadata["deductions"] = deductions

	entry := &models.TrustScore{
		EntityType:  entityType,
		EntityID:    entityID,
		Score:       score,
		RiskLevel:   models.RiskLevelForScore(score),
		EvaluatedAt: requestcontext.Now(ctx),
		Metadata:    metadata,
	}
	if err := s.log.Append(ctx, entry); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to append trust score")
	}

	s.metrics.ObserveTrustEvaluation(string(entityType), string(entry.RiskLevel), score)
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventTrustEvaluated,
		"subject", ref.Key(),
		"decision", string(entry.RiskLevel),
		"entity_type", string(entityType),
		"entity_id", entityID,
		"score", score,
		"deductions", len(deductions),
	)
	return entry, nil
}

func (s *Service) brandDeductions(ctx context.Context, brandID string) ([]Deduction, map[string]any, error) {
	var (
		stats    models.BrandComplaintStats
		highRisk int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.stats.BrandComplaintStats(gctx, brandID)
		return wrapRead(err, "brand not found", "failed to read brand complaint stats")
	})
	g.Go(func() error {
		managerID, err := s.managers.ManagerID(gctx, brandID)
		if err != nil {
			return wrapRead(err, "brand not found", "failed to read brand manager")
		}
		if managerID == "" {
			return nil
		}
		highRisk, err = s.authenticity.CountByBand(gctx, managerID, models.BandHigh)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count high risk responses")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	metadata := map[string]any{
		"total_complaints":    stats.Total,
		"resolved_complaints": stats.Resolved,
		"high_risk_responses": highRisk,
	}
	var deductions []Deduction
	if rate, ok := stats.ResolutionRate(); ok {
		metadata["resolution_rate"] = rate
		if rate < brandLowResolutionRate {
			deductions = append(deductions, Deduction{Rule: RuleLowResolution, Points: brandResolutionPenalty})
		}
		if rate < brandPoorResolutionRate {
			deductions = append(deductions, Deduction{Rule: RulePoorResolution, Points: brandResolutionPenalty})
		}
	}
	if highRisk > 0 {
		deductions = append(deductions, Deduction{Rule: RuleHighRiskResponse, Points: highRisk * highRiskResponsePenalty})
	}
	return deductions, metadata, nil
}

func (s *Service) userDeductions(ctx context.Context, userID string) ([]Deduction, map[string]any, error) {
	stats, err := s.stats.UserComplaintStats(ctx, userID)
	if err != nil {
		return nil, nil, wrapRead(err, "user not found", "failed to read user complaint stats")
	}

	metadata := map[string]any{
		"total_complaints":    stats.Total,
		"rejected_complaints": stats.Rejected,
	}
	if stats.Total <= userMinComplaints {
		metadata["insufficient_sample"] = true
		return nil, metadata, nil
	}

	var deductions []Deduction
	rate, _ := stats.RejectionRate()
	metadata["rejection_rate"] = rate
	if rate > userHighRejectionRate {
		deductions = append(deductions, Deduction{Rule: RuleHighRejection, Points: userHighRejectionPenalty})
	}
	if rate > userAbusiveRejectionRate {
		deductions = append(deductions, Deduction{Rule: RuleAbusiveRejection, Points: userAbusivePenalty})
	}
	return deductions, metadata, nil
}

// Current returns the most recent evaluation of the entity.
func (s *Service) Current(ctx context.Context, ref models.EntityRef) (*models.TrustScore, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	score, err := s.log.Latest(ctx, ref)
	if err != nil {
		return nil, wrapRead(err, "trust score not found", "failed to load trust score")
	}
	return score, nil
}

// History returns up to limit evaluations, newest first.
func (s *Service) History(ctx context.Context, ref models.EntityRef, limit int) ([]*models.TrustScore, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	scores, err := s.log.List(ctx, ref, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list trust scores")
	}
	return scores, nil
}

func wrapRead(err error, notFoundMsg, internalMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
}
