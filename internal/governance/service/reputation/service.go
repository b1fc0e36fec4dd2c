// Package reputation computes the Bayesian-smoothed reputation of a brand and keeps
// the single reputation row per brand current.
package reputation

import (
	"context"
	"errors"
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

// ComputeScore blends a brand's own rating sample with the platform-wide prior and
// applies the resolution bonus:
//
//	bayesian = (n*avg + w*mean) / (n + w)
//	score    = bayesian * (1 + resolutionRate)
//
// An empty sample returns platformMean exactly. resolutionRate is a multiplicative
// bonus: a fully resolving brand doubles its blended rating. Rates outside [0,1]
// are clamped, which keeps scores within models.MaxReputationScore.
func ComputeScore(sampleSize int, sampleAvg, platformMean, confidenceWeight, resolutionRate float64) float64 {
	if sampleSize <= 0 {
		return platformMean
	}
	if confidenceWeight < 0 {
		confidenceWeight = 0
	}
	n := float64(sampleSize)
	bayesian := (n*sampleAvg + confidenceWeight*platformMean) / (n + confidenceWeight)
	return bayesian * (1 + clampUnit(resolutionRate))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Stats is the subset of ports.StatsReader the reputation refresh reads.
type Stats interface {
	BrandRatingStats(ctx context.Context, brandID string) (models.BrandRatingStats, error)
	PlatformRatingMean(ctx context.Context) (float64, error)
}

type Service struct {
	stats          Stats
	store          ports.ReputationStore
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

func New(stats Stats, store ports.ReputationStore, opts ...Option) (*Service, error) {
	if stats == nil {
		return nil, errors.New("stats reader is required")
	}
	if store == nil {
		return nil, errors.New("reputation store is required")
	}
	svc := &Service{
		stats:  stats,
		store:  store,
		config: config.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Refresh recomputes the brand's reputation and replaces its stored row.
func (s *Service) Refresh(ctx context.Context, brandID string) (*models.ReputationScore, error) {
	stats, err := s.stats.BrandRatingStats(ctx, brandID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "brand not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read brand rating stats")
	}

	mean, err := s.stats.PlatformRatingMean(ctx)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read platform rating mean")
		}
		mean = models.NeutralPlatformMean
	}

	score := &models.ReputationScore{
		BrandID:    brandID,
		Score:      ComputeScore(stats.SampleSize, stats.AverageRating, mean, s.config.ConfidenceWeight, stats.ResolutionRate),
		SampleSize: stats.SampleSize,
		UpdatedAt:  requestcontext.Now(ctx),
	}
	if err := s.store.Upsert(ctx, score); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save reputation score")
	}

	s.metrics.IncrementReputationRefreshes()
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventReputationRefreshed,
		"subject", models.EntityRef{Type: models.EntityBrand, ID: brandID}.Key(),
		"brand_id", brandID,
		"score", score.Score,
		"sample_size", stats.SampleSize,
		"platform_mean", mean,
	)
	return score, nil
}

// Get returns the brand's stored reputation.
func (s *Service) Get(ctx context.Context, brandID string) (*models.ReputationScore, error) {
	score, err := s.store.Get(ctx, brandID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "reputation score not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reputation score")
	}
	return score, nil
}
