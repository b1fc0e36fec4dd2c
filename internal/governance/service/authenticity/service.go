// Package authenticity scores how genuine a business response to a complaint looks.
//
// Four independent signals feed a weighted composite:
//
//   - identity: the sender is not on one of the brand's verified email domains
//   - behavior: response velocity and copy-paste similarity to recent replies
//   - language: legal threats, off-platform contact, blame shifting
//   - reputation: the inverse of the brand's current reputation
//
// Every assessment is persisted once per response together with its breakdown.
package authenticity

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"verity/internal/governance/config"
	"verity/internal/governance/metrics"
	"verity/internal/governance/models"
	"verity/internal/governance/ports"
	dErrors "verity/pkg/domain-errors"
	"verity/pkg/platform/audit"
	"verity/pkg/platform/sentinel"
	"verity/pkg/requestcontext"
)

type Service struct {
	directory      ports.BrandDirectory
	history        ports.ResponseHistory
	reputation     ports.ReputationStore
	store          ports.AuthenticityStore
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

func New(
	directory ports.BrandDirectory,
	history ports.ResponseHistory,
	reputation ports.ReputationStore,
	store ports.AuthenticityStore,
	opts ...Option,
) (*Service, error) {
	if directory == nil {
		return nil, errors.New("brand directory is required")
	}
	if history == nil {
		return nil, errors.New("response history is required")
	}
	if reputation == nil {
		return nil, errors.New("reputation store is required")
	}
	if store == nil {
		return nil, errors.New("authenticity store is required")
	}
	svc := &Service{
		directory:  directory,
		history:    history,
		reputation: reputation,
		store:      store,
		config:     config.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Assess scores a business response and stores the result. A response that was
// already assessed returns its original record.
func (s *Service) Assess(ctx context.Context, in models.ResponseInput) (*models.ResponderAuthenticityScore, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	existing, err := s.store.GetByResponse(ctx, in.ResponseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load authenticity score")
	}

	inputs, err := s.gather(ctx, in)
	if err != nil {
		return nil, err
	}
	signals, breakdown := Score(inputs)
	composite := signals.Composite()

	record := &models.ResponderAuthenticityScore{
		ResponseID:      in.ResponseID,
		BusinessUserID:  in.BusinessUserID,
		BrandID:         in.BrandID,
		IdentityScore:   signals.Identity,
		BehaviorScore:   signals.Behavior,
		LanguageScore:   signals.Language,
		ReputationScore: signals.Reputation,
		CompositeScore:  composite,
		RiskBand:        models.BandForComposite(composite),
		RuleBreakdown:   breakdown,
		CreatedAt:       requestcontext.Now(ctx),
	}

	stored, created, err := s.store.CreateIfAbsent(ctx, record)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save authenticity score")
	}
	if !created {
		return stored, nil
	}

	s.metrics.IncrementAuthenticityScored(string(stored.RiskBand))
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventAuthenticityScored,
		"subject", "response:"+stored.ResponseID,
		"decision", string(stored.RiskBand),
		"brand_id", stored.BrandID,
		"business_user_id", stored.BusinessUserID,
		"composite_score", stored.CompositeScore,
		"language_flags", strings.Join(breakdown.LanguageFlags, ","),
	)
	return stored, nil
}

func (s *Service) gather(ctx context.Context, in models.ResponseInput) (Inputs, error) {
	domains, err := s.directory.VerifiedDomains(ctx, in.BrandID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Inputs{}, dErrors.New(dErrors.CodeNotFound, "brand not found")
		}
		return Inputs{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read verified domains")
	}

	history, err := s.history.RecentResponses(ctx, in.BusinessUserID, in.ResponseID, s.config.HistoryLimit)
	if err != nil {
		return Inputs{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read response history")
	}
	if len(history) > s.config.HistoryLimit {
		history = history[:s.config.HistoryLimit]
	}

	var brandReputation *float64
	rep, err := s.reputation.Get(ctx, in.BrandID)
	switch {
	case err == nil:
		brandReputation = &rep.Score
	case errors.Is(err, sentinel.ErrNotFound):
	default:
		return Inputs{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read brand reputation")
	}

	return Inputs{
		SenderEmail:     in.SenderEmail,
		VerifiedDomains: domains,
		Text:            in.Text,
		History:         history,
		BrandReputation: brandReputation,
	}, nil
}

// Get returns the stored assessment of a response.
func (s *Service) Get(ctx context.Context, responseID string) (*models.ResponderAuthenticityScore, error) {
	score, err := s.store.GetByResponse(ctx, responseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "authenticity score not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load authenticity score")
	}
	return score, nil
}

func validateInput(in models.ResponseInput) error {
	switch {
	case strings.TrimSpace(in.ResponseID) == "":
		return dErrors.New(dErrors.CodeInvalidInput, "response id is required")
	case strings.TrimSpace(in.BusinessUserID) == "":
		return dErrors.New(dErrors.CodeInvalidInput, "business user id is required")
	case strings.TrimSpace(in.BrandID) == "":
		return dErrors.New(dErrors.CodeInvalidInput, "brand id is required")
	}
	return nil
}
