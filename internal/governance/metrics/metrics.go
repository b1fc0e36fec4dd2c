package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the governance Prometheus collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	TrustEvaluations       *prometheus.CounterVec
	TrustScore             *prometheus.HistogramVec
	EnforcementTransitions *prometheus.CounterVec
	AuthenticityScored     *prometheus.CounterVec
	ReputationRefreshes    prometheus.Counter
	EscalationsCreated     *prometheus.CounterVec
	PipelineStageFailures  *prometheus.CounterVec
	PipelineStageDuration  *prometheus.HistogramVec
}

// New registers the collectors on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TrustEvaluations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verity_governance_trust_evaluations_total",
			Help: "Trust evaluations by entity type and resulting risk level",
		}, []string{"entity_type", "risk_level"}),
		TrustScore: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "verity_governance_trust_score",
			Help:    "Distribution of computed trust scores",
			Buckets: []float64{20, 40, 60, 80, 100},
		}, []string{"entity_type"}),
		EnforcementTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verity_governance_enforcement_transitions_total",
			Help: "Enforcement reconciliations by outcome and action type",
		}, []string{"outcome", "action_type"}),
		AuthenticityScored: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verity_governance_authenticity_scored_total",
			Help: "Responder authenticity assessments by risk band",
		}, []string{"risk_band"}),
		ReputationRefreshes: f.NewCounter(prometheus.CounterOpts{
			Name: "verity_governance_reputation_refreshes_total",
			Help: "Brand reputation recomputations",
		}),
		EscalationsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verity_governance_escalations_created_total",
			Help: "Escalation cases created by origin",
		}, []string{"escalated_by"}),
		PipelineStageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verity_governance_pipeline_stage_failures_total",
			Help: "Best-effort pipeline stage failures that were logged and discarded",
		}, []string{"stage"}),
		PipelineStageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "verity_governance_pipeline_stage_duration_seconds",
			Help:    "Duration of best-effort pipeline stages",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
	}
}

func (m *Metrics) ObserveTrustEvaluation(entityType, riskLevel string, score int) {
	if m == nil {
		return
	}
	m.TrustEvaluations.WithLabelValues(entityType, riskLevel).Inc()
	m.TrustScore.WithLabelValues(entityType).Observe(float64(score))
}

func (m *Metrics) IncrementEnforcementTransition(outcome, actionType string) {
	if m == nil {
		return
	}
	m.EnforcementTransitions.WithLabelValues(outcome, actionType).Inc()
}

func (m *Metrics) IncrementAuthenticityScored(band string) {
	if m == nil {
		return
	}
	m.AuthenticityScored.WithLabelValues(band).Inc()
}

func (m *Metrics) IncrementReputationRefreshes() {
	if m == nil {
		return
	}
	m.ReputationRefreshes.Inc()
}

func (m *Metrics) IncrementEscalationsCreated(escalatedBy string) {
	if m == nil {
		return
	}
	m.EscalationsCreated.WithLabelValues(escalatedBy).Inc()
}

func (m *Metrics) IncrementStageFailure(stage string) {
	if m == nil {
		return
	}
	m.PipelineStageFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) ObserveStageDuration(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.PipelineStageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
