package models

import (
	"time"

	"github.com/google/uuid"
)

// Trust score bounds and banding thresholds.
const (
	TrustBaseline = 100
	TrustMin      = 0
	TrustMax      = 100

	trustLowRiskFloor    = 80
	trustMediumRiskFloor = 60
	trustHighRiskFloor   = 40
)

// RiskLevel is the coarse bucket derived from a trust score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// IsValid checks if the risk level is one of the supported values.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// RiskLevelForScore bands a trust score: >=80 LOW, >=60 MEDIUM, >=40 HIGH, else CRITICAL.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= trustLowRiskFloor:
		return RiskLow
	case score >= trustMediumRiskFloor:
		return RiskMedium
	case score >= trustHighRiskFloor:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// ClampTrust bounds a raw trust computation to [0,100].
func ClampTrust(score int) int {
	if score < TrustMin {
		return TrustMin
	}
	if score > TrustMax {
		return TrustMax
	}
	return score
}

// TrustScore is one immutable entry of the trust log. The current trust of an entity
// is the entry with the greatest (EvaluatedAt, Seq).
type TrustScore struct {
	ID          uuid.UUID      `json:"id"`
	Seq         int64          `json:"seq"`
	EntityType  EntityType     `json:"entity_type"`
	EntityID    string         `json:"entity_id"`
	Score       int            `json:"score"`
	RiskLevel   RiskLevel      `json:"risk_level"`
	EvaluatedAt time.Time      `json:"evaluated_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Ref returns the entity the score belongs to.
func (t *TrustScore) Ref() EntityRef {
	return EntityRef{Type: t.EntityType, ID: t.EntityID}
}

// NewerThan orders trust entries by evaluation time, breaking ties by insertion sequence.
func (t *TrustScore) NewerThan(other *TrustScore) bool {
	if other == nil {
		return true
	}
	if !t.EvaluatedAt.Equal(other.EvaluatedAt) {
		return t.EvaluatedAt.After(other.EvaluatedAt)
	}
	return t.Seq > other.Seq
}
