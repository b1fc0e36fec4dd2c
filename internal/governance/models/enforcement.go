package models

import (
	"time"

	"github.com/google/uuid"
)

// TriggeredBySystem marks actions created by the governance engine.
const TriggeredBySystem = "SYSTEM_GOVERNANCE_ENGINE"

// ActionType is an automated consequence tier.
type ActionType string

const (
	ActionWarning         ActionType = "WARNING"
	ActionRateLimit       ActionType = "RATE_LIMIT"
	ActionReviewRequired  ActionType = "REVIEW_REQUIRED"
	ActionTempRestriction ActionType = "TEMP_RESTRICTION"
)

// IsValid checks if the action type is one of the supported tiers.
func (a ActionType) IsValid() bool {
	switch a {
	case ActionWarning, ActionRateLimit, ActionReviewRequired, ActionTempRestriction:
		return true
	}
	return false
}

// Tier lower bounds, inclusive. Scores at or above enforcementFreeFloor carry no action.
const (
	enforcementFreeFloor      = 80
	enforcementWarningFloor   = 60
	enforcementRateLimitFloor = 40
	enforcementReviewFloor    = 20
)

// EnforcementTypeForScore maps a trust score to its target tier. ok is false when the
// score warrants no enforcement.
//
//	>=80 none, [60,80) WARNING, [40,60) RATE_LIMIT, [20,40) REVIEW_REQUIRED, <20 TEMP_RESTRICTION
func EnforcementTypeForScore(score int) (action ActionType, ok bool) {
	switch {
	case score >= enforcementFreeFloor:
		return "", false
	case score >= enforcementWarningFloor:
		return ActionWarning, true
	case score >= enforcementRateLimitFloor:
		return ActionRateLimit, true
	case score >= enforcementReviewFloor:
		return ActionReviewRequired, true
	default:
		return ActionTempRestriction, true
	}
}

// EnforcementAction is an automated consequence attached to an entity. It is open
// while ResolvedAt is nil.
type EnforcementAction struct {
	ID          uuid.UUID  `json:"id"`
	EntityType  EntityType `json:"entity_type"`
	EntityID    string     `json:"entity_id"`
	ActionType  ActionType `json:"action_type"`
	Reason      string     `json:"reason"`
	TriggeredBy string     `json:"triggered_by"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// IsOpen reports whether the action has not been resolved.
func (a *EnforcementAction) IsOpen() bool {
	return a.ResolvedAt == nil
}

// Ref returns the entity the action is attached to.
func (a *EnforcementAction) Ref() EntityRef {
	return EntityRef{Type: a.EntityType, ID: a.EntityID}
}
