package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthenticityBand is the risk bucket of a responder authenticity composite.
type AuthenticityBand string

const (
	BandLow    AuthenticityBand = "LOW"
	BandMedium AuthenticityBand = "MEDIUM"
	BandHigh   AuthenticityBand = "HIGH"
)

const (
	authenticityHighFloor   = 70.0
	authenticityMediumFloor = 40.0
)

// IsValid checks if the band is one of the supported values.
func (b AuthenticityBand) IsValid() bool {
	switch b {
	case BandLow, BandMedium, BandHigh:
		return true
	}
	return false
}

// BandForComposite buckets a 0-100 composite: >=70 HIGH, >=40 MEDIUM, else LOW.
func BandForComposite(composite float64) AuthenticityBand {
	switch {
	case composite >= authenticityHighFloor:
		return BandHigh
	case composite >= authenticityMediumFloor:
		return BandMedium
	default:
		return BandLow
	}
}

// RuleBreakdown explains how an authenticity composite was reached.
type RuleBreakdown struct {
	SenderDomain       string   `json:"sender_domain"`
	DomainVerified     bool     `json:"domain_verified"`
	HistoryCount       int      `json:"history_count"`
	Velocity           float64  `json:"velocity"`
	MaxSimilarity      float64  `json:"max_similarity"`
	LanguageFlags      []string `json:"language_flags"`
	BrandReputation    *float64 `json:"brand_reputation,omitempty"`
	WeightedIdentity   float64  `json:"weighted_identity"`
	WeightedBehavior   float64  `json:"weighted_behavior"`
	WeightedLanguage   float64  `json:"weighted_language"`
	WeightedReputation float64  `json:"weighted_reputation"`
}

// ResponderAuthenticityScore is the immutable assessment of a single business response.
type ResponderAuthenticityScore struct {
	ID              uuid.UUID        `json:"id"`
	ResponseID      string           `json:"response_id"`
	BusinessUserID  string           `json:"business_user_id"`
	BrandID         string           `json:"brand_id"`
	IdentityScore   float64          `json:"identity_score"`
	BehaviorScore   float64          `json:"behavior_score"`
	LanguageScore   float64          `json:"language_score"`
	ReputationScore float64          `json:"reputation_score"`
	CompositeScore  float64          `json:"composite_score"`
	RiskBand        AuthenticityBand `json:"risk_band"`
	RuleBreakdown   RuleBreakdown    `json:"rule_breakdown"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ResponseInput describes a business follow-up to be assessed.
type ResponseInput struct {
	ResponseID     string
	BusinessUserID string
	BrandID        string
	SenderEmail    string
	Text           string
}

// PriorResponse is a past response of the same business user.
type PriorResponse struct {
	ResponseID string
	Text       string
	CreatedAt  time.Time
}
