package handler

import (
	"verity/internal/governance/models"
	"verity/internal/governance/service/enforcement"
)

// TrustResponse is the body of GET .../trust. History is present when requested.
type TrustResponse struct {
	Current *models.TrustScore   `json:"current"`
	History []*models.TrustScore `json:"history,omitempty"`
}

// EvaluateResponse is the body of POST .../evaluate.
type EvaluateResponse struct {
	TrustScore  *models.TrustScore   `json:"trust_score"`
	Enforcement *enforcement.Outcome `json:"enforcement"`
}

// EnforcementResponse is the body of GET .../enforcement.
type EnforcementResponse struct {
	Open    []*models.EnforcementAction `json:"open"`
	History []*models.EnforcementAction `json:"history"`
}

type EscalationListResponse struct {
	Cases []*models.EscalationCase `json:"cases"`
}
