package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "verity/pkg/domain-errors"
)

// EscalatedBy identifies who raised an escalation case.
type EscalatedBy string

const (
	EscalatedByUser   EscalatedBy = "USER"
	EscalatedBySystem EscalatedBy = "SYSTEM"
	EscalatedByAdmin  EscalatedBy = "ADMIN"
)

// IsValid checks if the origin is one of the supported values.
func (e EscalatedBy) IsValid() bool {
	switch e {
	case EscalatedByUser, EscalatedBySystem, EscalatedByAdmin:
		return true
	}
	return false
}

// ParseEscalatedBy accepts either case.
func ParseEscalatedBy(s string) (EscalatedBy, error) {
	e := EscalatedBy(strings.ToUpper(strings.TrimSpace(s)))
	if !e.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid escalated_by: must be one of USER, SYSTEM, ADMIN")
	}
	return e, nil
}

// EscalationStatus is the lifecycle state of a case. Any status may follow any other.
type EscalationStatus string

const (
	StatusPending       EscalationStatus = "PENDING"
	StatusInvestigating EscalationStatus = "INVESTIGATING"
	StatusResolved      EscalationStatus = "RESOLVED"
	StatusReferred      EscalationStatus = "REFERRED"
)

// IsValid checks if the status is one of the supported values.
func (s EscalationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInvestigating, StatusResolved, StatusReferred:
		return true
	}
	return false
}

// ParseEscalationStatus accepts either case.
func ParseEscalationStatus(s string) (EscalationStatus, error) {
	st := EscalationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid status: must be one of PENDING, INVESTIGATING, RESOLVED, REFERRED")
	}
	return st, nil
}

// EscalationCase tracks the investigation of a single complaint.
type EscalationCase struct {
	ID            uuid.UUID        `json:"id"`
	ComplaintID   string           `json:"complaint_id"`
	EscalatedBy   EscalatedBy      `json:"escalated_by"`
	Reason        string           `json:"reason"`
	AIRiskSummary string           `json:"ai_risk_summary"`
	Status        EscalationStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// EscalationFilter narrows case listings. A zero value matches everything.
type EscalationFilter struct {
	Status EscalationStatus
	Limit  int
}
