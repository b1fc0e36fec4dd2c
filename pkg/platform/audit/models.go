package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events so sinks can route and retain them differently.
type EventCategory string

const (
	// CategoryGovernance covers automated consequences attached to an entity.
	// These drive moderation reviews and must be traceable to the score that caused them.
	CategoryGovernance EventCategory = "governance"

	// CategoryCase covers escalation case lifecycle changes.
	CategoryCase EventCategory = "case"

	// CategoryOperations covers routine evaluations useful for debugging and dashboards.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from governance services to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string
	Category  EventCategory
	Timestamp time.Time
	// Subject identifies the entity acted on, e.g. "BRAND:acme" or "complaint:123".
	Subject   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
	// ActorID is the operator or system component that caused the action.
	ActorID    string
	Attributes map[string]string
}

type AuditEvent string

const (
	EventTrustEvaluated          AuditEvent = "trust_evaluated"
	EventAuthenticityScored      AuditEvent = "authenticity_scored"
	EventReputationRefreshed     AuditEvent = "reputation_refreshed"
	EventEnforcementCreated      AuditEvent = "enforcement_created"
	EventEnforcementResolved     AuditEvent = "enforcement_resolved"
	EventEscalationCreated       AuditEvent = "escalation_created"
	EventEscalationStatusChanged AuditEvent = "escalation_status_changed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventEnforcementCreated:  CategoryGovernance,
	EventEnforcementResolved: CategoryGovernance,

	EventEscalationCreated:       CategoryCase,
	EventEscalationStatusChanged: CategoryCase,

	EventTrustEvaluated:      CategoryOperations,
	EventAuthenticityScored:  CategoryOperations,
	EventReputationRefreshed: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
