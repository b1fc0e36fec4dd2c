// Package ports defines the collaborators of the governance services.
// Read-only ports belong to the complaint platform; store ports are owned by this module
// and split by write discipline.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"verity/internal/governance/models"
	"verity/pkg/attrs"
	"verity/pkg/platform/audit"
	"verity/pkg/requestcontext"
)

// AuditPublisher emits audit events for governance decisions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// StatsReader exposes complaint and rating aggregates. Unknown entities return sentinel.ErrNotFound.
type StatsReader interface {
	BrandComplaintStats(ctx context.Context, brandID string) (models.BrandComplaintStats, error)
	UserComplaintStats(ctx context.Context, userID string) (models.UserComplaintStats, error)
	BrandRatingStats(ctx context.Context, brandID string) (models.BrandRatingStats, error)
	PlatformRatingMean(ctx context.Context) (float64, error)
}

// BrandDirectory exposes brand identity data.
type BrandDirectory interface {
	// VerifiedDomains returns the email domains the brand has proven ownership of.
	VerifiedDomains(ctx context.Context, brandID string) ([]string, error)

	// ManagerID returns the business user who responds on behalf of the brand.
	ManagerID(ctx context.Context, brandID string) (string, error)
}

// ResponseHistory exposes past business responses.
type ResponseHistory interface {
	// RecentResponses returns up to limit responses by the business user, newest first,
	// excluding excludeResponseID.
	RecentResponses(ctx context.Context, businessUserID, excludeResponseID string, limit int) ([]models.PriorResponse, error)
}

// TrustScoreLog is append-only. Entries are never updated or deleted.
type TrustScoreLog interface {
	// Append stores score and assigns its Seq.
	Append(ctx context.Context, score *models.TrustScore) error

	// Latest returns the entry with the greatest (EvaluatedAt, Seq), or sentinel.ErrNotFound.
	Latest(ctx context.Context, ref models.EntityRef) (*models.TrustScore, error)

	// List returns up to limit entries newest first. limit <= 0 returns all.
	List(ctx context.Context, ref models.EntityRef, limit int) ([]*models.TrustScore, error)
}

// ReputationStore holds one mutable row per brand.
type ReputationStore interface {
	// Upsert replaces the brand's row.
	Upsert(ctx context.Context, score *models.ReputationScore) error

	// Get returns the brand's row, or sentinel.ErrNotFound.
	Get(ctx context.Context, brandID string) (*models.ReputationScore, error)
}

// EnforcementStore persists enforcement actions.
type EnforcementStore interface {
	Create(ctx context.Context, action *models.EnforcementAction) error

	// Resolve stamps resolvedAt on an open action and returns it. Already resolved
	// actions are returned unchanged. Unknown ids return sentinel.ErrNotFound.
	Resolve(ctx context.Context, id uuid.UUID, resolvedAt time.Time) (*models.EnforcementAction, error)

	// ListOpen returns the entity's unresolved actions, most recently created first.
	ListOpen(ctx context.Context, ref models.EntityRef) ([]*models.EnforcementAction, error)

	// ListByEntity returns every action of the entity, most recently created first.
	ListByEntity(ctx context.Context, ref models.EntityRef) ([]*models.EnforcementAction, error)
}

// AuthenticityStore persists responder authenticity scores, one per response.
type AuthenticityStore interface {
	// CreateIfAbsent stores score unless one exists for the same response id, in which
	// case the existing record is returned with created=false.
	CreateIfAbsent(ctx context.Context, score *models.ResponderAuthenticityScore) (stored *models.ResponderAuthenticityScore, created bool, err error)

	// GetByResponse returns the score of a response, or sentinel.ErrNotFound.
	GetByResponse(ctx context.Context, responseID string) (*models.ResponderAuthenticityScore, error)

	// CountByBand counts the business user's scores in band.
	CountByBand(ctx context.Context, businessUserID string, band models.AuthenticityBand) (int, error)
}

// EscalationStore persists escalation cases, one per complaint.
type EscalationStore interface {
	// CreateIfAbsent stores c unless a case exists for the same complaint, in which case
	// the existing case is returned with created=false.
	CreateIfAbsent(ctx context.Context, c *models.EscalationCase) (stored *models.EscalationCase, created bool, err error)

	FindByID(ctx context.Context, id uuid.UUID) (*models.EscalationCase, error)
	FindByComplaint(ctx context.Context, complaintID string) (*models.EscalationCase, error)

	// UpdateStatus overwrites the status and returns the updated case.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.EscalationStatus, updatedAt time.Time) (*models.EscalationCase, error)

	// List returns cases newest first.
	List(ctx context.Context, filter models.EscalationFilter) ([]*models.EscalationCase, error)
}

// LogAudit logs an audit event to the structured logger and, when configured, emits
// it to the audit publisher. "subject", "decision" and "reason" attrs populate the
// matching event fields; every attr is copied into Attributes.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, event audit.AuditEvent, attrList ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attrList = append(attrList, "request_id", requestID)
	}

	if logger != nil {
		args := append(attrList, "event", string(event), "log_type", "audit")
		logger.InfoContext(ctx, string(event), args...)
	}

	if publisher == nil {
		return
	}
	err := publisher.Emit(ctx, audit.Event{
		Category:   event.Category(),
		Timestamp:  requestcontext.Now(ctx),
		Subject:    attrs.ExtractString(attrList, "subject"),
		Action:     string(event),
		Decision:   attrs.ExtractString(attrList, "decision"),
		Reason:     attrs.ExtractString(attrList, "reason"),
		RequestID:  requestID,
		ActorID:    actorOrSystem(ctx),
		Attributes: attrs.ToStringMap(attrList),
	})
	if err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}

func actorOrSystem(ctx context.Context) string {
	if actor := requestcontext.ActorID(ctx); actor != "" {
		return actor
	}
	return models.TriggeredBySystem
}
