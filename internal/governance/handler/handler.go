// Package handler exposes the governance engines over HTTP: operator endpoints under
// /admin and event ingress for the complaint platform under /internal/events.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"verity/internal/governance/models"
	"verity/internal/governance/pipeline"
	"verity/internal/governance/service/enforcement"
	id "verity/pkg/domain"
	dErrors "verity/pkg/domain-errors"
	"verity/pkg/platform/httputil"
	"verity/pkg/requestcontext"
)

const maxHistoryLimit = 100

type TrustService interface {
	EvaluateEntityTrust(ctx context.Context, entityType models.EntityType, entityID string) (*models.TrustScore, error)
	Current(ctx context.Context, ref models.EntityRef) (*models.TrustScore, error)
	History(ctx context.Context, ref models.EntityRef, limit int) ([]*models.TrustScore, error)
}

type EnforcementService interface {
	ProcessEnforcement(ctx context.Context, entityType models.EntityType, entityID string) (*enforcement.Outcome, error)
	ListOpen(ctx context.Context, ref models.EntityRef) ([]*models.EnforcementAction, error)
	ListHistory(ctx context.Context, ref models.EntityRef) ([]*models.EnforcementAction, error)
}

type AuthenticityService interface {
	Get(ctx context.Context, responseID string) (*models.ResponderAuthenticityScore, error)
}

type ReputationService interface {
	Get(ctx context.Context, brandID string) (*models.ReputationScore, error)
	Refresh(ctx context.Context, brandID string) (*models.ReputationScore, error)
}

type EscalationService interface {
	CreateEscalation(ctx context.Context, complaintID string, escalatedBy models.EscalatedBy, reason string) (*models.EscalationCase, error)
	ResolveEscalation(ctx context.Context, caseID uuid.UUID, status models.EscalationStatus) (*models.EscalationCase, error)
	Get(ctx context.Context, caseID uuid.UUID) (*models.EscalationCase, error)
	List(ctx context.Context, filter models.EscalationFilter) ([]*models.EscalationCase, error)
}

// EventHook runs the best-effort governance chain behind platform events.
type EventHook interface {
	AfterFollowUp(ctx context.Context, ev pipeline.FollowUpEvent) *pipeline.Report
	AfterRating(ctx context.Context, ev pipeline.RatingEvent) *pipeline.Report
	AfterFlag(ctx context.Context, ev pipeline.FlagEvent) *pipeline.Report
}

// Services groups the collaborators of the handler.
type Services struct {
	Trust        TrustService
	Enforcement  EnforcementService
	Authenticity AuthenticityService
	Reputation   ReputationService
	Escalation   EscalationService
	Hook         EventHook
}

// Handler wires governance endpoints to the governance services.
type Handler struct {
	services Services
	logger   *slog.Logger
}

func New(services Services, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{services: services, logger: logger}
}

// Register mounts the admin and event endpoints. Callers protect the router with the
// admin token middleware.
func (h *Handler) Register(r chi.Router) {
	r.Route("/admin/governance", func(r chi.Router) {
		r.Get("/responses/{responseID}/authenticity", h.HandleGetAuthenticity)
		r.Get("/brands/{brandID}/reputation", h.HandleGetReputation)
		r.Post("/brands/{brandID}/reputation/refresh", h.HandleRefreshReputation)
		r.Get("/{entityType}/{entityID}/trust", h.HandleGetTrust)
		r.Post("/{entityType}/{entityID}/evaluate", h.HandleEvaluate)
		r.Get("/{entityType}/{entityID}/enforcement", h.HandleGetEnforcement)
	})
	r.Route("/admin/escalations", func(r chi.Router) {
		r.Post("/", h.HandleCreateEscalation)
		r.Get("/", h.HandleListEscalations)
		r.Get("/{caseID}", h.HandleGetEscalation)
		r.Patch("/{caseID}", h.HandleUpdateEscalation)
	})
	r.Route("/internal/events", func(r chi.Router) {
		r.Post("/follow-up", h.HandleFollowUpEvent)
		r.Post("/rating", h.HandleRatingEvent)
		r.Post("/flag", h.HandleFlagEvent)
	})
}

// HandleGetTrust handles GET /admin/governance/{entityType}/{entityID}/trust.
func (h *Handler) HandleGetTrust(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref, err := entityRefFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := historyLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	current, err := h.services.Trust.Current(ctx, ref)
	if err != nil {
		h.logFailure(ctx, "failed to load trust score", err, "entity", ref.Key())
		httputil.WriteError(w, err)
		return
	}
	resp := TrustResponse{Current: current}
	if limit > 0 {
		resp.History, err = h.services.Trust.History(ctx, ref, limit)
		if err != nil {
			h.logFailure(ctx, "failed to load trust history", err, "entity", ref.Key())
			httputil.WriteError(w, err)
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleEvaluate handles POST /admin/governance/{entityType}/{entityID}/evaluate.
// Unlike the event hook it reports failures to the caller.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	ref, err := entityRefFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	score, err := h.services.Trust.EvaluateEntityTrust(ctx, ref.Type, ref.ID)
	if err != nil {
		h.logFailure(ctx, "trust evaluation failed", err, "entity", ref.Key())
		httputil.WriteError(w, err)
		return
	}
	outcome, err := h.services.Enforcement.ProcessEnforcement(ctx, ref.Type, ref.ID)
	if err != nil {
		h.logFailure(ctx, "enforcement failed", err, "entity", ref.Key())
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "entity evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"entity", ref.Key(),
		"score", score.Score,
		"risk_level", score.RiskLevel,
		"enforcement", outcome.Result,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, EvaluateResponse{TrustScore: score, Enforcement: outcome})
}

// HandleGetEnforcement handles GET /admin/governance/{entityType}/{entityID}/enforcement.
func (h *Handler) HandleGetEnforcement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref, err := entityRefFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	open, err := h.services.Enforcement.ListOpen(ctx, ref)
	if err != nil {
		h.logFailure(ctx, "failed to list open enforcement actions", err, "entity", ref.Key())
		httputil.WriteError(w, err)
		return
	}
	history, err := h.services.Enforcement.ListHistory(ctx, ref)
	if err != nil {
		h.logFailure(ctx, "failed to list enforcement history", err, "entity", ref.Key())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, EnforcementResponse{Open: nonNil(open), History: nonNil(history)})
}

// HandleGetAuthenticity handles GET /admin/governance/responses/{responseID}/authenticity.
func (h *Handler) HandleGetAuthenticity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	responseID, err := id.ParseExternalID("response_id", chi.URLParam(r, "responseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	score, err := h.services.Authenticity.Get(ctx, responseID.String())
	if err != nil {
		h.logFailure(ctx, "failed to load authenticity score", err, "response_id", responseID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, score)
}

// HandleGetReputation handles GET /admin/governance/brands/{brandID}/reputation.
func (h *Handler) HandleGetReputation(w http.ResponseWriter, r *http.Request) {
	h.serveReputation(w, r, h.services.Reputation.Get, "failed to load reputation")
}

// HandleRefreshReputation handles POST /admin/governance/brands/{brandID}/reputation/refresh.
func (h *Handler) HandleRefreshReputation(w http.ResponseWriter, r *http.Request) {
	h.serveReputation(w, r, h.services.Reputation.Refresh, "failed to refresh reputation")
}

func (h *Handler) serveReputation(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (*models.ReputationScore, error), failure string) {
	ctx := r.Context()
	brandID, err := id.ParseExternalID("brand_id", chi.URLParam(r, "brandID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	score, err := fn(ctx, brandID.String())
	if err != nil {
		h.logFailure(ctx, failure, err, "brand_id", brandID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, score)
}

// HandleCreateEscalation handles POST /admin/escalations.
func (h *Handler) HandleCreateEscalation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateEscalationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	c, err := h.services.Escalation.CreateEscalation(ctx, req.ComplaintID, models.EscalatedByAdmin, req.Reason)
	if err != nil {
		h.logFailure(ctx, "failed to create escalation", err, "complaint_id", req.ComplaintID)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "escalation requested",
		"request_id", requestID,
		"complaint_id", c.ComplaintID,
		"case_id", c.ID,
		"status", c.Status,
	)
	httputil.WriteJSON(w, http.StatusCreated, c)
}

// HandleListEscalations handles GET /admin/escalations?status=&limit=.
func (h *Handler) HandleListEscalations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var filter models.EscalationFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseEscalationStatus(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.Status = status
	}
	limit, err := historyLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	filter.Limit = limit

	cases, err := h.services.Escalation.List(ctx, filter)
	if err != nil {
		h.logFailure(ctx, "failed to list escalations", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, EscalationListResponse{Cases: nonNil(cases)})
}

// HandleGetEscalation handles GET /admin/escalations/{caseID}.
func (h *Handler) HandleGetEscalation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caseID, err := id.ParseCaseID(chi.URLParam(r, "caseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.services.Escalation.Get(ctx, caseID)
	if err != nil {
		h.logFailure(ctx, "failed to load escalation", err, "case_id", caseID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

// HandleUpdateEscalation handles PATCH /admin/escalations/{caseID}.
func (h *Handler) HandleUpdateEscalation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caseID, err := id.ParseCaseID(chi.URLParam(r, "caseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateEscalationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	c, err := h.services.Escalation.ResolveEscalation(ctx, caseID, req.ParsedStatus())
	if err != nil {
		h.logFailure(ctx, "failed to update escalation", err, "case_id", caseID)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "escalation status updated",
		"request_id", requestID,
		"case_id", caseID,
		"status", c.Status,
	)
	httputil.WriteJSON(w, http.StatusOK, c)
}

// HandleFollowUpEvent handles POST /internal/events/follow-up.
func (h *Handler) HandleFollowUpEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[FollowUpEventRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.writeReport(ctx, w, "follow-up", h.services.Hook.AfterFollowUp(ctx, req.Event()))
}

// HandleRatingEvent handles POST /internal/events/rating.
func (h *Handler) HandleRatingEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RatingEventRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.writeReport(ctx, w, "rating", h.services.Hook.AfterRating(ctx, req.Event()))
}

// HandleFlagEvent handles POST /internal/events/flag.
func (h *Handler) HandleFlagEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[FlagEventRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.writeReport(ctx, w, "flag", h.services.Hook.AfterFlag(ctx, req.Event()))
}

// writeReport always answers 202: stage failures never fail the triggering write.
func (h *Handler) writeReport(ctx context.Context, w http.ResponseWriter, event string, report *pipeline.Report) {
	h.logger.InfoContext(ctx, "governance event processed",
		"request_id", requestcontext.RequestID(ctx),
		"event", event,
		"failures", len(report.Failures),
	)
	httputil.WriteJSON(w, http.StatusAccepted, report)
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, kv ...any) {
	args := append([]any{"request_id", requestcontext.RequestID(ctx), "error", err}, kv...)
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.InfoContext(ctx, msg, args...)
}

func entityRefFromPath(r *http.Request) (models.EntityRef, error) {
	entityType, err := models.ParseEntityType(chi.URLParam(r, "entityType"))
	if err != nil {
		return models.EntityRef{}, err
	}
	entityID, err := id.ParseExternalID("entity_id", chi.URLParam(r, "entityID"))
	if err != nil {
		return models.EntityRef{}, err
	}
	return models.EntityRef{Type: entityType, ID: entityID.String()}, nil
}

// historyLimit reads ?history= or ?limit=. Absent means 0.
func historyLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("history")
	if raw == "" {
		raw = r.URL.Query().Get("limit")
	}
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "limit must be a non-negative integer")
	}
	return min(n, maxHistoryLimit), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
