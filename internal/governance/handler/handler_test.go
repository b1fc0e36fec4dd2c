package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"verity/internal/governance/models"
	"verity/internal/governance/pipeline"
	"verity/internal/governance/service/authenticity"
	"verity/internal/governance/service/enforcement"
	"verity/internal/governance/service/escalation"
	"verity/internal/governance/service/reputation"
	"verity/internal/governance/service/trust"
	authenticityStore "verity/internal/governance/store/authenticity"
	"verity/internal/governance/store/directory"
	enforcementStore "verity/internal/governance/store/enforcement"
	escalationStore "verity/internal/governance/store/escalation"
	reputationStore "verity/internal/governance/store/reputation"
	"verity/internal/governance/store/trustscore"
	"verity/pkg/platform/middleware/admin"
	"verity/pkg/testutil"
)

const adminToken = "secret-token"

type HandlerSuite struct {
	suite.Suite
	directory *directory.InMemoryStore
	router    http.Handler
	now       time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.now = time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)
	s.directory = directory.NewInMemoryStore()
	authStore := authenticityStore.NewInMemoryStore()
	repStore := reputationStore.NewInMemoryStore()
	trustLog := trustscore.NewInMemoryStore()

	authSvc, err := authenticity.New(s.directory, s.directory, repStore, authStore)
	s.Require().NoError(err)
	repSvc, err := reputation.New(s.directory, repStore)
	s.Require().NoError(err)
	trustSvc, err := trust.New(s.directory, s.directory, authStore, trustLog)
	s.Require().NoError(err)
	enforcementSvc, err := enforcement.New(trustLog, enforcementStore.NewInMemoryStore())
	s.Require().NoError(err)
	escalationSvc, err := escalation.New(escalationStore.NewInMemoryStore())
	s.Require().NoError(err)
	hook, err := pipeline.New(trustSvc, enforcementSvc,
		pipeline.WithAuthenticity(authSvc),
		pipeline.WithReputation(repSvc),
		pipeline.WithEscalation(escalationSvc),
	)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := New(Services{
		Trust:        trustSvc,
		Enforcement:  enforcementSvc,
		Authenticity: authSvc,
		Reputation:   repSvc,
		Escalation:   escalationSvc,
		Hook:         hook,
	}, logger)

	r := chi.NewRouter()
	r.Use(admin.RequireAdminToken(adminToken, logger))
	h.Register(r)
	s.router = r

	s.directory.PutBrand("acme", "mgr-1", "acme.com")
	for i := range 10 {
		status := models.ComplaintOpen
		if i < 2 {
			status = models.ComplaintResolved
		}
		s.directory.PutComplaint(fmt.Sprintf("c-%d", i), "acme", fmt.Sprintf("u-%d", i), status)
	}
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	req = testutil.WithFixedTime(testutil.WithAdminToken(req, adminToken), s.now)
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) TestAdminTokenRequired() {
	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/escalations", nil)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
}

// =============================================================================
// Trust & Enforcement
// =============================================================================

func (s *HandlerSuite) TestEvaluateAndRead() {
	s.Run("evaluate scores and enforces", func() {
		rr := s.do(http.MethodPost, "/admin/governance/brand/acme/evaluate", nil)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

		resp := testutil.UnmarshalResponse[EvaluateResponse](s.T(), rr)
		s.Equal(60, resp.TrustScore.Score)
		s.Equal(models.RiskMedium, resp.TrustScore.RiskLevel)
		s.Equal(enforcement.ResultCreated, resp.Enforcement.Result)
		s.Equal(models.ActionWarning, resp.Enforcement.Created.ActionType)
	})

	s.Run("trust with history", func() {
		rr := s.do(http.MethodGet, "/admin/governance/BRAND/acme/trust?history=5", nil)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

		resp := testutil.UnmarshalResponse[TrustResponse](s.T(), rr)
		s.Equal(60, resp.Current.Score)
		s.Len(resp.History, 1)
	})

	s.Run("enforcement lists open and history", func() {
		rr := s.do(http.MethodGet, "/admin/governance/brand/acme/enforcement", nil)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

		resp := testutil.UnmarshalResponse[EnforcementResponse](s.T(), rr)
		s.Require().Len(resp.Open, 1)
		s.Equal(models.ActionWarning, resp.Open[0].ActionType)
		s.Len(resp.History, 1)
	})
}

func (s *HandlerSuite) TestTrustErrors() {
	s.Run("unknown entity type", func() {
		rr := s.do(http.MethodGet, "/admin/governance/company/acme/trust", nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("never evaluated", func() {
		rr := s.do(http.MethodGet, "/admin/governance/user/u-1/trust", nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("bad history limit", func() {
		rr := s.do(http.MethodGet, "/admin/governance/user/u-1/trust?history=-1", nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("unknown brand cannot be evaluated", func() {
		rr := s.do(http.MethodPost, "/admin/governance/brand/ghost/evaluate", nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("empty enforcement lists are arrays", func() {
		rr := s.do(http.MethodGet, "/admin/governance/user/u-1/enforcement", nil)
		s.Require().Equal(http.StatusOK, rr.Code)
		s.JSONEq(`{"open":[],"history":[]}`, rr.Body.String())
	})
}

// =============================================================================
// Reputation & Authenticity
// =============================================================================

func (s *HandlerSuite) TestReputation() {
	rr := s.do(http.MethodGet, "/admin/governance/brands/acme/reputation", nil)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")

	rr = s.do(http.MethodPost, "/admin/governance/brands/acme/reputation/refresh", nil)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	refreshed := testutil.UnmarshalResponse[models.ReputationScore](s.T(), rr)
	s.Equal("acme", refreshed.BrandID)
	s.Equal(s.now, refreshed.UpdatedAt)

	rr = s.do(http.MethodGet, "/admin/governance/brands/acme/reputation", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.do(http.MethodPost, "/admin/governance/brands/ghost/reputation/refresh", nil)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestFollowUpEventAndAuthenticity() {
	rr := s.do(http.MethodPost, "/internal/events/follow-up", map[string]string{
		"response_id":      "r-1",
		"business_user_id": "mgr-1",
		"brand_id":         "acme",
		"sender_email":     "care@acme.com",
		"text":             "We have refunded your order.",
	})
	s.Require().Equal(http.StatusAccepted, rr.Code, rr.Body.String())

	report := testutil.UnmarshalResponse[pipeline.Report](s.T(), rr)
	s.Empty(report.Failures)
	s.Require().NotNil(report.Authenticity)
	s.Require().Len(report.Trust, 1)
	s.Equal(60, report.Trust[0].Score)

	rr = s.do(http.MethodGet, "/admin/governance/responses/r-1/authenticity", nil)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	score := testutil.UnmarshalResponse[models.ResponderAuthenticityScore](s.T(), rr)
	s.Equal(models.BandLow, score.RiskBand)
	s.True(score.RuleBreakdown.DomainVerified)

	rr = s.do(http.MethodGet, "/admin/governance/responses/r-404/authenticity", nil)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestEventStageFailuresStillAccepted() {
	rr := s.do(http.MethodPost, "/internal/events/follow-up", map[string]string{"brand_id": "ghost"})
	s.Require().Equal(http.StatusAccepted, rr.Code)

	report := testutil.UnmarshalResponse[pipeline.Report](s.T(), rr)
	s.NotEmpty(report.Failures)
	s.Empty(report.Enforcement)
}

func (s *HandlerSuite) TestRatingEvent() {
	s.directory.PutRating("c-0", "acme", 1)

	rr := s.do(http.MethodPost, "/internal/events/rating", map[string]any{
		"complaint_id":     "c-0",
		"brand_id":         "acme",
		"user_id":          "u-0",
		"rating":           1,
		"complaint_status": "resolved",
	})
	s.Require().Equal(http.StatusAccepted, rr.Code, rr.Body.String())
	report := testutil.UnmarshalResponse[pipeline.Report](s.T(), rr)
	s.Empty(report.Failures)
	s.Require().NotNil(report.Escalation)
	s.Equal(models.EscalatedBySystem, report.Escalation.EscalatedBy)

	rr = s.do(http.MethodPost, "/internal/events/rating", map[string]any{
		"complaint_id": "c-0", "brand_id": "acme", "user_id": "u-0", "rating": 9,
	})
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
}

// =============================================================================
// Escalations
// =============================================================================

func (s *HandlerSuite) TestEscalationLifecycle() {
	rr := s.do(http.MethodPost, "/admin/escalations", map[string]string{"complaint_id": "c-3", "reason": "suspected fake resolution"})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	created := testutil.UnmarshalResponse[models.EscalationCase](s.T(), rr)
	s.Equal(models.EscalatedByAdmin, created.EscalatedBy)
	s.Equal(models.StatusPending, created.Status)

	s.Run("flag on the same complaint returns the admin case", func() {
		rr := s.do(http.MethodPost, "/internal/events/flag", map[string]string{"complaint_id": "c-3", "reason": "please look"})
		s.Require().Equal(http.StatusAccepted, rr.Code)
		report := testutil.UnmarshalResponse[pipeline.Report](s.T(), rr)
		s.Equal(created.ID, report.Escalation.ID)
	})

	s.Run("get", func() {
		rr := s.do(http.MethodGet, "/admin/escalations/"+created.ID.String(), nil)
		s.Require().Equal(http.StatusOK, rr.Code)
		got := testutil.UnmarshalResponse[models.EscalationCase](s.T(), rr)
		s.Equal("c-3", got.ComplaintID)
	})

	s.Run("patch overwrites status", func() {
		rr := s.do(http.MethodPatch, "/admin/escalations/"+created.ID.String(), map[string]string{"status": "referred"})
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
		got := testutil.UnmarshalResponse[models.EscalationCase](s.T(), rr)
		s.Equal(models.StatusReferred, got.Status)
	})

	s.Run("list filters by status", func() {
		rr := s.do(http.MethodGet, "/admin/escalations?status=REFERRED", nil)
		s.Require().Equal(http.StatusOK, rr.Code)
		list := testutil.UnmarshalResponse[EscalationListResponse](s.T(), rr)
		s.Len(list.Cases, 1)

		rr = s.do(http.MethodGet, "/admin/escalations?status=PENDING", nil)
		s.Require().Equal(http.StatusOK, rr.Code)
		s.JSONEq(`{"cases":[]}`, rr.Body.String())
	})
}

func (s *HandlerSuite) TestEscalationErrors() {
	s.Run("invalid case id", func() {
		rr := s.do(http.MethodGet, "/admin/escalations/not-a-uuid", nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("unknown case", func() {
		rr := s.do(http.MethodPatch, "/admin/escalations/"+uuid.NewString(), map[string]string{"status": "RESOLVED"})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("invalid status", func() {
		rr := s.do(http.MethodPatch, "/admin/escalations/"+uuid.NewString(), map[string]string{"status": "CLOSED"})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("unknown field", func() {
		rr := s.do(http.MethodPost, "/admin/escalations", map[string]string{"complaint_id": "c-1", "reason": "x", "escalated_by": "USER"})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("invalid list filter", func() {
		rr := s.do(http.MethodGet, "/admin/escalations?status=OPEN", nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}
