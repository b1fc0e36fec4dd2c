//go:build integration

package escalation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"verity/internal/governance/models"
	"verity/internal/governance/store/escalation"
	"verity/internal/governance/store/schema"
	"verity/pkg/platform/sentinel"
	"verity/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *escalation.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(schema.Apply(context.Background(), s.postgres.DB))
	s.store = escalation.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "escalation_cases"))
}

func (s *PostgresStoreSuite) TestLifecycle() {
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	newCase := func(reason string) *models.EscalationCase {
		return &models.EscalationCase{
			ID:            uuid.New(),
			ComplaintID:   "c-1",
			EscalatedBy:   models.EscalatedByAdmin,
			Reason:        reason,
			AIRiskSummary: "summary",
			Status:        models.StatusPending,
			CreatedAt:     at,
			UpdatedAt:     at,
		}
	}

	first, created, err := s.store.CreateIfAbsent(ctx, newCase("first"))
	s.Require().NoError(err)
	s.True(created)

	second, created, err := s.store.CreateIfAbsent(ctx, newCase("second"))
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, second.ID)
	s.Equal("first", second.Reason)

	updated, err := s.store.UpdateStatus(ctx, first.ID, models.StatusResolved, at.Add(time.Hour))
	s.Require().NoError(err)
	s.Equal(models.StatusResolved, updated.Status)

	resolved, err := s.store.List(ctx, models.EscalationFilter{Status: models.StatusResolved})
	s.Require().NoError(err)
	s.Len(resolved, 1)

	pending, err := s.store.List(ctx, models.EscalationFilter{Status: models.StatusPending})
	s.Require().NoError(err)
	s.Empty(pending)

	_, err = s.store.FindByID(ctx, uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
