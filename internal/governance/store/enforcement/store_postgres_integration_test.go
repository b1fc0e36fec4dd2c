//go:build integration

package enforcement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"verity/internal/governance/models"
	"verity/internal/governance/store/enforcement"
	"verity/internal/governance/store/schema"
	"verity/pkg/platform/sentinel"
	txcontext "verity/pkg/platform/tx"
	"verity/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *enforcement.PostgresStore
	ref      models.EntityRef
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
	s.store = enforcement.NewPostgres(s.postgres.DB)
	s.ref = models.EntityRef{Type: models.EntityBrand, ID: "acme"}
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "enforcement_actions"))
}

func (s *PostgresStoreSuite) newAction(actionType models.ActionType, at time.Time) *models.EnforcementAction {
	return &models.EnforcementAction{
		ID:          uuid.New(),
		EntityType:  s.ref.Type,
		EntityID:    s.ref.ID,
		ActionType:  actionType,
		Reason:      "Automated enforcement",
		TriggeredBy: models.TriggeredBySystem,
		CreatedAt:   at,
	}
}

func (s *PostgresStoreSuite) TestLifecycle() {
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	warning := s.newAction(models.ActionWarning, at)
	rateLimit := s.newAction(models.ActionRateLimit, at.Add(time.Minute))
	s.Require().NoError(s.store.Create(ctx, warning))
	s.Require().NoError(s.store.Create(ctx, rateLimit))
	s.ErrorIs(s.store.Create(ctx, warning), sentinel.ErrConflict)

	open, err := s.store.ListOpen(ctx, s.ref)
	s.Require().NoError(err)
	s.Require().Len(open, 2)
	s.Equal(rateLimit.ID, open[0].ID)

	resolved, err := s.store.Resolve(ctx, warning.ID, at.Add(time.Hour))
	s.Require().NoError(err)
	s.Require().NotNil(resolved.ResolvedAt)

	again, err := s.store.Resolve(ctx, warning.ID, at.Add(2*time.Hour))
	s.Require().NoError(err)
	s.True(again.ResolvedAt.Equal(at.Add(time.Hour)))

	open, err = s.store.ListOpen(ctx, s.ref)
	s.Require().NoError(err)
	s.Len(open, 1)

	all, err := s.store.ListByEntity(ctx, s.ref)
	s.Require().NoError(err)
	s.Len(all, 2)

	_, err = s.store.Resolve(ctx, uuid.New(), at)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestWritesJoinRunnerTransaction() {
	ctx := context.Background()
	runner := txcontext.NewRunner(s.postgres.DB)
	at := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

	s.Run("rollback discards the create", func() {
		err := runner.RunInTx(ctx, func(ctx context.Context) error {
			s.Require().NoError(s.store.Create(ctx, s.newAction(models.ActionWarning, at)))
			return errors.New("abort")
		})
		s.EqualError(err, "abort")

		open, err := s.store.ListOpen(ctx, s.ref)
		s.Require().NoError(err)
		s.Empty(open)
	})

	s.Run("commit keeps create and resolve together", func() {
		first := s.newAction(models.ActionWarning, at)
		s.Require().NoError(s.store.Create(ctx, first))

		err := runner.RunInTx(ctx, func(ctx context.Context) error {
			if err := s.store.Create(ctx, s.newAction(models.ActionRateLimit, at.Add(time.Minute))); err != nil {
				return err
			}
			_, err := s.store.Resolve(ctx, first.ID, at.Add(time.Minute))
			return err
		})
		s.Require().NoError(err)

		open, err := s.store.ListOpen(ctx, s.ref)
		s.Require().NoError(err)
		s.Require().Len(open, 1)
		s.Equal(models.ActionRateLimit, open[0].ActionType)
	})
}
