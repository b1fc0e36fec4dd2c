package enforcement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"verity/internal/governance/config"
	"verity/internal/governance/models"
	"verity/internal/governance/ports/mocks"
	enforcementStore "verity/internal/governance/store/enforcement"
	"verity/internal/governance/store/trustscore"
	dErrors "verity/pkg/domain-errors"
	"verity/pkg/testutil"
)

func TestGetEnforcementType(t *testing.T) {
	tests := []struct {
		score  int
		want   models.ActionType
		wantOK bool
	}{
		{80, "", false},
		{79, models.ActionWarning, true},
		{60, models.ActionWarning, true},
		{59, models.ActionRateLimit, true},
		{40, models.ActionRateLimit, true},
		{39, models.ActionReviewRequired, true},
		{20, models.ActionReviewRequired, true},
		{19, models.ActionTempRestriction, true},
		{0, models.ActionTempRestriction, true},
	}
	for _, tt := range tests {
		got, ok := GetEnforcementType(tt.score)
		assert.Equal(t, tt.wantOK, ok, "score %d", tt.score)
		assert.Equal(t, tt.want, got, "score %d", tt.score)
	}
}

// =============================================================================
// Enforcement Service Test Suite
// =============================================================================

type EnforcementSuite struct {
	suite.Suite
	trust   *trustscore.InMemoryStore
	store   *enforcementStore.InMemoryStore
	service *Service
	ref     models.EntityRef
	now     time.Time
}

func TestEnforcementSuite(t *testing.T) {
	suite.Run(t, new(EnforcementSuite))
}

func (s *EnforcementSuite) SetupTest() {
	s.trust = trustscore.NewInMemoryStore()
	s.store = enforcementStore.NewInMemoryStore()
	s.ref = models.EntityRef{Type: models.EntityBrand, ID: "acme"}
	s.now = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	var err error
	s.service, err = New(s.trust, s.store)
	s.Require().NoError(err)
}

// scoreAt appends a trust score evaluated at offset minutes and returns a context
// pinned to the same instant.
func (s *EnforcementSuite) scoreAt(offset int, score int) context.Context {
	at := s.now.Add(time.Duration(offset) * time.Minute)
	s.Require().NoError(s.trust.Append(context.Background(), &models.TrustScore{
		EntityType:  s.ref.Type,
		EntityID:    s.ref.ID,
		Score:       score,
		RiskLevel:   models.RiskLevelForScore(score),
		EvaluatedAt: at,
	}))
	return testutil.FixedContext(at)
}

func (s *EnforcementSuite) process(ctx context.Context) *Outcome {
	outcome, err := s.service.ProcessEnforcement(ctx, s.ref.Type, s.ref.ID)
	s.Require().NoError(err)
	return outcome
}

func (s *EnforcementSuite) open() []*models.EnforcementAction {
	open, err := s.service.ListOpen(context.Background(), s.ref)
	s.Require().NoError(err)
	return open
}

func (s *EnforcementSuite) TestNew() {
	_, err := New(nil, s.store)
	s.ErrorContains(err, "trust score reader is required")
	_, err = New(s.trust, nil)
	s.ErrorContains(err, "enforcement store is required")
}

func (s *EnforcementSuite) TestNoTrustScoreIsNoop() {
	outcome := s.process(testutil.FixedContext(s.now))
	s.Equal(ResultNoop, outcome.Result)
	s.Nil(outcome.TrustScore)
	s.Empty(s.open())
}

func (s *EnforcementSuite) TestHealthyScoreWithoutActionIsNoop() {
	outcome := s.process(s.scoreAt(0, 95))
	s.Equal(ResultNoop, outcome.Result)
	s.Empty(outcome.Target)
	s.Empty(s.open())
}

func (s *EnforcementSuite) TestWarningLifecycle() {
	s.Run("score 60 opens a WARNING", func() {
		outcome := s.process(s.scoreAt(0, 60))
		s.Equal(ResultCreated, outcome.Result)
		s.Require().NotNil(outcome.Created)
		s.Equal(models.ActionWarning, outcome.Created.ActionType)
		s.Equal(models.TriggeredBySystem, outcome.Created.TriggeredBy)
		s.Contains(outcome.Created.Reason, "60")
		s.Contains(outcome.Created.Reason, "MEDIUM")
		s.Equal(s.now, outcome.Created.CreatedAt)
	})

	s.Run("unchanged tier is idempotent", func() {
		outcome := s.process(s.scoreAt(1, 72))
		s.Equal(ResultNoop, outcome.Result)
		s.Equal(models.ActionWarning, outcome.Target)
		s.Len(s.open(), 1)
	})

	s.Run("recovery to 85 resolves the WARNING and creates nothing", func() {
		ctx := s.scoreAt(2, 85)
		outcome := s.process(ctx)
		s.Equal(ResultResolved, outcome.Result)
		s.Nil(outcome.Created)
		s.Require().Len(outcome.Resolved, 1)
		s.Require().NotNil(outcome.Resolved[0].ResolvedAt)
		s.Equal(s.now.Add(2*time.Minute), *outcome.Resolved[0].ResolvedAt)

		s.Empty(s.open())
		history, err := s.service.ListHistory(ctx, s.ref)
		s.Require().NoError(err)
		s.Len(history, 1)
	})
}

func (s *EnforcementSuite) TestTierChangeKeepsPreviousActionOpen() {
	s.process(s.scoreAt(0, 65))
	outcome := s.process(s.scoreAt(1, 45))

	s.Equal(ResultCreated, outcome.Result)
	s.Equal(models.ActionRateLimit, outcome.Created.ActionType)
	s.Empty(outcome.Resolved)

	open := s.open()
	s.Require().Len(open, 2)
	s.Equal(models.ActionRateLimit, open[0].ActionType)
	s.Equal(models.ActionWarning, open[1].ActionType)

	s.Run("the most recent open action decides idempotency", func() {
		outcome := s.process(s.scoreAt(2, 41))
		s.Equal(ResultNoop, outcome.Result)
		s.Len(s.open(), 2)
	})

	s.Run("recovery resolves every open action", func() {
		outcome := s.process(s.scoreAt(3, 90))
		s.Equal(ResultResolved, outcome.Result)
		s.Len(outcome.Resolved, 2)
		s.Empty(s.open())
	})
}

func (s *EnforcementSuite) TestResolveSupersededActions() {
	svc, err := New(s.trust, s.store, WithConfig(config.Config{ResolveSupersededActions: true}))
	s.Require().NoError(err)

	_, err = svc.ProcessEnforcement(s.scoreAt(0, 65), s.ref.Type, s.ref.ID)
	s.Require().NoError(err)
	outcome, err := svc.ProcessEnforcement(s.scoreAt(1, 10), s.ref.Type, s.ref.ID)
	s.Require().NoError(err)

	s.Equal(ResultCreated, outcome.Result)
	s.Equal(models.ActionTempRestriction, outcome.Created.ActionType)
	s.Require().Len(outcome.Resolved, 1)
	s.Equal(models.ActionWarning, outcome.Resolved[0].ActionType)

	open := s.open()
	s.Require().Len(open, 1)
	s.Equal(models.ActionTempRestriction, open[0].ActionType)
}

func (s *EnforcementSuite) TestConcurrentCallsOpenOneAction() {
	ctx := s.scoreAt(0, 50)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.ProcessEnforcement(ctx, s.ref.Type, s.ref.ID)
			s.NoError(err)
		}()
	}
	wg.Wait()

	open := s.open()
	s.Require().Len(open, 1)
	s.Equal(models.ActionRateLimit, open[0].ActionType)
}

func (s *EnforcementSuite) TestErrors() {
	s.Run("invalid entity", func() {
		_, err := s.service.ProcessEnforcement(context.Background(), models.EntityUser, "")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("store failure is internal", func() {
		ctrl := gomock.NewController(s.T())
		store := mocks.NewMockEnforcementStore(ctrl)
		store.EXPECT().ListOpen(gomock.Any(), s.ref).Return(nil, errors.New("db down"))

		svc, err := New(s.trust, store)
		s.Require().NoError(err)

		_, err = svc.ProcessEnforcement(s.scoreAt(0, 30), s.ref.Type, s.ref.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("lock failure aborts before reading", func() {
		svc, err := New(s.trust, s.store, WithLocker(failingLocker{}))
		s.Require().NoError(err)

		_, err = svc.ProcessEnforcement(context.Background(), s.ref.Type, s.ref.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

func (s *EnforcementSuite) TestReconciliationRunsUnderTransactionLock() {
	s.Run("entity key is locked inside the unit of work", func() {
		var calls []string
		svc, err := New(s.trust, s.store, WithTransactor(&recordingTransactor{calls: &calls}))
		s.Require().NoError(err)

		outcome, err := svc.ProcessEnforcement(s.scoreAt(0, 65), s.ref.Type, s.ref.ID)
		s.Require().NoError(err)
		s.Equal(ResultCreated, outcome.Result)
		s.Equal([]string{"begin", "lock BRAND:acme", "end"}, calls)
	})

	s.Run("lock failure aborts without writing", func() {
		svc, err := New(s.trust, s.store, WithTransactor(&recordingTransactor{
			calls:   new([]string),
			lockErr: dErrors.New(dErrors.CodeTimeout, "timed out waiting for advisory lock"),
		}))
		s.Require().NoError(err)

		before := len(s.open())
		_, err = svc.ProcessEnforcement(s.scoreAt(1, 10), s.ref.Type, s.ref.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
		s.Len(s.open(), before)
	})
}

type recordingTransactor struct {
	calls   *[]string
	lockErr error
}

func (t *recordingTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	*t.calls = append(*t.calls, "begin")
	err := fn(ctx)
	*t.calls = append(*t.calls, "end")
	return err
}

func (t *recordingTransactor) LockKey(_ context.Context, key string) error {
	*t.calls = append(*t.calls, "lock "+key)
	return t.lockErr
}

// =============================================================================
// Lockers
// =============================================================================

type failingLocker struct{}

func (failingLocker) Lock(context.Context, string) (func(), error) {
	return nil, dErrors.New(dErrors.CodeTimeout, "lock busy")
}

type recordingLocker struct {
	name  string
	calls *[]string
}

func (l recordingLocker) Lock(context.Context, string) (func(), error) {
	*l.calls = append(*l.calls, "lock "+l.name)
	return func() { *l.calls = append(*l.calls, "unlock "+l.name) }, nil
}

func TestChainLocker(t *testing.T) {
	t.Run("releases in reverse order", func(t *testing.T) {
		var calls []string
		chain := ChainLocker{recordingLocker{"a", &calls}, recordingLocker{"b", &calls}}

		unlock, err := chain.Lock(context.Background(), "BRAND:acme")
		require.NoError(t, err)
		unlock()

		assert.Equal(t, []string{"lock a", "lock b", "unlock b", "unlock a"}, calls)
	})

	t.Run("failure releases what was acquired", func(t *testing.T) {
		var calls []string
		chain := ChainLocker{recordingLocker{"a", &calls}, failingLocker{}}

		_, err := chain.Lock(context.Background(), "BRAND:acme")
		require.Error(t, err)
		assert.Equal(t, []string{"lock a", "unlock a"}, calls)
	})
}

func TestShardedLocker(t *testing.T) {
	l := NewShardedLocker()

	t.Run("cancelled context is a timeout", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := l.Lock(ctx, "USER:u1")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	t.Run("same key is exclusive", func(t *testing.T) {
		unlock, err := l.Lock(context.Background(), "USER:u1")
		require.NoError(t, err)

		acquired := make(chan struct{})
		go func() {
			second, err := l.Lock(context.Background(), "USER:u1")
			if err == nil {
				second()
			}
			close(acquired)
		}()

		select {
		case <-acquired:
			t.Fatal("second lock acquired while the first was held")
		case <-time.After(50 * time.Millisecond):
		}
		unlock()
		<-acquired
	})
}
