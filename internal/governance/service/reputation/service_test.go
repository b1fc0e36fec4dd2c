package reputation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"verity/internal/governance/config"
	"verity/internal/governance/models"
	"verity/internal/governance/ports/mocks"
	reputationStore "verity/internal/governance/store/reputation"
	dErrors "verity/pkg/domain-errors"
	"verity/pkg/platform/sentinel"
	"verity/pkg/testutil"
)

func TestComputeScore(t *testing.T) {
	t.Run("empty sample returns the platform mean", func(t *testing.T) {
		for _, avg := range []float64{0, 1.5, 5} {
			for _, w := range []float64{0, 1, 10, 250} {
				assert.Equal(t, 3.7, ComputeScore(0, avg, 3.7, w, 0.4))
			}
		}
	})

	t.Run("blends sample with prior", func(t *testing.T) {
		// (2*4.5 + 10*3) / 12 = 3.25
		assert.InDelta(t, 3.25, ComputeScore(2, 4.5, 3.0, 10, 0), 1e-9)
	})

	t.Run("full resolution doubles the blend", func(t *testing.T) {
		assert.InDelta(t, 6.5, ComputeScore(2, 4.5, 3.0, 10, 1), 1e-9)
	})

	t.Run("zero confidence weight uses the sample alone", func(t *testing.T) {
		assert.InDelta(t, 4.5, ComputeScore(2, 4.5, 3.0, 0, 0), 1e-9)
	})

	t.Run("resolution rate outside [0,1] is clamped", func(t *testing.T) {
		assert.Equal(t, ComputeScore(7, 3.9, 3.1, 10, 1), ComputeScore(7, 3.9, 3.1, 10, 1.5))
		assert.Equal(t, ComputeScore(7, 3.9, 3.1, 10, 0), ComputeScore(7, 3.9, 3.1, 10, -0.5))
		assert.LessOrEqual(t, ComputeScore(50, models.MaxRating, 3.1, 10, 3), float64(models.MaxReputationScore))
	})

	t.Run("non-decreasing in resolution rate", func(t *testing.T) {
		prev := ComputeScore(7, 3.9, 3.1, 10, -0.5)
		for rate := -0.5; rate <= 1.5; rate += 0.05 {
			got := ComputeScore(7, 3.9, 3.1, 10, rate)
			assert.GreaterOrEqual(t, got, prev, "rate %.2f", rate)
			prev = got
		}
	})
}

// =============================================================================
// Refresh Suite
// =============================================================================

type RefreshSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	stats   *mocks.MockStatsReader
	store   *reputationStore.InMemoryStore
	service *Service
	ctx     context.Context
	now     time.Time
}

func TestRefreshSuite(t *testing.T) {
	suite.Run(t, new(RefreshSuite))
}

func (s *RefreshSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.stats = mocks.NewMockStatsReader(s.ctrl)
	s.store = reputationStore.NewInMemoryStore()
	s.now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = testutil.FixedContext(s.now)

	var err error
	s.service, err = New(s.stats, s.store, WithConfig(config.Config{ConfidenceWeight: 10}))
	s.Require().NoError(err)
}

func (s *RefreshSuite) TestNew() {
	s.Run("nil stats reader returns error", func() {
		_, err := New(nil, s.store)
		s.ErrorContains(err, "stats reader is required")
	})

	s.Run("nil store returns error", func() {
		_, err := New(s.stats, nil)
		s.ErrorContains(err, "reputation store is required")
	})
}

func (s *RefreshSuite) TestRefresh() {
	s.Run("computes and upserts the score", func() {
		s.stats.EXPECT().BrandRatingStats(gomock.Any(), "acme").
			Return(models.BrandRatingStats{SampleSize: 2, AverageRating: 4.5, ResolutionRate: 0.5}, nil)
		s.stats.EXPECT().PlatformRatingMean(gomock.Any()).Return(3.0, nil)

		got, err := s.service.Refresh(s.ctx, "acme")
		s.Require().NoError(err)
		s.InDelta(4.875, got.Score, 1e-9)
		s.Equal(2, got.SampleSize)
		s.Equal(s.now, got.UpdatedAt)

		stored, err := s.store.Get(s.ctx, "acme")
		s.Require().NoError(err)
		s.InDelta(4.875, stored.Score, 1e-9)
	})

	s.Run("second refresh replaces the row", func() {
		s.stats.EXPECT().BrandRatingStats(gomock.Any(), "acme").
			Return(models.BrandRatingStats{SampleSize: 0}, nil)
		s.stats.EXPECT().PlatformRatingMean(gomock.Any()).Return(3.4, nil)

		got, err := s.service.Refresh(s.ctx, "acme")
		s.Require().NoError(err)
		s.Equal(3.4, got.Score)

		stored, err := s.store.Get(s.ctx, "acme")
		s.Require().NoError(err)
		s.Equal(3.4, stored.Score)
	})

	s.Run("no platform ratings falls back to the neutral mean", func() {
		s.stats.EXPECT().BrandRatingStats(gomock.Any(), "fresh").Return(models.BrandRatingStats{}, nil)
		s.stats.EXPECT().PlatformRatingMean(gomock.Any()).Return(0.0, sentinel.ErrNotFound)

		got, err := s.service.Refresh(s.ctx, "fresh")
		s.Require().NoError(err)
		s.Equal(models.NeutralPlatformMean, got.Score)
	})

	s.Run("unknown brand is not found", func() {
		s.stats.EXPECT().BrandRatingStats(gomock.Any(), "ghost").
			Return(models.BrandRatingStats{}, sentinel.ErrNotFound)

		_, err := s.service.Refresh(s.ctx, "ghost")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("stats read failure propagates as internal", func() {
		s.stats.EXPECT().BrandRatingStats(gomock.Any(), "acme").
			Return(models.BrandRatingStats{}, errors.New("connection reset"))

		_, err := s.service.Refresh(s.ctx, "acme")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *RefreshSuite) TestGet() {
	_, err := s.service.Get(s.ctx, "nobody")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.Require().NoError(s.store.Upsert(s.ctx, &models.ReputationScore{BrandID: "acme", Score: 0.8}))
	got, err := s.service.Get(s.ctx, "acme")
	s.Require().NoError(err)
	s.Equal(0.8, got.Score)
}
