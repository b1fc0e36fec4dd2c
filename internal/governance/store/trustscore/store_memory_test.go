package trustscore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	ref   models.EntityRef
	at    time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
	s.ref = models.EntityRef{Type: models.EntityBrand, ID: "acme"}
	s.at = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) entry(score int, at time.Time) *models.TrustScore {
	return &models.TrustScore{
		EntityType:  s.ref.Type,
		EntityID:    s.ref.ID,
		Score:       score,
		RiskLevel:   models.RiskLevelForScore(score),
		EvaluatedAt: at,
		Metadata:    map[string]any{"baseline": 100},
	}
}

func (s *InMemoryStoreSuite) TestAppend() {
	s.Run("assigns id and increasing sequence", func() {
		first := s.entry(90, s.at)
		second := s.entry(60, s.at)
		s.Require().NoError(s.store.Append(s.ctx, first))
		s.Require().NoError(s.store.Append(s.ctx, second))

		s.NotEqual(first.ID, second.ID)
		s.Greater(second.Seq, first.Seq)
	})

	s.Run("stored entries are isolated from caller mutation", func() {
		s.SetupTest()
		score := s.entry(70, s.at)
		s.Require().NoError(s.store.Append(s.ctx, score))
		score.Score = 1
		score.Metadata["baseline"] = 0

		latest, err := s.store.Latest(s.ctx, s.ref)
		s.Require().NoError(err)
		s.Equal(70, latest.Score)
		s.Equal(100, latest.Metadata["baseline"])
	})
}

func (s *InMemoryStoreSuite) TestLatest() {
	s.Run("unknown entity is not found", func() {
		_, err := s.store.Latest(s.ctx, models.EntityRef{Type: models.EntityUser, ID: "ghost"})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("most recent evaluation wins", func() {
		s.Require().NoError(s.store.Append(s.ctx, s.entry(85, s.at.Add(time.Minute))))
		s.Require().NoError(s.store.Append(s.ctx, s.entry(40, s.at)))

		latest, err := s.store.Latest(s.ctx, s.ref)
		s.Require().NoError(err)
		s.Equal(85, latest.Score)
	})

	s.Run("equal timestamps break ties by insertion order", func() {
		s.SetupTest()
		s.Require().NoError(s.store.Append(s.ctx, s.entry(55, s.at)))
		s.Require().NoError(s.store.Append(s.ctx, s.entry(65, s.at)))

		latest, err := s.store.Latest(s.ctx, s.ref)
		s.Require().NoError(err)
		s.Equal(65, latest.Score)
	})

	s.Run("entities are isolated", func() {
		other := models.EntityRef{Type: models.EntityUser, ID: "acme"}
		_, err := s.store.Latest(s.ctx, other)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestList() {
	for i := range 5 {
		s.Require().NoError(s.store.Append(s.ctx, s.entry(50+i, s.at.Add(time.Duration(i)*time.Second))))
	}

	s.Run("newest first with limit", func() {
		entries, err := s.store.List(s.ctx, s.ref, 2)
		s.Require().NoError(err)
		s.Require().Len(entries, 2)
		s.Equal(54, entries[0].Score)
		s.Equal(53, entries[1].Score)
	})

	s.Run("non-positive limit returns everything", func() {
		entries, err := s.store.List(s.ctx, s.ref, 0)
		s.Require().NoError(err)
		s.Len(entries, 5)
	})
}

func (s *InMemoryStoreSuite) TestConcurrentAppend() {
	const writers = 50
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.store.Append(s.ctx, s.entry(60, s.at))
		}()
	}
	wg.Wait()

	entries, err := s.store.List(s.ctx, s.ref, 0)
	s.Require().NoError(err)
	s.Len(entries, writers)
}
