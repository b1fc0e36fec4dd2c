package reputation

import (
	"context"
	"sync"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
)

// InMemoryStore keeps one reputation row per brand.
type InMemoryStore struct {
	mu     sync.RWMutex
	scores map[string]models.ReputationScore
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{scores: make(map[string]models.ReputationScore)}
}

func (s *InMemoryStore) Upsert(_ context.Context, score *models.ReputationScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[score.BrandID] = *score
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, brandID string) (*models.ReputationScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.scores[brandID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &score, nil
}
