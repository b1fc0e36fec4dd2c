package authenticity

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
)

// InMemoryStore keeps one authenticity score per response.
type InMemoryStore struct {
	mu         sync.RWMutex
	byResponse map[string]models.ResponderAuthenticityScore
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byResponse: make(map[string]models.ResponderAuthenticityScore)}
}

func (s *InMemoryStore) CreateIfAbsent(_ context.Context, score *models.ResponderAuthenticityScore) (*models.ResponderAuthenticityScore, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byResponse[score.ResponseID]; ok {
		out := cloneScore(existing)
		return &out, false, nil
	}
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	s.byResponse[score.ResponseID] = cloneScore(*score)
	out := cloneScore(*score)
	return &out, true, nil
}

func (s *InMemoryStore) GetByResponse(_ context.Context, responseID string) (*models.ResponderAuthenticityScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.byResponse[responseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := cloneScore(score)
	return &out, nil
}

func (s *InMemoryStore) CountByBand(_ context.Context, businessUserID string, band models.AuthenticityBand) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, score := range s.byResponse {
		if score.BusinessUserID == businessUserID && score.RiskBand == band {
			count++
		}
	}
	return count, nil
}

func cloneScore(score models.ResponderAuthenticityScore) models.ResponderAuthenticityScore {
	score.RuleBreakdown.LanguageFlags = append([]string(nil), score.RuleBreakdown.LanguageFlags...)
	if score.RuleBreakdown.BrandReputation != nil {
		rep := *score.RuleBreakdown.BrandReputation
		score.RuleBreakdown.BrandReputation = &rep
	}
	return score
}
