package escalation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
)

// InMemoryStore keeps escalation cases in process memory, one per complaint.
type InMemoryStore struct {
	mu          sync.RWMutex
	byID        map[uuid.UUID]*models.EscalationCase
	byComplaint map[string]uuid.UUID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:        make(map[uuid.UUID]*models.EscalationCase),
		byComplaint: make(map[string]uuid.UUID),
	}
}

func (s *InMemoryStore) CreateIfAbsent(_ context.Context, c *models.EscalationCase) (*models.EscalationCase, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byComplaint[c.ComplaintID]; ok {
		existing := *s.byID[id]
		return &existing, false, nil
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	stored := *c
	s.byID[c.ID] = &stored
	s.byComplaint[c.ComplaintID] = c.ID
	out := stored
	return &out, true, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.EscalationCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *InMemoryStore) FindByComplaint(_ context.Context, complaintID string) (*models.EscalationCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byComplaint[complaintID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *s.byID[id]
	return &out, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.EscalationStatus, updatedAt time.Time) (*models.EscalationCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = updatedAt
	out := *c
	return &out, nil
}

func (s *InMemoryStore) List(_ context.Context, filter models.EscalationFilter) ([]*models.EscalationCase, error) {
	s.mu.RLock()
	cases := make([]*models.EscalationCase, 0, len(s.byID))
	for _, c := range s.byID {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out := *c
		cases = append(cases, &out)
	}
	s.mu.RUnlock()

	sort.Slice(cases, func(i, j int) bool {
		if !cases[i].CreatedAt.Equal(cases[j].CreatedAt) {
			return cases[i].CreatedAt.After(cases[j].CreatedAt)
		}
		return cases[i].ComplaintID < cases[j].ComplaintID
	})
	if filter.Limit > 0 && len(cases) > filter.Limit {
		cases = cases[:filter.Limit]
	}
	return cases, nil
}
