package trustscore

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/google/uuid"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
)

// InMemoryStore is an append-only trust log kept in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	seq     int64
	entries map[models.EntityRef][]*models.TrustScore
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[models.EntityRef][]*models.TrustScore)}
}

func (s *InMemoryStore) Append(_ context.Context, score *models.TrustScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	score.Seq = s.seq
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	ref := score.Ref()
	s.entries[ref] = append(s.entries[ref], clone(score))
	return nil
}

func (s *InMemoryStore) Latest(_ context.Context, ref models.EntityRef) (*models.TrustScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.TrustScore
	for _, entry := range s.entries[ref] {
		if entry.NewerThan(latest) {
			latest = entry
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	return clone(latest), nil
}

func (s *InMemoryStore) List(_ context.Context, ref models.EntityRef, limit int) ([]*models.TrustScore, error) {
	s.mu.RLock()
	entries := make([]*models.TrustScore, 0, len(s.entries[ref]))
	for _, entry := range s.entries[ref] {
		entries = append(entries, clone(entry))
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].NewerThan(entries[j])
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func clone(score *models.TrustScore) *models.TrustScore {
	c := *score
	c.Metadata = maps.Clone(score.Metadata)
	return &c
}
