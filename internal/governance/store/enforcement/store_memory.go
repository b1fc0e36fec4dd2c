package enforcement

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
)

type record struct {
	seq    int64
	action models.EnforcementAction
}

// InMemoryStore keeps enforcement actions in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	seq     int64
	byID    map[uuid.UUID]*record
	byOwner map[models.EntityRef][]*record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[uuid.UUID]*record),
		byOwner: make(map[models.EntityRef][]*record),
	}
}

func (s *InMemoryStore) Create(_ context.Context, action *models.EnforcementAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if action.ID == uuid.Nil {
		action.ID = uuid.New()
	}
	if _, exists := s.byID[action.ID]; exists {
		return sentinel.ErrConflict
	}
	s.seq++
	rec := &record{seq: s.seq, action: cloneAction(action)}
	s.byID[action.ID] = rec
	s.byOwner[action.Ref()] = append(s.byOwner[action.Ref()], rec)
	return nil
}

func (s *InMemoryStore) Resolve(_ context.Context, id uuid.UUID, resolvedAt time.Time) (*models.EnforcementAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if rec.action.IsOpen() {
		at := resolvedAt
		rec.action.ResolvedAt = &at
	}
	out := cloneAction(&rec.action)
	return &out, nil
}

func (s *InMemoryStore) ListOpen(_ context.Context, ref models.EntityRef) ([]*models.EnforcementAction, error) {
	return s.list(ref, true), nil
}

func (s *InMemoryStore) ListByEntity(_ context.Context, ref models.EntityRef) ([]*models.EnforcementAction, error) {
	return s.list(ref, false), nil
}

func (s *InMemoryStore) list(ref models.EntityRef, openOnly bool) []*models.EnforcementAction {
	s.mu.RLock()
	recs := make([]record, 0, len(s.byOwner[ref]))
	for _, rec := range s.byOwner[ref] {
		if openOnly && !rec.action.IsOpen() {
			continue
		}
		recs = append(recs, record{seq: rec.seq, action: cloneAction(&rec.action)})
	}
	s.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].action.CreatedAt.Equal(recs[j].action.CreatedAt) {
			return recs[i].action.CreatedAt.After(recs[j].action.CreatedAt)
		}
		return recs[i].seq > recs[j].seq
	})

	out := make([]*models.EnforcementAction, len(recs))
	for i := range recs {
		out[i] = &recs[i].action
	}
	return out
}

func cloneAction(a *models.EnforcementAction) models.EnforcementAction {
	c := *a
	if a.ResolvedAt != nil {
		at := *a.ResolvedAt
		c.ResolvedAt = &at
	}
	return c
}
