// Package directory adapts the complaint platform's read model (brands, consumers,
// complaints, ratings, business responses) to the governance read ports.
package directory

import (
	"context"
	"sort"
	"sync"
	"time"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
)

type brand struct {
	managerID       string
	verifiedDomains []string
}

type complaint struct {
	brandID string
	userID  string
	status  string
}

type rating struct {
	brandID string
	value   int
}

type response struct {
	id        string
	userID    string
	text      string
	createdAt time.Time
	seq       int64
}

// InMemoryStore is a seedable stand-in for the complaint platform.
type InMemoryStore struct {
	mu         sync.RWMutex
	seq        int64
	brands     map[string]brand
	consumers  map[string]struct{}
	complaints map[string]complaint
	ratings    map[string]rating
	responses  map[string][]response
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		brands:     make(map[string]brand),
		consumers:  make(map[string]struct{}),
		complaints: make(map[string]complaint),
		ratings:    make(map[string]rating),
		responses:  make(map[string][]response),
	}
}

// PutBrand registers or replaces a brand.
func (s *InMemoryStore) PutBrand(brandID, managerID string, verifiedDomains ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands[brandID] = brand{managerID: managerID, verifiedDomains: append([]string(nil), verifiedDomains...)}
}

// PutConsumer registers a consumer.
func (s *InMemoryStore) PutConsumer(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumers[userID] = struct{}{}
}

// PutComplaint records or replaces a complaint. The filing user is registered.
func (s *InMemoryStore) PutComplaint(complaintID, brandID, userID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complaints[complaintID] = complaint{brandID: brandID, userID: userID, status: status}
	s.consumers[userID] = struct{}{}
}

// PutRating records the rating a consumer gave a complaint's resolution.
func (s *InMemoryStore) PutRating(complaintID, brandID string, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[complaintID] = rating{brandID: brandID, value: value}
}

// PutResponse records a business follow-up.
func (s *InMemoryStore) PutResponse(responseID, businessUserID, text string, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.responses[businessUserID] = append(s.responses[businessUserID], response{
		id: responseID, userID: businessUserID, text: text, createdAt: createdAt, seq: s.seq,
	})
}

func (s *InMemoryStore) BrandComplaintStats(_ context.Context, brandID string) (models.BrandComplaintStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.brands[brandID]; !ok {
		return models.BrandComplaintStats{}, sentinel.ErrNotFound
	}
	return s.brandComplaintStatsLocked(brandID), nil
}

func (s *InMemoryStore) brandComplaintStatsLocked(brandID string) models.BrandComplaintStats {
	var stats models.BrandComplaintStats
	for _, c := range s.complaints {
		if c.brandID != brandID {
			continue
		}
		stats.Total++
		if c.status == models.ComplaintResolved {
			stats.Resolved++
		}
	}
	return stats
}

func (s *InMemoryStore) UserComplaintStats(_ context.Context, userID string) (models.UserComplaintStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.consumers[userID]; !ok {
		return models.UserComplaintStats{}, sentinel.ErrNotFound
	}
	var stats models.UserComplaintStats
	for _, c := range s.complaints {
		if c.userID != userID {
			continue
		}
		stats.Total++
		if c.status == models.ComplaintRejected {
			stats.Rejected++
		}
	}
	return stats, nil
}

func (s *InMemoryStore) BrandRatingStats(_ context.Context, brandID string) (models.BrandRatingStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.brands[brandID]; !ok {
		return models.BrandRatingStats{}, sentinel.ErrNotFound
	}
	var (
		stats models.BrandRatingStats
		sum   int
	)
	for _, r := range s.ratings {
		if r.brandID != brandID {
			continue
		}
		stats.SampleSize++
		sum += r.value
	}
	if stats.SampleSize > 0 {
		stats.AverageRating = float64(sum) / float64(stats.SampleSize)
	}
	stats.ResolutionRate, _ = s.brandComplaintStatsLocked(brandID).ResolutionRate()
	return stats, nil
}

// PlatformRatingMean returns sentinel.ErrNotFound while no rating exists.
func (s *InMemoryStore) PlatformRatingMean(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.ratings) == 0 {
		return 0, sentinel.ErrNotFound
	}
	sum := 0
	for _, r := range s.ratings {
		sum += r.value
	}
	return float64(sum) / float64(len(s.ratings)), nil
}

func (s *InMemoryStore) VerifiedDomains(_ context.Context, brandID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.brands[brandID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return append([]string(nil), b.verifiedDomains...), nil
}

func (s *InMemoryStore) ManagerID(_ context.Context, brandID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.brands[brandID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return b.managerID, nil
}

func (s *InMemoryStore) RecentResponses(_ context.Context, businessUserID, excludeResponseID string, limit int) ([]models.PriorResponse, error) {
	s.mu.RLock()
	candidates := make([]response, 0, len(s.responses[businessUserID]))
	for _, r := range s.responses[businessUserID] {
		if r.id != excludeResponseID {
			candidates = append(candidates, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].createdAt.Equal(candidates[j].createdAt) {
			return candidates[i].createdAt.After(candidates[j].createdAt)
		}
		return candidates[i].seq > candidates[j].seq
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]models.PriorResponse, len(candidates))
	for i, r := range candidates {
		out[i] = models.PriorResponse{ResponseID: r.id, Text: r.text, CreatedAt: r.createdAt}
	}
	return out, nil
}
