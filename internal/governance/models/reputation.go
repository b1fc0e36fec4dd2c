package models

import "time"

// MaxRating is the highest rating a consumer can give a complaint resolution.
const MaxRating = 5

// MaxReputationScore bounds a brand reputation: a perfect average doubled by a full
// resolution bonus.
const MaxReputationScore = 2 * MaxRating

// ReputationScore is the single mutable reputation row of a brand. Each refresh
// replaces the previous value.
type ReputationScore struct {
	BrandID    string    `json:"brand_id"`
	Score      float64   `json:"score"`
	SampleSize int       `json:"sample_size"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BrandRatingStats summarizes the ratings a brand has received.
type BrandRatingStats struct {
	SampleSize     int
	AverageRating  float64
	ResolutionRate float64
}

// BrandComplaintStats counts complaints filed against a brand.
type BrandComplaintStats struct {
	Total    int
	Resolved int
}

// ResolutionRate returns resolved/total, or 0 with ok=false when there are no complaints.
func (s BrandComplaintStats) ResolutionRate() (rate float64, ok bool) {
	if s.Total <= 0 {
		return 0, false
	}
	return float64(s.Resolved) / float64(s.Total), true
}

// UserComplaintStats counts complaints filed by a consumer.
type UserComplaintStats struct {
	Total    int
	Rejected int
}

// RejectionRate returns rejected/total, or 0 with ok=false when there are no complaints.
func (s UserComplaintStats) RejectionRate() (rate float64, ok bool) {
	if s.Total <= 0 {
		return 0, false
	}
	return float64(s.Rejected) / float64(s.Total), true
}
