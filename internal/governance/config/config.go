// Package config holds the tunable knobs of the governance core.
package config

import "time"

// Config groups the governance settings. Zero values are replaced by DefaultConfig
// when passed through Normalize.
type Config struct {
	// ConfidenceWeight is the pseudo-count of platform-mean ratings blended into
	// every brand reputation.
	ConfidenceWeight float64 `koanf:"confidence_weight"`

	// HistoryLimit caps how many prior responses feed templated-text detection.
	HistoryLimit int `koanf:"history_limit"`

	// LowRatingThreshold is the highest rating (1-5) on a resolved complaint that
	// still raises a SYSTEM escalation.
	LowRatingThreshold int `koanf:"low_rating_threshold"`

	// ResolveSupersededActions resolves the previously open enforcement action when a
	// new tier is created. Off keeps the historical trail of concurrently open actions.
	ResolveSupersededActions bool `koanf:"resolve_superseded_actions"`

	// LockTTL bounds how long a distributed enforcement lock may be held.
	LockTTL time.Duration `koanf:"lock_ttl"`

	// LockTimeout bounds how long a caller waits to acquire the per-entity lock.
	LockTimeout time.Duration `koanf:"lock_timeout"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		ConfidenceWeight:         10,
		HistoryLimit:             50,
		LowRatingThreshold:       2,
		ResolveSupersededActions: false,
		LockTTL:                  5 * time.Second,
		LockTimeout:              5 * time.Second,
	}
}

// Normalize fills unset fields from DefaultConfig.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.ConfidenceWeight <= 0 {
		c.ConfidenceWeight = def.ConfidenceWeight
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = def.HistoryLimit
	}
	if c.LowRatingThreshold <= 0 {
		c.LowRatingThreshold = def.LowRatingThreshold
	}
	if c.LockTTL <= 0 {
		c.LockTTL = def.LockTTL
	}
	if c.LockTimeout <= 0 {
		c.LockTimeout = def.LockTimeout
	}
	return c
}
