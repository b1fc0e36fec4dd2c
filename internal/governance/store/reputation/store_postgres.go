package reputation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
	txcontext "verity/pkg/platform/tx"
)

// PostgresStore persists brand reputation rows in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, score *models.ReputationScore) error {
	query := `
		INSERT INTO reputation_scores (brand_id, score, sample_size, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (brand_id) DO UPDATE SET
			score = EXCLUDED.score,
			sample_size = EXCLUDED.sample_size,
			updated_at = EXCLUDED.updated_at
	`
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query,
		score.BrandID,
		score.Score,
		score.SampleSize,
		score.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert reputation score: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, brandID string) (*models.ReputationScore, error) {
	query := `
		SELECT brand_id, score, sample_size, updated_at
		FROM reputation_scores
		WHERE brand_id = $1
	`
	var score models.ReputationScore
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, brandID).Scan(
		&score.BrandID,
		&score.Score,
		&score.SampleSize,
		&score.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get reputation score: %w", err)
	}
	return &score, nil
}
