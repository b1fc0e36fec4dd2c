package authenticity

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
	txcontext "verity/pkg/platform/tx"
)

// PostgresStore persists authenticity scores in PostgreSQL. Rows are immutable.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectColumns = `id, response_id, business_user_id, brand_id, identity_score, behavior_score,
		language_score, reputation_score, composite_score, risk_band, rule_breakdown, created_at`

func (s *PostgresStore) CreateIfAbsent(ctx context.Context, score *models.ResponderAuthenticityScore) (*models.ResponderAuthenticityScore, bool, error) {
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	breakdown, err := json.Marshal(score.RuleBreakdown)
	if err != nil {
		return nil, false, fmt.Errorf("marshal rule breakdown: %w", err)
	}

	exec := txcontext.Pick(ctx, s.db)
	query := `
		INSERT INTO responder_authenticity_scores (id, response_id, business_user_id, brand_id, identity_score,
			behavior_score, language_score, reputation_score, composite_score, risk_band, rule_breakdown, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (response_id) DO NOTHING
		RETURNING ` + selectColumns
	stored, err := scanScore(exec.QueryRowContext(ctx, query,
		score.ID,
		score.ResponseID,
		score.BusinessUserID,
		score.BrandID,
		score.IdentityScore,
		score.BehaviorScore,
		score.LanguageScore,
		score.ReputationScore,
		score.CompositeScore,
		score.RiskBand,
		breakdown,
		score.CreatedAt,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("insert authenticity score: %w", err)
	}

	// DO NOTHING returns no row when the response was already scored.
	existing, err := s.GetByResponse(ctx, score.ResponseID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *PostgresStore) GetByResponse(ctx context.Context, responseID string) (*models.ResponderAuthenticityScore, error) {
	query := `SELECT ` + selectColumns + ` FROM responder_authenticity_scores WHERE response_id = $1`
	score, err := scanScore(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, responseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get authenticity score: %w", err)
	}
	return score, nil
}

func (s *PostgresStore) CountByBand(ctx context.Context, businessUserID string, band models.AuthenticityBand) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM responder_authenticity_scores
		WHERE business_user_id = $1 AND risk_band = $2
	`
	var count int
	if err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, businessUserID, band).Scan(&count); err != nil {
		return 0, fmt.Errorf("count authenticity scores: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScore(row rowScanner) (*models.ResponderAuthenticityScore, error) {
	var (
		score     models.ResponderAuthenticityScore
		breakdown []byte
	)
	if err := row.Scan(
		&score.ID,
		&score.ResponseID,
		&score.BusinessUserID,
		&score.BrandID,
		&score.IdentityScore,
		&score.BehaviorScore,
		&score.LanguageScore,
		&score.ReputationScore,
		&score.CompositeScore,
		&score.RiskBand,
		&breakdown,
		&score.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &score.RuleBreakdown); err != nil {
			return nil, fmt.Errorf("unmarshal rule breakdown: %w", err)
		}
	}
	return &score, nil
}
