package trustscore

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

// PostgresStore persists the trust log in PostgreSQL. It only ever inserts.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, score *models.TrustScore) error {
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	metadata, err := json.Marshal(score.Metadata)
	if err != nil {
		return fmt.Errorf("marshal trust metadata: %w", err)
	}
	if score.Metadata == nil {
		metadata = []byte("{}")
	}
	query := `
		INSERT INTO trust_scores (id, entity_type, entity_id, score, risk_level, evaluated_at, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq
	`
	err = txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query,
		score.ID,
		score.EntityType,
		score.EntityID,
		score.Score,
		score.RiskLevel,
		score.EvaluatedAt,
		metadata,
	).Scan(&score.Seq)
	if err != nil {
		return fmt.Errorf("append trust score: %w", err)
	}
	return nil
}

func (s *PostgresStore) Latest(ctx context.Context, ref models.EntityRef) (*models.TrustScore, error) {
	query := `
		SELECT id, seq, entity_type, entity_id, score, risk_level, evaluated_at, metadata
		FROM trust_scores
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY evaluated_at DESC, seq DESC
		LIMIT 1
	`
	score, err := scanTrustScore(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, ref.Type, ref.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find latest trust score: %w", err)
	}
	return score, nil
}

func (s *PostgresStore) List(ctx context.Context, ref models.EntityRef, limit int) ([]*models.TrustScore, error) {
	var bound sql.NullInt64
	if limit > 0 {
		bound = sql.NullInt64{Int64: int64(limit), Valid: true}
	}
	query := `
		SELECT id, seq, entity_type, entity_id, score, risk_level, evaluated_at, metadata
		FROM trust_scores
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY evaluated_at DESC, seq DESC
		LIMIT $3
	`
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, ref.Type, ref.ID, bound)
	if err != nil {
		return nil, fmt.Errorf("list trust scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.TrustScore
	for rows.Next() {
		score, err := scanTrustScore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trust score: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trust scores: %w", err)
	}
	return scores, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrustScore(row rowScanner) (*models.TrustScore, error) {
	var (
		score    models.TrustScore
		metadata []byte
	)
	if err := row.Scan(
		&score.ID,
		&score.Seq,
		&score.EntityType,
		&score.EntityID,
		&score.Score,
		&score.RiskLevel,
		&score.EvaluatedAt,
		&metadata,
	); err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &score.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal trust metadata: %w", err)
		}
	}
	return &score, nil
}
