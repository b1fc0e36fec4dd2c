package enforcement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
	txcontext "verity/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists enforcement actions in PostgreSQL.
// This store is pure I/O; tier selection and reconciliation belong in the service.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, action *models.EnforcementAction) error {
	if action.ID == uuid.Nil {
		action.ID = uuid.New()
	}
	query := `
		INSERT INTO enforcement_actions (id, entity_type, entity_id, action_type, reason, triggered_by, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query,
		action.ID,
		action.EntityType,
		action.EntityID,
		action.ActionType,
		action.Reason,
		action.TriggeredBy,
		action.CreatedAt,
		action.ResolvedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create enforcement action: %w", err)
	}
	return nil
}

func (s *PostgresStore) Resolve(ctx context.Context, id uuid.UUID, resolvedAt time.Time) (*models.EnforcementAction, error) {
	// COALESCE keeps the first resolution time when the action was already resolved.
	query := `
		UPDATE enforcement_actions
		SET resolved_at = COALESCE(resolved_at, $2)
		WHERE id = $1
		RETURNING id, entity_type, entity_id, action_type, reason, triggered_by, created_at, resolved_at
	`
	action, err := scanAction(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, id, resolvedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("resolve enforcement action: %w", err)
	}
	return action, nil
}

func (s *PostgresStore) ListOpen(ctx context.Context, ref models.EntityRef) ([]*models.EnforcementAction, error) {
	query := `
		SELECT id, entity_type, entity_id, action_type, reason, triggered_by, created_at, resolved_at
		FROM enforcement_actions
		WHERE entity_type = $1 AND entity_id = $2 AND resolved_at IS NULL
		ORDER BY created_at DESC, seq DESC
	`
	return s.query(ctx, "list open enforcement actions", query, ref.Type, ref.ID)
}

func (s *PostgresStore) ListByEntity(ctx context.Context, ref models.EntityRef) ([]*models.EnforcementAction, error) {
	query := `
		SELECT id, entity_type, entity_id, action_type, reason, triggered_by, created_at, resolved_at
		FROM enforcement_actions
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC, seq DESC
	`
	return s.query(ctx, "list enforcement actions", query, ref.Type, ref.ID)
}

func (s *PostgresStore) query(ctx context.Context, op, query string, args ...any) ([]*models.EnforcementAction, error) {
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var actions []*models.EnforcementAction
	for rows.Next() {
		action, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, err)
	}
	return actions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAction(row rowScanner) (*models.EnforcementAction, error) {
	var (
		action     models.EnforcementAction
		resolvedAt sql.NullTime
	)
	if err := row.Scan(
		&action.ID,
		&action.EntityType,
		&action.EntityID,
		&action.ActionType,
		&action.Reason,
		&action.TriggeredBy,
		&action.CreatedAt,
		&resolvedAt,
	); err != nil {
		return nil, err
	}
	if resolvedAt.Valid {
		at := resolvedAt.Time
		action.ResolvedAt = &at
	}
	return &action, nil
}
