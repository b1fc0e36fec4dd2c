package escalation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
	txcontext "verity/pkg/platform/tx"
)

// PostgresStore persists escalation cases in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const caseColumns = `id, complaint_id, escalated_by, reason, ai_risk_summary, status, created_at, updated_at`

func (s *PostgresStore) CreateIfAbsent(ctx context.Context, c *models.EscalationCase) (*models.EscalationCase, bool, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	query := `
		INSERT INTO escalation_cases (` + caseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (complaint_id) DO NOTHING
		RETURNING ` + caseColumns
	stored, err := scanCase(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query,
		c.ID,
		c.ComplaintID,
		c.EscalatedBy,
		c.Reason,
		c.AIRiskSummary,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("insert escalation case: %w", err)
	}

	existing, err := s.FindByComplaint(ctx, c.ComplaintID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.EscalationCase, error) {
	query := `SELECT ` + caseColumns + ` FROM escalation_cases WHERE id = $1`
	return s.findOne(ctx, "find escalation case", query, id)
}

func (s *PostgresStore) FindByComplaint(ctx context.Context, complaintID string) (*models.EscalationCase, error) {
	query := `SELECT ` + caseColumns + ` FROM escalation_cases WHERE complaint_id = $1`
	return s.findOne(ctx, "find escalation case by complaint", query, complaintID)
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.EscalationStatus, updatedAt time.Time) (*models.EscalationCase, error) {
	query := `
		UPDATE escalation_cases
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + caseColumns
	return s.findOne(ctx, "update escalation status", query, id, status, updatedAt)
}

func (s *PostgresStore) List(ctx context.Context, filter models.EscalationFilter) ([]*models.EscalationCase, error) {
	var limit sql.NullInt64
	if filter.Limit > 0 {
		limit = sql.NullInt64{Int64: int64(filter.Limit), Valid: true}
	}
	query := `
		SELECT ` + caseColumns + `
		FROM escalation_cases
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, complaint_id ASC
		LIMIT $2
	`
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, string(filter.Status), limit)
	if err != nil {
		return nil, fmt.Errorf("list escalation cases: %w", err)
	}
	defer rows.Close()

	var cases []*models.EscalationCase
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan escalation case: %w", err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate escalation cases: %w", err)
	}
	return cases, nil
}

func (s *PostgresStore) findOne(ctx context.Context, op, query string, args ...any) (*models.EscalationCase, error) {
	c, err := scanCase(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*models.EscalationCase, error) {
	var c models.EscalationCase
	if err := row.Scan(
		&c.ID,
		&c.ComplaintID,
		&c.EscalatedBy,
		&c.Reason,
		&c.AIRiskSummary,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
