package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"verity/internal/governance/models"
	"verity/pkg/platform/sentinel"
	txcontext "verity/pkg/platform/tx"
)

// PostgresStore reads the complaint platform tables. It never writes.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) BrandComplaintStats(ctx context.Context, brandID string) (models.BrandComplaintStats, error) {
	query := `
		SELECT COUNT(c.id), COUNT(c.id) FILTER (WHERE c.status = $2)
		FROM brands b
		LEFT JOIN complaints c ON c.brand_id = b.id
		WHERE b.id = $1
		GROUP BY b.id
	`
	var stats models.BrandComplaintStats
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, brandID, models.ComplaintResolved).
		Scan(&stats.Total, &stats.Resolved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stats, sentinel.ErrNotFound
		}
		return stats, fmt.Errorf("brand complaint stats: %w", err)
	}
	return stats, nil
}

func (s *PostgresStore) UserComplaintStats(ctx context.Context, userID string) (models.UserComplaintStats, error) {
	query := `
		SELECT COUNT(c.id), COUNT(c.id) FILTER (WHERE c.status = $2)
		FROM consumers u
		LEFT JOIN complaints c ON c.user_id = u.id
		WHERE u.id = $1
		GROUP BY u.id
	`
	var stats models.UserComplaintStats
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, userID, models.ComplaintRejected).
		Scan(&stats.Total, &stats.Rejected)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stats, sentinel.ErrNotFound
		}
		return stats, fmt.Errorf("user complaint stats: %w", err)
	}
	return stats, nil
}

func (s *PostgresStore) BrandRatingStats(ctx context.Context, brandID string) (models.BrandRatingStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM complaint_ratings r WHERE r.brand_id = b.id),
			(SELECT COALESCE(AVG(r.rating), 0)::float8 FROM complaint_ratings r WHERE r.brand_id = b.id),
			(SELECT COUNT(*) FROM complaints c WHERE c.brand_id = b.id),
			(SELECT COUNT(*) FROM complaints c WHERE c.brand_id = b.id AND c.status = $2)
		FROM brands b
		WHERE b.id = $1
	`
	var (
		stats    models.BrandRatingStats
		total    int
		resolved int
	)
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, brandID, models.ComplaintResolved).
		Scan(&stats.SampleSize, &stats.AverageRating, &total, &resolved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stats, sentinel.ErrNotFound
		}
		return stats, fmt.Errorf("brand rating stats: %w", err)
	}
	stats.ResolutionRate, _ = models.BrandComplaintStats{Total: total, Resolved: resolved}.ResolutionRate()
	return stats, nil
}

func (s *PostgresStore) PlatformRatingMean(ctx context.Context) (float64, error) {
	var (
		count int
		mean  float64
	)
	query := `SELECT COUNT(*), COALESCE(AVG(rating), 0)::float8 FROM complaint_ratings`
	if err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query).Scan(&count, &mean); err != nil {
		return 0, fmt.Errorf("platform rating mean: %w", err)
	}
	if count == 0 {
		return 0, sentinel.ErrNotFound
	}
	return mean, nil
}

func (s *PostgresStore) VerifiedDomains(ctx context.Context, brandID string) ([]string, error) {
	var domains []string
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT verified_domains FROM brands WHERE id = $1`, brandID,
	).Scan(pq.Array(&domains))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("verified domains: %w", err)
	}
	return domains, nil
}

func (s *PostgresStore) ManagerID(ctx context.Context, brandID string) (string, error) {
	var managerID string
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT manager_id FROM brands WHERE id = $1`, brandID,
	).Scan(&managerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("brand manager: %w", err)
	}
	return managerID, nil
}

func (s *PostgresStore) RecentResponses(ctx context.Context, businessUserID, excludeResponseID string, limit int) ([]models.PriorResponse, error) {
	var bound sql.NullInt64
	if limit > 0 {
		bound = sql.NullInt64{Int64: int64(limit), Valid: true}
	}
	query := `
		SELECT id, body, created_at
		FROM business_responses
		WHERE business_user_id = $1 AND id <> $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, businessUserID, excludeResponseID, bound)
	if err != nil {
		return nil, fmt.Errorf("recent responses: %w", err)
	}
	defer rows.Close()

	var responses []models.PriorResponse
	for rows.Next() {
		var r models.PriorResponse
		if err := rows.Scan(&r.ResponseID, &r.Text, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return responses, nil
}
