package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atalhobr/atalho/internal/processing/redirect"
	"github.com/atalhobr/atalho/internal/processing/visits"
)

const visitColumns = `id, link_id, visited_at, ip_address, user_agent, referrer, country_code, country, city, region`

// VisitRepository persists redirect visit rows and serves the analytics
// queries over them. Unset attributes are stored as SQL NULL, never "".
type VisitRepository struct {
	pool *pgxpool.Pool
}

func NewVisitRepository(pool *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{pool: pool}
}

func (r *VisitRepository) Insert(ctx context.Context, visit *redirect.Visit) error {
	const q = `
		INSERT INTO visits (id, link_id, visited_at, ip_address, user_agent, referrer, country_code, country, city, region)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, q,
		visit.ID, visit.LinkID, visit.VisitedAt,
		visit.IPAddress, visit.UserAgent, visit.Referrer,
		visit.CountryCode, visit.Country, visit.City, visit.Region,
	)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

func (r *VisitRepository) FindByLink(ctx context.Context, linkID string, limit, offset int) ([]visits.Visit, error) {
	q := `SELECT ` + visitColumns + ` FROM visits WHERE link_id = $1 ORDER BY visited_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, linkID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query link visits: %w", err)
	}
	return collectVisits(rows)
}

func (r *VisitRepository) CountByLink(ctx context.Context, linkID string) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM visits WHERE link_id = $1`, linkID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count link visits: %w", err)
	}
	return total, nil
}

func (r *VisitRepository) FindByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]visits.Visit, error) {
	q := `SELECT ` + visitColumns + ` FROM visits WHERE visited_at >= $1 AND visited_at <= $2 ORDER BY visited_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, q, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query visits by range: %w", err)
	}
	return collectVisits(rows)
}

func (r *VisitRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete visit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *VisitRepository) DeleteByLink(ctx context.Context, linkID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM visits WHERE link_id = $1`, linkID)
	if err != nil {
		return 0, fmt.Errorf("delete link visits: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *VisitRepository) CountByCountry(ctx context.Context, linkID string) ([]visits.CountryCount, error) {
	q := `SELECT country, COUNT(*) FROM visits WHERE country IS NOT NULL`
	args := []any{}
	if linkID != "" {
		q += ` AND link_id = $1`
		args = append(args, linkID)
	}
	q += ` GROUP BY country ORDER BY COUNT(*) DESC, country ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("count visits by country: %w", err)
	}
	defer rows.Close()

	stats := make([]visits.CountryCount, 0)
	for rows.Next() {
		var c visits.CountryCount
		if err := rows.Scan(&c.Country, &c.Count); err != nil {
			return nil, fmt.Errorf("scan country row: %w", err)
		}
		stats = append(stats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate country rows: %w", err)
	}
	return stats, nil
}

func collectVisits(rows pgx.Rows) ([]visits.Visit, error) {
	defer rows.Close()

	items := make([]visits.Visit, 0)
	for rows.Next() {
		var v visits.Visit
		err := rows.Scan(
			&v.ID, &v.LinkID, &v.VisitedAt,
			&v.IPAddress, &v.UserAgent, &v.Referrer,
			&v.CountryCode, &v.Country, &v.City, &v.Region,
		)
		if err != nil {
			return nil, fmt.Errorf("scan visit row: %w", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}
	return items, nil
}
