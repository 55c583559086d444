package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atalhobr/atalho/internal/processing/links"
	"github.com/atalhobr/atalho/internal/processing/redirect"
)

const linkColumns = `id, domain_id, user_id, url, title, keyword, description, clicks, ip_address, active, options, created_at, updated_at`

// LinkRepository backs both the management CRUD surface and the hot redirect
// resolution path with raw SQL over a pgx pool.
type LinkRepository struct {
	pool *pgxpool.Pool
}

func NewLinkRepository(pool *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{pool: pool}
}

func (r *LinkRepository) Insert(ctx context.Context, link *links.Link) error {
	const q = `
		INSERT INTO links (id, domain_id, user_id, url, title, keyword, description, clicks, ip_address, active, options, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, q,
		link.ID, link.DomainID, link.UserID, link.URL, link.Title,
		link.Keyword, link.Description, link.Clicks, link.IPAddress,
		link.Active, link.Options, link.CreatedAt, link.UpdatedAt,
	)
	if err != nil {
		switch pgErrCode(err) {
		case codeUniqueViolation:
			return links.ErrKeywordTaken
		case codeForeignKeyViolation:
			return links.ErrDomainAbsent
		}
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

func (r *LinkRepository) FindByID(ctx context.Context, id string) (*links.Link, error) {
	q := `SELECT ` + linkColumns + ` FROM links WHERE id = $1`
	return scanLink(r.pool.QueryRow(ctx, q, id))
}

func (r *LinkRepository) FindAll(ctx context.Context, limit, offset int) ([]links.Link, error) {
	q := `SELECT ` + linkColumns + ` FROM links ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	return collectLinks(rows)
}

func (r *LinkRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM links`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return total, nil
}

func (r *LinkRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]links.Link, error) {
	q := `SELECT ` + linkColumns + ` FROM links WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query user links: %w", err)
	}
	return collectLinks(rows)
}

func (r *LinkRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM links WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count user links: %w", err)
	}
	return total, nil
}

func (r *LinkRepository) Update(ctx context.Context, id string, in links.UpdateLinkInput) (*links.Link, error) {
	var b updateBuilder
	setIf(&b, "domain_id", in.DomainID)
	setIf(&b, "user_id", in.UserID)
	setIf(&b, "url", in.URL)
	setIf(&b, "title", in.Title)
	setIf(&b, "keyword", in.Keyword)
	setIf(&b, "description", in.Description)
	setIf(&b, "ip_address", in.IPAddress)
	setIf(&b, "active", in.Active)
	setIf(&b, "options", in.Options)
	if b.empty() {
		return r.FindByID(ctx, id)
	}

	q, args := b.query("links", linkColumns, id, time.Now().UTC())
	link, err := scanLink(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		switch pgErrCode(err) {
		case codeUniqueViolation:
			return nil, links.ErrKeywordTaken
		case codeForeignKeyViolation:
			return nil, links.ErrDomainAbsent
		}
		return nil, err
	}
	return link, nil
}

// Delete refuses to remove a link that still has visits; callers purge them
// first through the visits API.
func (r *LinkRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		if pgErrCode(err) == codeForeignKeyViolation {
			return false, links.ErrInUse
		}
		return false, fmt.Errorf("delete link: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ResolveActive finds the active link for (domainID, keyword) and bumps its
// click counter in the same statement, so the hot path costs one round trip.
func (r *LinkRepository) ResolveActive(ctx context.Context, domainID, keyword string) (*redirect.ResolvedLink, error) {
	const q = `
		UPDATE links
		SET clicks = clicks + 1
		WHERE domain_id = $1 AND keyword = $2 AND active
		RETURNING id, url, options`

	var resolved redirect.ResolvedLink
	err := r.pool.QueryRow(ctx, q, domainID, keyword).Scan(&resolved.ID, &resolved.URL, &resolved.Options)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, redirect.ErrLinkNotFound
		}
		return nil, fmt.Errorf("resolve link: %w", err)
	}
	return &resolved, nil
}

func scanLink(row pgx.Row) (*links.Link, error) {
	var l links.Link
	err := row.Scan(
		&l.ID, &l.DomainID, &l.UserID, &l.URL, &l.Title,
		&l.Keyword, &l.Description, &l.Clicks, &l.IPAddress,
		&l.Active, &l.Options, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, links.ErrNotFound
		}
		return nil, fmt.Errorf("scan link: %w", err)
	}
	return &l, nil
}

func collectLinks(rows pgx.Rows) ([]links.Link, error) {
	defer rows.Close()

	items := make([]links.Link, 0)
	for rows.Next() {
		var l links.Link
		err := rows.Scan(
			&l.ID, &l.DomainID, &l.UserID, &l.URL, &l.Title,
			&l.Keyword, &l.Description, &l.Clicks, &l.IPAddress,
			&l.Active, &l.Options, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan link row: %w", err)
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return items, nil
}
