package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atalhobr/atalho/internal/processing/domains"
	"github.com/atalhobr/atalho/internal/processing/redirect"
)

const domainColumns = `id, name, created_at, updated_at`

type DomainRepository struct {
	pool *pgxpool.Pool
}

func NewDomainRepository(pool *pgxpool.Pool) *DomainRepository {
	return &DomainRepository{pool: pool}
}

func (r *DomainRepository) Insert(ctx context.Context, domain *domains.Domain) error {
	const q = `INSERT INTO domains (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, q, domain.ID, domain.Name, domain.CreatedAt, domain.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == codeUniqueViolation {
			return domains.ErrNameTaken
		}
		return fmt.Errorf("insert domain: %w", err)
	}
	return nil
}

func (r *DomainRepository) FindByID(ctx context.Context, id string) (*domains.Domain, error) {
	q := `SELECT ` + domainColumns + ` FROM domains WHERE id = $1`
	return scanDomain(r.pool.QueryRow(ctx, q, id))
}

func (r *DomainRepository) FindAll(ctx context.Context, limit, offset int) ([]domains.Domain, error) {
	q := `SELECT ` + domainColumns + ` FROM domains ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query domains: %w", err)
	}
	defer rows.Close()

	items := make([]domains.Domain, 0)
	for rows.Next() {
		var d domains.Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan domain row: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domains: %w", err)
	}
	return items, nil
}

func (r *DomainRepository) Update(ctx context.Context, id string, in domains.UpdateDomainInput) (*domains.Domain, error) {
	var b updateBuilder
	setIf(&b, "name", in.Name)
	if b.empty() {
		return r.FindByID(ctx, id)
	}

	q, args := b.query("domains", domainColumns, id, time.Now().UTC())
	domain, err := scanDomain(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if pgErrCode(err) == codeUniqueViolation {
			return nil, domains.ErrNameTaken
		}
		return nil, err
	}
	return domain, nil
}

// Delete refuses to remove a domain that still has links under it; the
// foreign key surfaces that as ErrInUse.
func (r *DomainRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM domains WHERE id = $1`, id)
	if err != nil {
		if pgErrCode(err) == codeForeignKeyViolation {
			return false, domains.ErrInUse
		}
		return false, fmt.Errorf("delete domain: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FindByName serves the redirect pipeline's host resolution.
func (r *DomainRepository) FindByName(ctx context.Context, name string) (*redirect.Domain, error) {
	const q = `SELECT id, name FROM domains WHERE name = $1`

	var d redirect.Domain
	if err := r.pool.QueryRow(ctx, q, name).Scan(&d.ID, &d.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, redirect.ErrDomainNotFound
		}
		return nil, fmt.Errorf("resolve domain: %w", err)
	}
	return &d, nil
}

func scanDomain(row pgx.Row) (*domains.Domain, error) {
	var d domains.Domain
	if err := row.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domains.ErrNotFound
		}
		return nil, fmt.Errorf("scan domain: %w", err)
	}
	return &d, nil
}
