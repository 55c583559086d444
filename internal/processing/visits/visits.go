// Package visits is the read/delete surface over recorded visits. Visits are
// written exclusively by the redirect pipeline and never mutated.
package visits

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("visit not found")
	ErrInvalidRange = errors.New("invalid date range")
)

type Visit struct {
	ID          string
	LinkID      string
	VisitedAt   time.Time
	IPAddress   *string
	UserAgent   *string
	Referrer    *string
	CountryCode *string
	Country     *string
	City        *string
	Region      *string
}

// CountryCount is one row of the count-by-country aggregation.
type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

type VisitRepository interface {
	FindByLink(ctx context.Context, linkID string, limit, offset int) ([]Visit, error)
	CountByLink(ctx context.Context, linkID string) (int64, error)
	FindByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]Visit, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByLink(ctx context.Context, linkID string) (int64, error)
	// CountByCountry aggregates visits with a non-null country, most frequent
	// first. An empty linkID aggregates across all links.
	CountByCountry(ctx context.Context, linkID string) ([]CountryCount, error)
}

type Service struct {
	repo VisitRepository
}

func NewService(repo VisitRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByLink(ctx context.Context, linkID string, limit, offset int) ([]Visit, int64, error) {
	linkID = strings.TrimSpace(linkID)
	if linkID == "" {
		return nil, 0, ErrNotFound
	}
	limit, offset = clampPage(limit, offset)

	items, err := s.repo.FindByLink(ctx, linkID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByLink(ctx, linkID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) ListByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]Visit, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	limit, offset = clampPage(limit, offset)
	return s.repo.FindByRange(ctx, from.UTC(), to.UTC(), limit, offset)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// DeleteByLink removes every visit of a link and returns how many went away.
// Zero is not an error: cleaning an untracked link is a valid no-op.
func (s *Service) DeleteByLink(ctx context.Context, linkID string) (int64, error) {
	linkID = strings.TrimSpace(linkID)
	if linkID == "" {
		return 0, ErrNotFound
	}
	return s.repo.DeleteByLink(ctx, linkID)
}

func (s *Service) CountryStats(ctx context.Context, linkID string) ([]CountryCount, error) {
	return s.repo.CountByCountry(ctx, strings.TrimSpace(linkID))
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
