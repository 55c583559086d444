package links

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo  LinkRepository
	now   func() time.Time
	newID func() string
}

func NewService(repo LinkRepository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context, in CreateLinkInput) (*Link, error) {
	for _, required := range []string{in.DomainID, in.UserID, in.URL, in.Title, in.Keyword, in.Description} {
		if strings.TrimSpace(required) == "" {
			return nil, ErrMissingFields
		}
	}

	normalizedURL, err := validateAndNormalizeURL(in.URL)
	if err != nil {
		return nil, ErrInvalidURL
	}

	now := s.now().UTC()
	link := &Link{
		ID:          s.newID(),
		DomainID:    strings.TrimSpace(in.DomainID),
		UserID:      strings.TrimSpace(in.UserID),
		URL:         normalizedURL,
		Title:       strings.TrimSpace(in.Title),
		Keyword:     strings.TrimSpace(in.Keyword),
		Description: strings.TrimSpace(in.Description),
		IPAddress:   strings.TrimSpace(in.IPAddress),
		Active:      true,
		Options:     NormalizeOptions(in.Options),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Link, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Link, int64, error) {
	limit, offset = clampPage(limit, offset)
	items, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Link, int64, error) {
	limit, offset = clampPage(limit, offset)
	items, err := s.repo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update applies a sparse update. An input with zero provided fields is a
// no-op that returns the stored link untouched, timestamp included.
func (s *Service) Update(ctx context.Context, id string, in UpdateLinkInput) (*Link, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	if in.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	if in.URL != nil {
		normalized, err := validateAndNormalizeURL(*in.URL)
		if err != nil {
			return nil, ErrInvalidURL
		}
		in.URL = &normalized
	}
	if in.Options != nil {
		normalized := NormalizeOptions(*in.Options)
		in.Options = &normalized
	}

	return s.repo.Update(ctx, id, in)
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

func validateAndNormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}
	if strings.TrimSpace(u.Host) == "" {
		return "", ErrInvalidURL
	}

	u.Fragment = ""
	return u.String(), nil
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
