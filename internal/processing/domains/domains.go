package domains

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("domain not found")
	ErrInvalidName = errors.New("invalid domain name")
	ErrNameTaken   = errors.New("domain name taken")
	ErrInUse       = errors.New("domain still referenced by links")
)

// Domain is a tenant host string under which link keywords are namespaced.
type Domain struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdateDomainInput carries a sparse update; nil means untouched.
type UpdateDomainInput struct {
	Name *string
}

func (in UpdateDomainInput) IsEmpty() bool { return in.Name == nil }

type DomainRepository interface {
	Insert(ctx context.Context, domain *Domain) error
	FindByID(ctx context.Context, id string) (*Domain, error)
	FindAll(ctx context.Context, limit, offset int) ([]Domain, error)
	Update(ctx context.Context, id string, in UpdateDomainInput) (*Domain, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo  DomainRepository
	now   func() time.Time
	newID func() string
}

func NewService(repo DomainRepository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context, name string) (*Domain, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	domain := &Domain{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, domain); err != nil {
		return nil, err
	}
	return domain, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Domain, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.FindAll(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateDomainInput) (*Domain, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	if in.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	name, err := normalizeName(*in.Name)
	if err != nil {
		return nil, err
	}
	in.Name = &name

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

// normalizeName lower-cases the host and rejects anything that is not a bare
// hostname. Hosts identify tenants, so scheme, port and path are all invalid.
func normalizeName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", ErrInvalidName
	}
	if strings.ContainsAny(name, "/:?#@ ") {
		return "", ErrInvalidName
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return "", ErrInvalidName
	}
	return name, nil
}
