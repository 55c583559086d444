package links

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("link not found")
	ErrInvalidURL    = errors.New("invalid url")
	ErrMissingFields = errors.New("missing required fields")
	ErrKeywordTaken  = errors.New("keyword taken for domain")
	ErrDomainAbsent  = errors.New("domain does not exist")
	ErrInUse         = errors.New("link still has recorded visits")
)

type LinkRepository interface {
	Insert(ctx context.Context, link *Link) error
	FindByID(ctx context.Context, id string) (*Link, error)
	FindAll(ctx context.Context, limit, offset int) ([]Link, error)
	CountAll(ctx context.Context) (int64, error)
	FindByUser(ctx context.Context, userID string, limit, offset int) ([]Link, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	// Update applies exactly the provided fields plus updated_at. The caller
	// never passes an empty input.
	Update(ctx context.Context, id string, in UpdateLinkInput) (*Link, error)
	Delete(ctx context.Context, id string) (bool, error)
}
