package redirect

import (
	"context"
	"errors"
)

var (
	ErrHostMissing    = errors.New("host missing")
	ErrDomainNotFound = errors.New("domain not found")
	ErrLinkNotFound   = errors.New("link not found")
)

type DomainRepository interface {
	FindByName(ctx context.Context, name string) (*Domain, error)
}

type LinkRepository interface {
	// ResolveActive returns the active link for (domainID, keyword) and bumps
	// its click counter in the same statement. ErrLinkNotFound covers both
	// missing and inactive links.
	ResolveActive(ctx context.Context, domainID, keyword string) (*ResolvedLink, error)
}

type VisitRepository interface {
	Insert(ctx context.Context, visit *Visit) error
}

// GeoLookup resolves an IP to a partial location. Implementations may fail
// freely; the pipeline absorbs every error.
type GeoLookup interface {
	Lookup(ctx context.Context, ip string) (*Location, error)
}
