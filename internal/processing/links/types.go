package links

import "time"

// Link maps a (domain, keyword) pair to a destination URL. The domain is a
// foreign-key reference; keywords are unique per domain.
type Link struct {
	ID          string
	DomainID    string
	UserID      string
	URL         string
	Title       string
	Keyword     string
	Description string
	Clicks      int64
	IPAddress   string // creator address, optional
	Active      bool
	Options     string // JSON text, always valid, defaults to "{}"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateLinkInput struct {
	DomainID    string
	UserID      string
	URL         string
	Title       string
	Keyword     string
	Description string
	IPAddress   string
	Options     string
}

// UpdateLinkInput carries a sparse update: nil pointers are untouched fields.
type UpdateLinkInput struct {
	DomainID    *string
	UserID      *string
	URL         *string
	Title       *string
	Keyword     *string
	Description *string
	IPAddress   *string
	Active      *bool
	Options     *string
}

// IsEmpty reports whether no field was provided at all.
func (in UpdateLinkInput) IsEmpty() bool {
	return in.DomainID == nil && in.UserID == nil && in.URL == nil &&
		in.Title == nil && in.Keyword == nil && in.Description == nil &&
		in.IPAddress == nil && in.Active == nil && in.Options == nil
}
