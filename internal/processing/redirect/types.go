// Package redirect implements the keyword resolution and visit capture
// pipeline: inbound host + keyword to destination URL, with per-link control
// over which visitor attributes get persisted.
package redirect

import (
	"strings"
	"time"
)

// Request is an immutable snapshot of the inbound redirect request. Pipeline
// stages read from it instead of reaching into the HTTP layer.
type Request struct {
	Host    string
	Keyword string
	Headers map[string]string // lower-cased header name -> first value
}

func (r Request) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// ClientIP returns the visitor address from the usual proxy headers, in
// precedence order. Empty when none is present.
func (r Request) ClientIP() string {
	for _, h := range []string{"cf-connecting-ip", "x-forwarded-for", "x-real-ip"} {
		if v := strings.TrimSpace(r.Header(h)); v != "" {
			// x-forwarded-for may carry a chain; the client is first.
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = strings.TrimSpace(v[:i])
			}
			return v
		}
	}
	return ""
}

// Domain is a tenant host under which keywords are namespaced.
type Domain struct {
	ID   string
	Name string
}

// ResolvedLink is the slice of a link the pipeline needs.
type ResolvedLink struct {
	ID      string
	URL     string
	Options string
}

// Visit is one recorded resolution. Nil attribute pointers persist as NULL.
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

// Location is a partial geolocation result. Empty fields stay unset on the
// visit.
type Location struct {
	Country string
	City    string
	Region  string
}

// Result is a completed pipeline run: where to send the visitor, and the
// visit that was written.
type Result struct {
	URL   string
	Visit *Visit
}
