package redirect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultGeoTimeout = 2 * time.Second

// Pipeline runs one redirect resolution end to end:
// resolve host -> resolve link -> evaluate policy -> collect attributes ->
// enrich geo (best effort) -> record visit -> redirect target.
type Pipeline struct {
	domains DomainRepository
	links   LinkRepository
	visits  VisitRepository
	geo     GeoLookup // nil disables enrichment

	geoTimeout time.Duration
	now        func() time.Time
	newID      func() string
}

func NewPipeline(domains DomainRepository, links LinkRepository, visits VisitRepository, geo GeoLookup, geoTimeout time.Duration) *Pipeline {
	if geoTimeout <= 0 {
		geoTimeout = defaultGeoTimeout
	}
	return &Pipeline{
		domains:    domains,
		links:      links,
		visits:     visits,
		geo:        geo,
		geoTimeout: geoTimeout,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Execute resolves the request and records a visit. The visit write is
// required: when it fails, no result is returned and the caller must not
// redirect.
func (p *Pipeline) Execute(ctx context.Context, req Request) (*Result, error) {
	host := strings.TrimSpace(req.Host)
	if host == "" {
		return nil, ErrHostMissing
	}
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return nil, ErrLinkNotFound
	}

	domain, err := p.domains.FindByName(ctx, host)
	if err != nil {
		return nil, err
	}

	link, err := p.links.ResolveActive(ctx, domain.ID, keyword)
	if err != nil {
		return nil, err
	}

	policy := ParsePolicy(link.Options)
	visit := p.collect(req, link.ID, policy)
	p.enrich(ctx, req, policy, visit)

	// The write is not cancellable: once recording starts it runs to
	// completion or failure even if the visitor hangs up.
	if err := p.visits.Insert(context.WithoutCancel(ctx), visit); err != nil {
		return nil, fmt.Errorf("record visit: %w", err)
	}

	return &Result{URL: link.URL, Visit: visit}, nil
}

// collect builds the visit from request headers, restricted to what the
// policy allows. Everything else stays nil.
func (p *Pipeline) collect(req Request, linkID string, policy Policy) *Visit {
	visit := &Visit{
		ID:        p.newID(),
		LinkID:    linkID,
		VisitedAt: p.now().UTC(),
	}

	if policy.Allows(FieldIPAddress) {
		visit.IPAddress = nullable(req.ClientIP())
	}
	if policy.Allows(FieldUserAgent) {
		visit.UserAgent = nullable(req.Header("user-agent"))
	}
	if policy.Allows(FieldReferrer) {
		visit.Referrer = nullable(req.Header("referer"))
	}
	if policy.Allows(FieldCountryCode) {
		visit.CountryCode = nullable(req.Header("cf-ipcountry"))
	}

	return visit
}

// enrich performs the best-effort geolocation lookup. Any failure, timeout
// included, leaves the geo fields nil; nothing propagates.
func (p *Pipeline) enrich(ctx context.Context, req Request, policy Policy, visit *Visit) {
	if p.geo == nil || !policy.WantsGeo() {
		return
	}
	ip := req.ClientIP()
	if ip == "" {
		return
	}

	geoCtx, cancel := context.WithTimeout(ctx, p.geoTimeout)
	defer cancel()

	location, err := p.geo.Lookup(geoCtx, ip)
	if err != nil || location == nil {
		return
	}

	if policy.Allows(FieldCountry) {
		visit.Country = nullable(location.Country)
	}
	if policy.Allows(FieldCity) {
		visit.City = nullable(location.City)
	}
	if policy.Allows(FieldRegion) {
		visit.Region = nullable(location.Region)
	}
}

func nullable(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
