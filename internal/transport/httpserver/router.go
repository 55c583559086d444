// Package httpserver assembles the HTTP surface: public redirect, the /api
// management endpoints, health and metrics.
package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/atalhobr/atalho/internal/transport/httpserver/middleware"
)

type RouterDeps struct {
	Redirect *RedirectHandler
	Links    *LinksHandler
	Domains  *DomainsHandler
	Visits   *VisitsHandler
	Health   *HealthHandler

	Introspector middleware.Introspector
	Limiter      middleware.Limiter

	AllowedOrigins []string
	TracingEnabled bool
}

// NewRouter wires routes to handlers with their per-route middleware. Every
// route carries metrics under its registered pattern; auth and rate limiting
// apply only where the route needs them.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(d.Introspector)
	admin := middleware.RequireAdmin()
	limited := middleware.RateLimit(d.Limiter)

	handle := func(pattern string, h http.HandlerFunc, mws ...middleware.Middleware) {
		all := append([]middleware.Middleware{middleware.Metrics(pattern)}, mws...)
		mux.Handle(pattern, middleware.Chain(h, all...))
	}

	handle("GET /health", d.Health.Check)
	mux.Handle("GET /metrics", promhttp.Handler())

	handle("POST /api/links", d.Links.Create, authed, limited)
	handle("GET /api/links", d.Links.List, authed)
	handle("GET /api/links/{id}", d.Links.GetByID, authed)
	handle("GET /api/links/user/{userId}", d.Links.ListByUser, authed)
	handle("PUT /api/links/{id}", d.Links.Update, authed, limited)
	handle("DELETE /api/links/{id}", d.Links.Delete, authed, limited)

	handle("POST /api/domains", d.Domains.Create, authed, admin, limited)
	handle("GET /api/domains", d.Domains.List, authed)
	handle("PUT /api/domains/{id}", d.Domains.Update, authed, admin, limited)
	handle("DELETE /api/domains/{id}", d.Domains.Delete, authed, admin, limited)

	handle("GET /api/visits", d.Visits.ListByRange, authed, admin)
	handle("GET /api/visits/link/{linkId}", d.Visits.ListByLink, authed)
	handle("GET /api/visits/stats/countries", d.Visits.CountryStats, authed)
	handle("DELETE /api/visits/{id}", d.Visits.Delete, authed, admin, limited)
	handle("DELETE /api/visits/link/{linkId}", d.Visits.DeleteByLink, authed, limited)

	handle("GET /{keyword}", d.Redirect.Redirect)

	root := middleware.Chain(mux,
		middleware.CORS(d.AllowedOrigins),
		middleware.Logging(),
	)
	if d.TracingEnabled {
		root = otelhttp.NewHandler(root, "atalho.http")
	}
	return root
}
