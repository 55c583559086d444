package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/atalhobr/atalho/internal/events"
	"github.com/atalhobr/atalho/internal/processing/redirect"
)

type fakeDomainRepo struct{ domain *redirect.Domain }

func (f *fakeDomainRepo) FindByName(_ context.Context, name string) (*redirect.Domain, error) {
	if f.domain != nil && f.domain.Name == name {
		return f.domain, nil
	}
	return nil, redirect.ErrDomainNotFound
}

type fakeLinkRepo struct{ link *redirect.ResolvedLink }

func (f *fakeLinkRepo) ResolveActive(_ context.Context, _, keyword string) (*redirect.ResolvedLink, error) {
	if f.link != nil && keyword == "promo" {
		return f.link, nil
	}
	return nil, redirect.ErrLinkNotFound
}

type fakeVisitRepo struct {
	mu       sync.Mutex
	inserted []*redirect.Visit
}

func (f *fakeVisitRepo) Insert(_ context.Context, v *redirect.Visit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, v)
	return nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []events.VisitRecorded
	done   chan struct{}
}

func (p *capturePublisher) PublishVisitRecorded(_ context.Context, e events.VisitRecorded) error {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
	close(p.done)
	return nil
}

func newRedirectFixture(options string) (*RedirectHandler, *fakeVisitRepo, *capturePublisher) {
	visitRepo := &fakeVisitRepo{}
	pipeline := redirect.NewPipeline(
		&fakeDomainRepo{domain: &redirect.Domain{ID: "dom-1", Name: "short.example"}},
		&fakeLinkRepo{link: &redirect.ResolvedLink{ID: "link-1", URL: "https://dest.example/page", Options: options}},
		visitRepo,
		nil,
		time.Second,
	)
	pub := &capturePublisher{done: make(chan struct{})}
	return NewRedirectHandler(pipeline, http.StatusFound, pub), visitRepo, pub
}

func TestRedirect_FoundWithCapturedVisit(t *testing.T) {
	h, visitRepo, pub := newRedirectFixture(`{"logFields":["ip_address"]}`)

	req := httptest.NewRequest(http.MethodGet, "/promo", nil)
	req.Host = "short.example"
	req.SetPathValue("keyword", "promo")
	req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")
	req.Header.Set("User-Agent", "curl/8")
	rec := httptest.NewRecorder()

	h.Redirect(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "https://dest.example/page" {
		t.Errorf("Location = %q", got)
	}
	if len(visitRepo.inserted) != 1 {
		t.Fatalf("visits inserted = %d, want 1", len(visitRepo.inserted))
	}
	visit := visitRepo.inserted[0]
	if visit.IPAddress == nil || *visit.IPAddress != "9.9.9.9" {
		t.Errorf("ip = %v, want first hop of the forwarded chain", visit.IPAddress)
	}
	if visit.UserAgent != nil {
		t.Error("user agent not in logFields, must stay nil")
	}

	select {
	case <-pub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("visit event was not published")
	}
	if pub.events[0].LinkID != "link-1" {
		t.Errorf("event link id = %q", pub.events[0].LinkID)
	}
}

func TestRedirect_UnknownKeywordIs404(t *testing.T) {
	h, visitRepo, _ := newRedirectFixture("{}")

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Host = "short.example"
	req.SetPathValue("keyword", "missing")
	rec := httptest.NewRecorder()

	h.Redirect(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if len(visitRepo.inserted) != 0 {
		t.Error("failed resolution must not record a visit")
	}
}

func TestRedirect_UnknownHostIs404(t *testing.T) {
	h, _, _ := newRedirectFixture("{}")

	req := httptest.NewRequest(http.MethodGet, "/promo", nil)
	req.Host = "other.example:8080"
	req.SetPathValue("keyword", "promo")
	rec := httptest.NewRecorder()

	h.Redirect(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRedirect_HostPortIsStripped(t *testing.T) {
	h, _, _ := newRedirectFixture("{}")

	req := httptest.NewRequest(http.MethodGet, "/promo", nil)
	req.Host = "Short.Example:8080"
	req.SetPathValue("keyword", "promo")
	rec := httptest.NewRecorder()

	h.Redirect(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want 302 after host normalization", rec.Code)
	}
}

func TestRedirect_DefaultPolicyRecordsBareVisit(t *testing.T) {
	h, visitRepo, _ := newRedirectFixture("{}")

	req := httptest.NewRequest(http.MethodGet, "/promo", nil)
	req.Host = "short.example"
	req.SetPathValue("keyword", "promo")
	req.Header.Set("X-Forwarded-For", "9.9.9.9")
	req.Header.Set("User-Agent", "curl/8")
	req.Header.Set("Referer", "https://news.example")
	rec := httptest.NewRecorder()

	h.Redirect(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	visit := visitRepo.inserted[0]
	if visit.IPAddress != nil || visit.UserAgent != nil || visit.Referrer != nil {
		t.Error("default policy must capture nothing")
	}
	if visit.LinkID != "link-1" || visit.VisitedAt.IsZero() {
		t.Error("bare visit must still carry link id and timestamp")
	}
}
