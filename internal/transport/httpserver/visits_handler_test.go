package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atalhobr/atalho/internal/clients/auth"
	"github.com/atalhobr/atalho/internal/processing/links"
	"github.com/atalhobr/atalho/internal/processing/visits"
)

type fakeVisitsStore struct {
	byLink  map[string][]visits.Visit
	deleted []string
}

func (f *fakeVisitsStore) FindByLink(_ context.Context, linkID string, _, _ int) ([]visits.Visit, error) {
	return f.byLink[linkID], nil
}
func (f *fakeVisitsStore) CountByLink(_ context.Context, linkID string) (int64, error) {
	return int64(len(f.byLink[linkID])), nil
}
func (f *fakeVisitsStore) FindByRange(context.Context, time.Time, time.Time, int, int) ([]visits.Visit, error) {
	return nil, nil
}
func (f *fakeVisitsStore) Delete(_ context.Context, id string) (bool, error) {
	f.deleted = append(f.deleted, id)
	return true, nil
}
func (f *fakeVisitsStore) DeleteByLink(_ context.Context, linkID string) (int64, error) {
	n := int64(len(f.byLink[linkID]))
	delete(f.byLink, linkID)
	return n, nil
}
func (f *fakeVisitsStore) CountByCountry(context.Context, string) ([]visits.CountryCount, error) {
	return []visits.CountryCount{{Country: "Brazil", Count: 2}}, nil
}

func newVisitsFixture(store *fakeVisitsStore) *VisitsHandler {
	linkStore := &fakeLinksStore{links: map[string]*links.Link{
		"link-1": {ID: "link-1", UserID: "owner-1", Options: "{}"},
	}}
	return NewVisitsHandler(visits.NewService(store), links.NewService(linkStore))
}

func TestVisitsListByLink_OwnerAllowed(t *testing.T) {
	store := &fakeVisitsStore{byLink: map[string][]visits.Visit{
		"link-1": {{ID: "v-1", LinkID: "link-1"}},
	}}
	h := newVisitsFixture(store)

	req := authedRequest(http.MethodGet, "/api/visits/link/link-1", "", &auth.User{ID: "owner-1", Role: "member"})
	req.SetPathValue("linkId", "link-1")
	rec := httptest.NewRecorder()

	h.ListByLink(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestVisitsListByLink_StrangerForbidden(t *testing.T) {
	h := newVisitsFixture(&fakeVisitsStore{})

	req := authedRequest(http.MethodGet, "/api/visits/link/link-1", "", &auth.User{ID: "intruder", Role: "member"})
	req.SetPathValue("linkId", "link-1")
	rec := httptest.NewRecorder()

	h.ListByLink(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestVisitsListByLink_UnknownLinkIs404(t *testing.T) {
	h := newVisitsFixture(&fakeVisitsStore{})

	req := authedRequest(http.MethodGet, "/api/visits/link/ghost", "", &auth.User{ID: "owner-1"})
	req.SetPathValue("linkId", "ghost")
	rec := httptest.NewRecorder()

	h.ListByLink(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestVisitsListByRange_RejectsBadDates(t *testing.T) {
	h := newVisitsFixture(&fakeVisitsStore{})

	req := authedRequest(http.MethodGet, "/api/visits?from=yesterday&to=today", "", &auth.User{ID: "adm", Role: auth.RoleAdmin})
	rec := httptest.NewRecorder()

	h.ListByRange(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestVisitsCountryStats_UnscopedNeedsAdmin(t *testing.T) {
	h := newVisitsFixture(&fakeVisitsStore{})

	req := authedRequest(http.MethodGet, "/api/visits/stats/countries", "", &auth.User{ID: "user-1", Role: "member"})
	rec := httptest.NewRecorder()

	h.CountryStats(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestVisitsCountryStats_OwnerScopedAllowed(t *testing.T) {
	h := newVisitsFixture(&fakeVisitsStore{})

	req := authedRequest(http.MethodGet, "/api/visits/stats/countries?link_id=link-1", "", &auth.User{ID: "owner-1", Role: "member"})
	rec := httptest.NewRecorder()

	h.CountryStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestVisitsDeleteByLink_ReportsCount(t *testing.T) {
	store := &fakeVisitsStore{byLink: map[string][]visits.Visit{
		"link-1": {{ID: "v-1"}, {ID: "v-2"}},
	}}
	h := newVisitsFixture(store)

	req := authedRequest(http.MethodDelete, "/api/visits/link/link-1", "", &auth.User{ID: "owner-1"})
	req.SetPathValue("linkId", "link-1")
	rec := httptest.NewRecorder()

	h.DeleteByLink(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(store.byLink["link-1"]) != 0 {
		t.Error("visits must be gone")
	}
}
