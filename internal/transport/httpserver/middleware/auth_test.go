package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atalhobr/atalho/internal/clients/auth"
)

type mockIntrospector struct {
	user *auth.User
	err  error

	gotToken string
}

func (m *mockIntrospector) Introspect(_ context.Context, token string) (*auth.User, error) {
	m.gotToken = token
	return m.user, m.err
}

func okHandler(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok {
			t.Error("user missing from context")
		} else if user.ID != wantUserID {
			t.Errorf("user id = %q, want %q", user.ID, wantUserID)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	intro := &mockIntrospector{user: &auth.User{ID: "user-1"}}
	h := RequireAuth(intro)(okHandler(t, "user-1"))

	req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
	if intro.gotToken != "tok-123" {
		t.Errorf("token = %q", intro.gotToken)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	h := RequireAuth(&mockIntrospector{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/links", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuth_MalformedScheme(t *testing.T) {
	h := RequireAuth(&mockIntrospector{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	intro := &mockIntrospector{err: auth.ErrInvalidToken}
	h := RequireAuth(intro)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuth_UnavailableIs503(t *testing.T) {
	intro := &mockIntrospector{err: auth.ErrUnavailable}
	h := RequireAuth(intro)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRequireAdmin_ForbidsMembers(t *testing.T) {
	intro := &mockIntrospector{user: &auth.User{ID: "user-1", Role: "member"}}
	h := Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("handler must not run")
		}),
		RequireAuth(intro), RequireAdmin(),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/domains", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireAdmin_AllowsAdmins(t *testing.T) {
	intro := &mockIntrospector{user: &auth.User{ID: "adm-1", Role: auth.RoleAdmin}}
	h := Chain(okHandler(t, "adm-1"), RequireAuth(intro), RequireAdmin())

	req := httptest.NewRequest(http.MethodPost, "/api/domains", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
}

type allowAllLimiter struct{ allowed bool }

func (l allowAllLimiter) Allow(context.Context, string) bool { return l.allowed }

func TestRateLimit_Rejects(t *testing.T) {
	h := RateLimit(allowAllLimiter{allowed: false})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/links", nil))

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}
