package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	return NewClient(url, 2*time.Second)
}

func TestIntrospect_ResolvesUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user_id":"user-1","username":"ana","email":"ana@example.com","role":"admin"}`))
	}))
	defer srv.Close()

	user, err := newTestClient(srv.URL).Introspect(context.Background(), "tok-123")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != "user-1" {
		t.Errorf("id = %q", user.ID)
	}
	if !user.IsAdmin() {
		t.Error("role admin must report IsAdmin")
	}
}

func TestIntrospect_UnwrapsUserEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"user":{"userId":"user-9","role":"member"}}`))
	}))
	defer srv.Close()

	user, err := newTestClient(srv.URL).Introspect(context.Background(), "tok")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != "user-9" {
		t.Errorf("id = %q", user.ID)
	}
	if user.IsAdmin() {
		t.Error("member must not be admin")
	}
}

func TestIntrospect_UnauthorizedMeansInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Introspect(context.Background(), "expired")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got: %v", err)
	}
}

func TestIntrospect_EmptyTokenIsInvalid(t *testing.T) {
	_, err := newTestClient("http://auth.invalid").Introspect(context.Background(), "  ")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got: %v", err)
	}
}

func TestIntrospect_ServerErrorMeansUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Introspect(context.Background(), "tok")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got: %v", err)
	}
}

func TestIntrospect_UnreachableMeansUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).Introspect(context.Background(), "tok")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got: %v", err)
	}
}

func TestIntrospect_MissingIDIsInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"username":"ghost"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Introspect(context.Background(), "tok")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got: %v", err)
	}
}
