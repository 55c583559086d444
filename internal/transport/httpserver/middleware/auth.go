package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/atalhobr/atalho/internal/clients/auth"
	"github.com/atalhobr/atalho/internal/constants"
	"github.com/atalhobr/atalho/pkg/httputils"
)

// Introspector resolves a bearer token to a user. Implemented by the auth
// microservice client.
type Introspector interface {
	Introspect(ctx context.Context, token string) (*auth.User, error)
}

type userContextKey struct{}

// UserFrom returns the authenticated user stored by RequireAuth.
func UserFrom(ctx context.Context) (*auth.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*auth.User)
	return user, ok
}

// WithUser stores the user the way RequireAuth does.
func WithUser(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// RequireAuth rejects requests without a valid bearer token. The token is
// introspected remotely exactly once per request; an unreachable identity
// service is a 503, never a silent pass.
func RequireAuth(introspector Introspector) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
				return
			}

			user, err := introspector.Introspect(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
					return
				}
				httputils.WriteAPIError(w, r, constants.ErrAuthUnavailable)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin must run inside RequireAuth.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFrom(r.Context())
			if !ok {
				httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
				return
			}
			if !user.IsAdmin() {
				httputils.WriteAPIError(w, r, constants.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
