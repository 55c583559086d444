// Package auth talks to the identity microservice. The service never issues
// tokens itself; it only introspects the bearer it was handed.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atalhobr/atalho/pkg/httpclient"
)

const introspectPath = "/api/v1/user_routers/user/me"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrUnavailable  = errors.New("auth service unavailable")
)

const RoleAdmin = "admin"

type User struct {
	ID       string
	Username string
	Email    string
	Role     string
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type Client struct {
	http    *httpclient.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    httpclient.NewClient(timeout, 5, 30*time.Second),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Introspect resolves the bearer token to the authenticated user. The call is
// attempted exactly once; any failure to reach a verdict is ErrUnavailable.
func (c *Client) Introspect(ctx context.Context, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	resp, err := c.http.Get(ctx, c.baseURL+introspectPath, nil, headers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if payload.User != nil {
		payload = *payload.User
	}

	user := &User{
		ID:       payload.id(),
		Username: payload.Username,
		Email:    payload.Email,
		Role:     payload.Role,
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// userPayload tolerates the identity service's shifting field names. The user
// object may also arrive wrapped under a "user" key.
type userPayload struct {
	ID       string       `json:"id"`
	UserID   string       `json:"user_id"`
	UserIDCC string       `json:"userId"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Role     string       `json:"role"`
	User     *userPayload `json:"user"`
}

func (p userPayload) id() string {
	for _, candidate := range []string{p.ID, p.UserID, p.UserIDCC} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
