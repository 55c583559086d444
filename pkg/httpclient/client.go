// Package httpclient is a thin HTTP client for the service's outbound calls.
// Every call is a single attempt bounded by the client timeout; a circuit
// breaker sheds load when a collaborator keeps failing. There is deliberately
// no retry loop.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	client *http.Client
	cb     *CircuitBreaker
}

func NewClient(timeout time.Duration, maxFailures int, cbInterval time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if cbInterval <= 0 {
		cbInterval = 30 * time.Second
	}
	return &Client{
		client: &http.Client{Timeout: timeout},
		cb:     NewCircuitBreaker(maxFailures, cbInterval),
	}
}

// Get performs a single GET attempt. Server errors (5xx) and transport errors
// count against the circuit breaker; the caller decides what non-2xx means.
func (c *Client) Get(ctx context.Context, baseURL string, queryParams map[string]string, headers map[string]string) (*http.Response, error) {
	if err := c.cb.CheckBeforeRequest(); err != nil {
		return nil, err
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing url: %w", err)
	}
	if len(queryParams) > 0 {
		q := u.Query()
		for k, v := range queryParams {
			q.Add(k, v)
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.cb.OnFailure()
		return nil, err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		c.cb.OnFailure()
		return resp, nil
	}

	c.cb.OnSuccess()
	return resp, nil
}
