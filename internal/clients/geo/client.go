// Package geo resolves visitor IPs against an ip-api.com style endpoint.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atalhobr/atalho/internal/processing/redirect"
	"github.com/atalhobr/atalho/pkg/httpclient"
)

const lookupFields = "status,message,country,regionName,city"

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

// Lookup resolves ip to a partial location. Callers treat any error as
// "no location"; nothing here is worth blocking a redirect for.
func (c *Client) Lookup(ctx context.Context, ip string) (*redirect.Location, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return nil, fmt.Errorf("empty ip")
	}

	params := map[string]string{"fields": lookupFields}
	resp, err := c.http.Get(ctx, c.baseURL+"/json/"+ip, params, nil)
	if err != nil {
		return nil, fmt.Errorf("geo lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo lookup: status %d", resp.StatusCode)
	}

	var payload struct {
		Status     string `json:"status"`
		Message    string `json:"message"`
		Country    string `json:"country"`
		RegionName string `json:"regionName"`
		City       string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("geo lookup: decoding response: %w", err)
	}
	if payload.Status != "success" {
		return nil, fmt.Errorf("geo lookup failed: %s", payload.Message)
	}

	return &redirect.Location{
		Country: payload.Country,
		City:    payload.City,
		Region:  payload.RegionName,
	}, nil
}
