package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atalhobr/atalho/internal/processing/domains"
	"github.com/atalhobr/atalho/internal/processing/links"
	"github.com/atalhobr/atalho/internal/processing/visits"
)

type linkResponse struct {
	ID          string          `json:"id"`
	DomainID    string          `json:"domain_id"`
	UserID      string          `json:"user_id"`
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Keyword     string          `json:"keyword"`
	Description string          `json:"description"`
	Clicks      int64           `json:"clicks"`
	Active      bool            `json:"active"`
	Options     json.RawMessage `json:"options"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toLinkResponse(l *links.Link) linkResponse {
	return linkResponse{
		ID:          l.ID,
		DomainID:    l.DomainID,
		UserID:      l.UserID,
		URL:         l.URL,
		Title:       l.Title,
		Keyword:     l.Keyword,
		Description: l.Description,
		Clicks:      l.Clicks,
		Active:      l.Active,
		Options:     json.RawMessage(l.Options),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toLinkResponses(items []links.Link) []linkResponse {
	out := make([]linkResponse, 0, len(items))
	for i := range items {
		out = append(out, toLinkResponse(&items[i]))
	}
	return out
}

type listResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type domainResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDomainResponse(d *domains.Domain) domainResponse {
	return domainResponse{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type visitResponse struct {
	ID          string    `json:"id"`
	LinkID      string    `json:"link_id"`
	VisitedAt   time.Time `json:"visited_at"`
	IPAddress   *string   `json:"ip_address,omitempty"`
	UserAgent   *string   `json:"user_agent,omitempty"`
	Referrer    *string   `json:"referrer,omitempty"`
	CountryCode *string   `json:"country_code,omitempty"`
	Country     *string   `json:"country,omitempty"`
	City        *string   `json:"city,omitempty"`
	Region      *string   `json:"region,omitempty"`
}

func toVisitResponses(items []visits.Visit) []visitResponse {
	out := make([]visitResponse, 0, len(items))
	for _, v := range items {
		out = append(out, visitResponse{
			ID:          v.ID,
			LinkID:      v.LinkID,
			VisitedAt:   v.VisitedAt,
			IPAddress:   v.IPAddress,
			UserAgent:   v.UserAgent,
			Referrer:    v.Referrer,
			CountryCode: v.CountryCode,
			Country:     v.Country,
			City:        v.City,
			Region:      v.Region,
		})
	}
	return out
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func pageParams(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

// clientIP mirrors the redirect pipeline's proxy header precedence, with the
// socket address as a final fallback.
func clientIP(r *http.Request) string {
	for _, h := range []string{"Cf-Connecting-Ip", "X-Forwarded-For", "X-Real-Ip"} {
		if v := strings.TrimSpace(r.Header.Get(h)); v != "" {
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = strings.TrimSpace(v[:i])
			}
			return v
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
