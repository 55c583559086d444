// Package events defines the payloads published to the message bus.
package events

import "time"

// VisitRecorded is emitted after a visit row is durably stored. Only
// attributes the link's capture policy allowed are present.
type VisitRecorded struct {
	VisitID     string    `json:"visit_id"`
	LinkID      string    `json:"link_id"`
	VisitedAt   time.Time `json:"visited_at"`
	CountryCode *string   `json:"country_code,omitempty"`
	Country     *string   `json:"country,omitempty"`
	City        *string   `json:"city,omitempty"`
	Region      *string   `json:"region,omitempty"`
	Referrer    *string   `json:"referrer,omitempty"`
}
