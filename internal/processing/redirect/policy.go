package redirect

import (
	"encoding/json"
	"strings"
)

// CaptureField names a visitor attribute a link may capture.
type CaptureField string

const (
	FieldIPAddress   CaptureField = "ip_address"
	FieldUserAgent   CaptureField = "user_agent"
	FieldReferrer    CaptureField = "referrer"
	FieldCountryCode CaptureField = "country_code"
	FieldCountry     CaptureField = "country"
	FieldCity        CaptureField = "city"
	FieldRegion      CaptureField = "region"
)

var captureVocabulary = map[string]CaptureField{
	"ip_address":   FieldIPAddress,
	"user_agent":   FieldUserAgent,
	"referrer":     FieldReferrer,
	"country_code": FieldCountryCode,
	"country":      FieldCountry,
	"city":         FieldCity,
	"region":       FieldRegion,
}

// Policy is the capture decision parsed from a link's options text.
//
// Default marks the fallback taken when the options carry no usable
// "logFields" list (absent key, non-list value, or invalid JSON). The default
// policy captures nothing: visitor data is only stored when a link opts in
// explicitly.
type Policy struct {
	Default bool
	Fields  []CaptureField
}

// ParsePolicy derives the capture policy from raw options JSON. It is pure
// and deterministic; identical input always yields an identical policy.
// Unrecognized field names and duplicates are dropped, order is preserved.
func ParsePolicy(options string) Policy {
	trimmed := strings.TrimSpace(options)
	if trimmed == "" {
		return Policy{Default: true}
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return Policy{Default: true}
	}

	rawList, ok := doc["logFields"].([]any)
	if !ok {
		return Policy{Default: true}
	}

	fields := make([]CaptureField, 0, len(rawList))
	seen := make(map[CaptureField]struct{}, len(rawList))
	for _, item := range rawList {
		name, ok := item.(string)
		if !ok {
			continue
		}
		field, ok := captureVocabulary[name]
		if !ok {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		fields = append(fields, field)
	}

	return Policy{Fields: fields}
}

// Allows reports whether the policy permits capturing the given field.
func (p Policy) Allows(field CaptureField) bool {
	for _, f := range p.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// WantsGeo reports whether any field requiring a geolocation lookup is
// allowed.
func (p Policy) WantsGeo() bool {
	return p.Allows(FieldCountry) || p.Allows(FieldCity) || p.Allows(FieldRegion)
}
