package links

import (
	"encoding/json"
	"strings"
)

// EmptyOptions is the canonical options text for links without configuration.
const EmptyOptions = "{}"

// NormalizeOptions guarantees the stored options are always valid JSON text.
// Empty, blank or malformed input becomes the canonical empty object instead
// of being rejected.
func NormalizeOptions(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return EmptyOptions
	}
	if !json.Valid([]byte(trimmed)) {
		return EmptyOptions
	}
	return trimmed
}
