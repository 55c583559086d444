package constants

// Error codes used in API responses.
// These are the machine-readable codes returned in the "error" field.
const (
	// Common error codes
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeAuthUnavailable = "AUTH_UNAVAILABLE"
	CodeRateLimited     = "RATE_LIMITED"

	// Redirect pipeline codes
	CodeHostMissing    = "HOST_MISSING"
	CodeDomainNotFound = "DOMAIN_NOT_FOUND"
	CodeLinkNotFound   = "LINK_NOT_FOUND"

	// CRUD codes
	CodeInvalidURL    = "INVALID_URL"
	CodeKeywordTaken  = "KEYWORD_TAKEN"
	CodeDomainTaken   = "DOMAIN_TAKEN"
	CodeDomainInUse   = "DOMAIN_IN_USE"
	CodeLinkInUse     = "LINK_IN_USE"
	CodeVisitNotFound = "VISIT_NOT_FOUND"

	// Success codes
	CodeLinkFound     = "LINK_FOUND"
	CodeLinksFound    = "LINKS_FOUND"
	CodeDomainsFound  = "DOMAINS_FOUND"
	CodeLinkCreated   = "LINK_CREATED"
	CodeLinkUpdated   = "LINK_UPDATED"
	CodeLinkDeleted   = "LINK_DELETED"
	CodeDomainCreated = "DOMAIN_CREATED"
	CodeDomainUpdated = "DOMAIN_UPDATED"
	CodeDomainDeleted = "DOMAIN_DELETED"
	CodeVisitsFound   = "VISITS_FOUND"
	CodeVisitsDeleted = "VISITS_DELETED"
	CodeStatsFound    = "STATS_FOUND"
)
