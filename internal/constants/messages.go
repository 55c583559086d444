package constants

// Error messages used in API responses.
// These are the human-readable messages returned in the "message" field.
const (
	// Common messages
	MsgInvalidRequestBody = "Invalid request body"
	MsgInternalError      = "An internal error occurred"
	MsgUnauthorized       = "Missing or invalid bearer token"
	MsgAuthUnavailable    = "Authentication service unreachable"
	MsgForbidden          = "Insufficient permissions"
	MsgRateLimited        = "Too many requests"

	// Redirect pipeline messages
	MsgHostMissing    = "Host header missing"
	MsgDomainNotFound = "Domain not found"
	MsgLinkNotFound   = "Link not found for this domain and keyword"

	// CRUD messages
	MsgInvalidURL    = "Invalid URL (must be http or https)"
	MsgKeywordTaken  = "Keyword already in use for this domain"
	MsgDomainTaken   = "Domain already registered"
	MsgDomainInUse   = "Domain still has links registered under it"
	MsgLinkInUse     = "Link still has recorded visits"
	MsgVisitNotFound = "Visit not found"
)
