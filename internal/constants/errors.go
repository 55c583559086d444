package constants

import "net/http"

// APIError represents a standardized API error with code, message, and HTTP status.
// Use these predefined errors for consistent API responses across the application.
type APIError struct {
	Code    string
	Message string
	Status  int
}

// WithMessage returns a copy of the APIError with a custom message.
// Useful for validation errors or other dynamic messages.
func (e APIError) WithMessage(message string) APIError {
	return APIError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
	}
}

// Common errors - shared across multiple modules
var (
	ErrInvalidRequestBody = APIError{
		Code:    CodeInvalidRequest,
		Message: MsgInvalidRequestBody,
		Status:  http.StatusBadRequest,
	}
	ErrInternalError = APIError{
		Code:    CodeInternalError,
		Message: MsgInternalError,
		Status:  http.StatusInternalServerError,
	}
	ErrUnauthorized = APIError{
		Code:    CodeUnauthorized,
		Message: MsgUnauthorized,
		Status:  http.StatusUnauthorized,
	}
	ErrAuthUnavailable = APIError{
		Code:    CodeAuthUnavailable,
		Message: MsgAuthUnavailable,
		Status:  http.StatusServiceUnavailable,
	}
	ErrForbidden = APIError{
		Code:    CodeForbidden,
		Message: MsgForbidden,
		Status:  http.StatusForbidden,
	}
	ErrRateLimited = APIError{
		Code:    CodeRateLimited,
		Message: MsgRateLimited,
		Status:  http.StatusTooManyRequests,
	}
)

// Redirect pipeline errors
var (
	ErrHostMissing = APIError{
		Code:    CodeHostMissing,
		Message: MsgHostMissing,
		Status:  http.StatusBadRequest,
	}
	ErrDomainNotFound = APIError{
		Code:    CodeDomainNotFound,
		Message: MsgDomainNotFound,
		Status:  http.StatusNotFound,
	}
	ErrLinkNotFound = APIError{
		Code:    CodeLinkNotFound,
		Message: MsgLinkNotFound,
		Status:  http.StatusNotFound,
	}
)

// CRUD errors
var (
	ErrInvalidURL = APIError{
		Code:    CodeInvalidURL,
		Message: MsgInvalidURL,
		Status:  http.StatusBadRequest,
	}
	ErrKeywordTaken = APIError{
		Code:    CodeKeywordTaken,
		Message: MsgKeywordTaken,
		Status:  http.StatusConflict,
	}
	ErrDomainTaken = APIError{
		Code:    CodeDomainTaken,
		Message: MsgDomainTaken,
		Status:  http.StatusConflict,
	}
	ErrDomainInUse = APIError{
		Code:    CodeDomainInUse,
		Message: MsgDomainInUse,
		Status:  http.StatusConflict,
	}
	ErrLinkInUse = APIError{
		Code:    CodeLinkInUse,
		Message: MsgLinkInUse,
		Status:  http.StatusConflict,
	}
	ErrVisitNotFound = APIError{
		Code:    CodeVisitNotFound,
		Message: MsgVisitNotFound,
		Status:  http.StatusNotFound,
	}
)
