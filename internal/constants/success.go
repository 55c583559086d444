package constants

import "net/http"

// APISuccess represents a standardized API success response with code and HTTP status.
// Use these predefined success constants for consistent API responses across the application.
type APISuccess struct {
	Code   string
	Status int
}

var (
	SuccessLinkFound = APISuccess{
		Code:   CodeLinkFound,
		Status: http.StatusOK,
	}
	SuccessLinksFound = APISuccess{
		Code:   CodeLinksFound,
		Status: http.StatusOK,
	}
	SuccessDomainsFound = APISuccess{
		Code:   CodeDomainsFound,
		Status: http.StatusOK,
	}
	SuccessLinkCreated = APISuccess{
		Code:   CodeLinkCreated,
		Status: http.StatusCreated,
	}
	SuccessLinkUpdated = APISuccess{
		Code:   CodeLinkUpdated,
		Status: http.StatusOK,
	}
	SuccessLinkDeleted = APISuccess{
		Code:   CodeLinkDeleted,
		Status: http.StatusOK,
	}
	SuccessDomainCreated = APISuccess{
		Code:   CodeDomainCreated,
		Status: http.StatusCreated,
	}
	SuccessDomainUpdated = APISuccess{
		Code:   CodeDomainUpdated,
		Status: http.StatusOK,
	}
	SuccessDomainDeleted = APISuccess{
		Code:   CodeDomainDeleted,
		Status: http.StatusOK,
	}
	SuccessVisitsFound = APISuccess{
		Code:   CodeVisitsFound,
		Status: http.StatusOK,
	}
	SuccessVisitsDeleted = APISuccess{
		Code:   CodeVisitsDeleted,
		Status: http.StatusOK,
	}
	SuccessStatsFound = APISuccess{
		Code:   CodeStatsFound,
		Status: http.StatusOK,
	}
)
