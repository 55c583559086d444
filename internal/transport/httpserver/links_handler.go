package httpserver

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atalhobr/atalho/internal/constants"
	"github.com/atalhobr/atalho/internal/infrastructure/logger"
	"github.com/atalhobr/atalho/internal/infrastructure/validation"
	"github.com/atalhobr/atalho/internal/processing/links"
	"github.com/atalhobr/atalho/internal/transport/httpserver/middleware"
	"github.com/atalhobr/atalho/pkg/httputils"
)

type LinksHandler struct {
	service *links.Service
}

func NewLinksHandler(service *links.Service) *LinksHandler {
	return &LinksHandler{service: service}
}

type createLinkRequest struct {
	DomainID    string `json:"domain_id" validate:"required,notblank"`
	URL         string `json:"url" validate:"required,http_url"`
	Title       string `json:"title" validate:"required,notblank"`
	Keyword     string `json:"keyword" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Options     string `json:"options"`
	UserID      string `json:"user_id"` // admins may create on behalf of another user
}

func (h *LinksHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
		return
	}

	var body createLinkRequest
	if err := decodeJSON(r, &body); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}
	if err := validation.Validate(body); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody.WithMessage(err.Error()))
		return
	}

	userID := user.ID
	if body.UserID != "" && user.IsAdmin() {
		userID = body.UserID
	}

	link, err := h.service.Create(r.Context(), links.CreateLinkInput{
		DomainID:    body.DomainID,
		UserID:      userID,
		URL:         body.URL,
		Title:       body.Title,
		Keyword:     body.Keyword,
		Description: body.Description,
		IPAddress:   clientIP(r),
		Options:     body.Options,
	})
	if err != nil {
		h.writeLinkError(w, r, err)
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessLinkCreated, toLinkResponse(link))
}

func (h *LinksHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
		return
	}
	limit, offset := pageParams(r)

	var (
		items []links.Link
		total int64
		err   error
	)
	if user.IsAdmin() {
		items, total, err = h.service.List(r.Context(), limit, offset)
	} else {
		items, total, err = h.service.ListByUser(r.Context(), user.ID, limit, offset)
	}
	if err != nil {
		h.writeLinkError(w, r, err)
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessLinksFound, listResponse[linkResponse]{
		Items:  toLinkResponses(items),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *LinksHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	link, ok := h.ownedLink(w, r)
	if !ok {
		return
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessLinkFound, toLinkResponse(link))
}

func (h *LinksHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
		return
	}

	targetUserID := r.PathValue("userId")
	if targetUserID != user.ID && !user.IsAdmin() {
		httputils.WriteAPIError(w, r, constants.ErrForbidden)
		return
	}

	limit, offset := pageParams(r)
	items, total, err := h.service.ListByUser(r.Context(), targetUserID, limit, offset)
	if err != nil {
		h.writeLinkError(w, r, err)
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessLinksFound, listResponse[linkResponse]{
		Items:  toLinkResponses(items),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

type updateLinkRequest struct {
	DomainID    *string `json:"domain_id"`
	UserID      *string `json:"user_id"`
	URL         *string `json:"url"`
	Title       *string `json:"title"`
	Keyword     *string `json:"keyword"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	Options     *string `json:"options"`
}

func (h *LinksHandler) Update(w http.ResponseWriter, r *http.Request) {
	link, ok := h.ownedLink(w, r)
	if !ok {
		return
	}
	user, _ := middleware.UserFrom(r.Context())

	var body updateLinkRequest
	if err := decodeJSON(r, &body); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}
	if body.UserID != nil && !user.IsAdmin() {
		// Only admins may reassign ownership.
		body.UserID = nil
	}

	updated, err := h.service.Update(r.Context(), link.ID, links.UpdateLinkInput{
		DomainID:    body.DomainID,
		UserID:      body.UserID,
		URL:         body.URL,
		Title:       body.Title,
		Keyword:     body.Keyword,
		Description: body.Description,
		Active:      body.Active,
		Options:     body.Options,
	})
	if err != nil {
		h.writeLinkError(w, r, err)
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessLinkUpdated, toLinkResponse(updated))
}

func (h *LinksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	link, ok := h.ownedLink(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), link.ID); err != nil {
		h.writeLinkError(w, r, err)
		return
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessLinkDeleted, map[string]string{"id": link.ID})
}

// ownedLink loads the path link and enforces owner-or-admin access.
func (h *LinksHandler) ownedLink(w http.ResponseWriter, r *http.Request) (*links.Link, bool) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
		return nil, false
	}

	link, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeLinkError(w, r, err)
		return nil, false
	}
	if link.UserID != user.ID && !user.IsAdmin() {
		httputils.WriteAPIError(w, r, constants.ErrForbidden)
		return nil, false
	}
	return link, true
}

func (h *LinksHandler) writeLinkError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, links.ErrNotFound):
		httputils.WriteAPIError(w, r, constants.ErrLinkNotFound)
	case errors.Is(err, links.ErrMissingFields):
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
	case errors.Is(err, links.ErrInvalidURL):
		httputils.WriteAPIError(w, r, constants.ErrInvalidURL)
	case errors.Is(err, links.ErrKeywordTaken):
		httputils.WriteAPIError(w, r, constants.ErrKeywordTaken)
	case errors.Is(err, links.ErrDomainAbsent):
		httputils.WriteAPIError(w, r, constants.ErrDomainNotFound)
	case errors.Is(err, links.ErrInUse):
		httputils.WriteAPIError(w, r, constants.ErrLinkInUse)
	default:
		logger.Error("link operation failed", zap.Error(err))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
	}
}
