package httpserver

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atalhobr/atalho/internal/constants"
	"github.com/atalhobr/atalho/internal/infrastructure/logger"
	"github.com/atalhobr/atalho/internal/processing/links"
	"github.com/atalhobr/atalho/internal/processing/visits"
	"github.com/atalhobr/atalho/internal/transport/httpserver/middleware"
	"github.com/atalhobr/atalho/pkg/httputils"
)

// VisitsHandler is the analytics surface. Link-scoped operations are
// owner-or-admin; unscoped ones are admin-only.
type VisitsHandler struct {
	service *visits.Service
	links   *links.Service
}

func NewVisitsHandler(service *visits.Service, links *links.Service) *VisitsHandler {
	return &VisitsHandler{service: service, links: links}
}

func (h *VisitsHandler) ListByLink(w http.ResponseWriter, r *http.Request) {
	linkID, ok := h.authorizeLink(w, r, r.PathValue("linkId"))
	if !ok {
		return
	}

	limit, offset := pageParams(r)
	items, total, err := h.service.ListByLink(r.Context(), linkID, limit, offset)
	if err != nil {
		h.writeVisitError(w, r, err)
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessVisitsFound, listResponse[visitResponse]{
		Items:  toVisitResponses(items),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *VisitsHandler) ListByRange(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody.WithMessage("from must be RFC 3339"))
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody.WithMessage("to must be RFC 3339"))
		return
	}

	limit, offset := pageParams(r)
	items, err := h.service.ListByRange(r.Context(), from, to, limit, offset)
	if err != nil {
		h.writeVisitError(w, r, err)
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessVisitsFound, listResponse[visitResponse]{
		Items:  toVisitResponses(items),
		Total:  int64(len(items)),
		Limit:  limit,
		Offset: offset,
	})
}

func (h *VisitsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeVisitError(w, r, err)
		return
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessVisitsDeleted, map[string]any{"id": id, "deleted": int64(1)})
}

func (h *VisitsHandler) DeleteByLink(w http.ResponseWriter, r *http.Request) {
	linkID, ok := h.authorizeLink(w, r, r.PathValue("linkId"))
	if !ok {
		return
	}

	deleted, err := h.service.DeleteByLink(r.Context(), linkID)
	if err != nil {
		h.writeVisitError(w, r, err)
		return
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessVisitsDeleted, map[string]any{"link_id": linkID, "deleted": deleted})
}

func (h *VisitsHandler) CountryStats(w http.ResponseWriter, r *http.Request) {
	linkID := r.URL.Query().Get("link_id")
	if linkID == "" {
		user, ok := middleware.UserFrom(r.Context())
		if !ok {
			httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
			return
		}
		if !user.IsAdmin() {
			httputils.WriteAPIError(w, r, constants.ErrForbidden)
			return
		}
	} else {
		var ok bool
		if linkID, ok = h.authorizeLink(w, r, linkID); !ok {
			return
		}
	}

	stats, err := h.service.CountryStats(r.Context(), linkID)
	if err != nil {
		h.writeVisitError(w, r, err)
		return
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessStatsFound, stats)
}

// authorizeLink resolves the link and enforces owner-or-admin access.
func (h *VisitsHandler) authorizeLink(w http.ResponseWriter, r *http.Request, linkID string) (string, bool) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
		return "", false
	}

	link, err := h.links.Get(r.Context(), linkID)
	if err != nil {
		if errors.Is(err, links.ErrNotFound) {
			httputils.WriteAPIError(w, r, constants.ErrLinkNotFound)
		} else {
			logger.Error("link lookup failed", zap.Error(err))
			httputils.WriteAPIError(w, r, constants.ErrInternalError)
		}
		return "", false
	}
	if link.UserID != user.ID && !user.IsAdmin() {
		httputils.WriteAPIError(w, r, constants.ErrForbidden)
		return "", false
	}
	return link.ID, true
}

func (h *VisitsHandler) writeVisitError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, visits.ErrNotFound):
		httputils.WriteAPIError(w, r, constants.ErrVisitNotFound)
	case errors.Is(err, visits.ErrInvalidRange):
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody.WithMessage("to must not precede from"))
	default:
		logger.Error("visit operation failed", zap.Error(err))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
	}
}
