package httpserver

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atalhobr/atalho/internal/constants"
	"github.com/atalhobr/atalho/internal/infrastructure/logger"
	"github.com/atalhobr/atalho/internal/infrastructure/validation"
	"github.com/atalhobr/atalho/internal/processing/domains"
	"github.com/atalhobr/atalho/pkg/httputils"
)

// DomainsHandler manages tenant hosts. Mutations are admin-only; the router
// enforces that.
type DomainsHandler struct {
	service *domains.Service
}

func NewDomainsHandler(service *domains.Service) *DomainsHandler {
	return &DomainsHandler{service: service}
}

type createDomainRequest struct {
	Name string `json:"name" validate:"required,host_string"`
}

func (h *DomainsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createDomainRequest
	if err := decodeJSON(r, &body); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}
	if err := validation.Validate(body); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody.WithMessage(err.Error()))
		return
	}

	domain, err := h.service.Create(r.Context(), body.Name)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessDomainCreated, toDomainResponse(domain))
}

func (h *DomainsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	items, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	out := make([]domainResponse, 0, len(items))
	for i := range items {
		out = append(out, toDomainResponse(&items[i]))
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessDomainsFound, out)
}

type updateDomainRequest struct {
	Name *string `json:"name"`
}

func (h *DomainsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body updateDomainRequest
	if err := decodeJSON(r, &body); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}

	domain, err := h.service.Update(r.Context(), r.PathValue("id"), domains.UpdateDomainInput{Name: body.Name})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessDomainUpdated, toDomainResponse(domain))
}

func (h *DomainsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessDomainDeleted, map[string]string{"id": id})
}

func (h *DomainsHandler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domains.ErrNotFound):
		httputils.WriteAPIError(w, r, constants.ErrDomainNotFound)
	case errors.Is(err, domains.ErrInvalidName):
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody.WithMessage("Invalid domain name"))
	case errors.Is(err, domains.ErrNameTaken):
		httputils.WriteAPIError(w, r, constants.ErrDomainTaken)
	case errors.Is(err, domains.ErrInUse):
		httputils.WriteAPIError(w, r, constants.ErrDomainInUse)
	default:
		logger.Error("domain operation failed", zap.Error(err))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
	}
}
