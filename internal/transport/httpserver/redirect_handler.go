package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atalhobr/atalho/internal/constants"
	"github.com/atalhobr/atalho/internal/events"
	"github.com/atalhobr/atalho/internal/infrastructure/logger"
	"github.com/atalhobr/atalho/internal/processing/redirect"
	"github.com/atalhobr/atalho/pkg/httputils"
)

// VisitPublisher pushes visit events to the bus. Nil disables publishing.
type VisitPublisher interface {
	PublishVisitRecorded(ctx context.Context, event events.VisitRecorded) error
}

// RedirectHandler is the public hot path: no auth, one pipeline run per hit.
type RedirectHandler struct {
	pipeline  *redirect.Pipeline
	status    int
	publisher VisitPublisher
}

func NewRedirectHandler(pipeline *redirect.Pipeline, status int, publisher VisitPublisher) *RedirectHandler {
	if status != http.StatusFound && status != http.StatusTemporaryRedirect {
		status = http.StatusFound
	}
	return &RedirectHandler{pipeline: pipeline, status: status, publisher: publisher}
}

func (h *RedirectHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	req := redirect.Request{
		Host:    requestHost(r),
		Keyword: r.PathValue("keyword"),
		Headers: flattenHeaders(r.Header),
	}

	result, err := h.pipeline.Execute(r.Context(), req)
	if err != nil {
		h.writeRedirectError(w, r, err)
		return
	}

	// The visitor never waits on the bus.
	if h.publisher != nil {
		go h.publish(result.Visit)
	}

	http.Redirect(w, r, result.URL, h.status)
}

func (h *RedirectHandler) publish(visit *redirect.Visit) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := events.VisitRecorded{
		VisitID:     visit.ID,
		LinkID:      visit.LinkID,
		VisitedAt:   visit.VisitedAt,
		CountryCode: visit.CountryCode,
		Country:     visit.Country,
		City:        visit.City,
		Region:      visit.Region,
		Referrer:    visit.Referrer,
	}
	if err := h.publisher.PublishVisitRecorded(ctx, event); err != nil {
		logger.Warn("visit event publish failed",
			zap.String("visit_id", visit.ID),
			zap.Error(err),
		)
	}
}

func (h *RedirectHandler) writeRedirectError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, redirect.ErrHostMissing):
		httputils.WriteAPIError(w, r, constants.ErrHostMissing)
	case errors.Is(err, redirect.ErrDomainNotFound):
		httputils.WriteAPIError(w, r, constants.ErrDomainNotFound)
	case errors.Is(err, redirect.ErrLinkNotFound):
		httputils.WriteAPIError(w, r, constants.ErrLinkNotFound)
	default:
		logger.Error("redirect failed", zap.Error(err))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
	}
}

// requestHost strips the port and lower-cases; domains are stored bare.
func requestHost(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSpace(host))
}

func flattenHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for name, values := range header {
		if len(values) > 0 {
			out[strings.ToLower(name)] = values[0]
		}
	}
	return out
}
