package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atalhobr/atalho/internal/infrastructure/logger"
	"github.com/atalhobr/atalho/pkg/httputils"
)

// Logging emits one structured line per request, tagged with the correlation
// id so a redirect can be traced across services.
func Logging() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
				zap.String("correlation_id", httputils.GetCorrelationID(r)),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
