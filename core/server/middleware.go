package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"lodgebot/core/logger"
	"lodgebot/core/metrics"
)

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// requestContext tags every request with a request id and logs its outcome.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithRID(r.Context(), uuid.NewString())
		ctx = logger.WithHandler(ctx, r.Method+" "+r.URL.Path)
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.Debug(ctx, "server", "http.request",
			slog.String("status", "ok"),
			slog.Int("code", rec.code),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// recoverPanics converts handler panics into a 500 without killing the
// process, mirroring what the provider expects from a webhook endpoint.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(r.Context(), "server", "http.panic",
					slog.String("status", "error"),
					slog.Any("panic", rec),
				)
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// countRequests feeds the webhook request counter.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.WebhookRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.code)).Inc()
	})
}
