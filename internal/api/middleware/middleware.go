package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/fundlane/fundlane-edge/internal/pkg/logger"
	"github.com/fundlane/fundlane-edge/internal/pkg/metrics"
	"github.com/fundlane/fundlane-edge/internal/routes"
)

var requestLogOut = os.Stderr

// responseWriter captures status code for logging.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// StructuredLog logs each request as a single JSON line (request_id,
// category, method, path, host, status, duration) and records RED metrics.
// Route category keeps metric cardinality bounded; raw paths never become
// labels.
func StructuredLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := logger.FromContext(r.Context())
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		errMsg := ""
		if rw.status >= 400 {
			errMsg = http.StatusText(rw.status)
		}
		category := routes.Classify(r.URL.Path).String()
		logger.RequestLog(requestLogOut, reqID, category, r.Method, r.URL.Path, r.Host, rw.status, duration, errMsg)

		statusStr := strconv.Itoa(rw.status)
		metrics.HTTPRequestTotal.WithLabelValues(r.Method, category, statusStr).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(r.Method, category).Observe(duration.Seconds())
	})
}

// Recovery is the single top-level catch point: a panic anywhere below is
// logged with method/path/host context and converted to a generic 500. The
// raw error is never serialized into the response.
func Recovery(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					metrics.PanicsTotal.Inc()
					log.Error("panic recovered in request handler",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"host", r.Host,
						"request_id", logger.FromContext(r.Context()),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
