package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fundlane/fundlane-edge/internal/pkg/metrics"
	"github.com/fundlane/fundlane-edge/internal/ratelimit"
	"github.com/fundlane/fundlane-edge/internal/routes"
)

// rateLimitScope is the quota bucket shared by all API paths. The limiter is
// a blanket safety net, not the primary protection; security-sensitive routes
// are protected by authentication.
const rateLimitScope = "api"

// RateLimitStep limits requests per client IP using the external counter
// store. Policy on store failure is fail open: denying all traffic over an
// infrastructure blip is worse than briefly losing a secondary safety net.
func RateLimitStep(store ratelimit.Store, log *slog.Logger) Step {
	return func(r *http.Request) (*http.Request, *StepResponse) {
		if rateLimitExempt(r.URL.Path) {
			return nil, nil
		}
		ip := ClientIP(r)
		res, err := store.Check(r.Context(), rateLimitScope, ip)
		if err != nil {
			metrics.RateLimitStoreErrorsTotal.Inc()
			log.Warn("rate-limit store unavailable, failing open", "error", err)
			return nil, nil
		}
		if res.Allowed {
			return nil, nil
		}
		metrics.RateLimitRejectionsTotal.Inc()
		retryAfter := int(time.Until(res.ResetAt).Seconds()) + 1
		if retryAfter < 1 {
			retryAfter = 1
		}
		h := http.Header{}
		h.Set("Retry-After", strconv.Itoa(retryAfter))
		h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		return nil, &StepResponse{
			Status:  http.StatusTooManyRequests,
			Message: "Too many requests. Please retry later.",
			Header:  h,
		}
	}
}

// rateLimitExempt reports whether the path skips the blanket limiter:
// non-API paths, scheduled jobs (cron has the shared-secret gate and must
// stay reachable by infrastructure), and the self-verified public endpoints
// (health checks, webhooks, beacons) that carry the CSRF exemption flag.
func rateLimitExempt(path string) bool {
	if !strings.HasPrefix(path, routes.APIPrefix) {
		return true
	}
	category := routes.Classify(path)
	if category == routes.CategoryCron {
		return true
	}
	if category == routes.CategoryPublic {
		return routes.CSRFExempt(path)
	}
	return false
}
