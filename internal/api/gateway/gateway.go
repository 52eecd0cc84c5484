// Package gateway assembles the edge middleware into the single request
// entry point: API requests run the full authorization chain, page requests
// run the domain/admin-page wrap, and everything allowed is handed to the
// next hop with verified identity headers.
package gateway

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/fundlane/fundlane-edge/internal/api/middleware"
	"github.com/fundlane/fundlane-edge/internal/config"
	"github.com/fundlane/fundlane-edge/internal/domainrouter"
	"github.com/fundlane/fundlane-edge/internal/pkg/logger"
	"github.com/fundlane/fundlane-edge/internal/ratelimit"
	"github.com/fundlane/fundlane-edge/internal/routes"
)

// New builds the edge handler. All dependencies are injected so tests can
// run the whole pipeline against fakes; nothing here reaches for a global.
func New(cfg *config.Config, store ratelimit.Store, log *slog.Logger, next http.Handler) http.Handler {
	csrf := middleware.NewCSRFValidator(cfg)
	cron := middleware.NewCronSecretVerifier(cfg.CronSecret)
	enforcer := middleware.NewEdgeAuthEnforcer(cfg, cron)

	// Order is fixed: rate limiting is cheapest and rejects abusive traffic
	// before CSRF parsing; CSRF rejects forged requests before token
	// verification; the enforcer runs last and attaches identity.
	chain := middleware.NewChain(
		middleware.RateLimitStep(store, log),
		middleware.BodyGuardStep(cfg.MaxBodyBytes),
		middleware.CSRFStep(csrf),
		middleware.EdgeAuthStep(enforcer),
	)

	forward := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := middleware.DecisionFromContext(r.Context())
		middleware.InjectIdentity(r.Header, d, logger.FromContext(r.Context()))
		next.ServeHTTP(w, r)
	})
	apiHandler := chain.Then(forward)

	rt := domainrouter.New(cfg)
	pageHandler := middleware.SecureHeaders(domainrouter.PageHandler(cfg, rt, next))

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, routes.APIPrefix) || r.URL.Path == "/api" {
			apiHandler.ServeHTTP(w, r)
			return
		}
		pageHandler.ServeHTTP(w, r)
	})

	// Recovery is outermost so every layer below is covered; request IDs are
	// assigned before logging so every line carries one.
	var h http.Handler = middleware.StructuredLog(root)
	h = middleware.Tracing(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(log)(h)
	return h
}
