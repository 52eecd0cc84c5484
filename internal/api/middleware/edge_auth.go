package middleware

import (
	"net/http"

	"github.com/fundlane/fundlane-edge/internal/auth"
	"github.com/fundlane/fundlane-edge/internal/config"
	"github.com/fundlane/fundlane-edge/internal/pkg/audit"
	"github.com/fundlane/fundlane-edge/internal/pkg/logger"
	"github.com/fundlane/fundlane-edge/internal/pkg/metrics"
	"github.com/fundlane/fundlane-edge/internal/pkg/redact"
	"github.com/fundlane/fundlane-edge/internal/routes"
)

// EdgeAuthEnforcer makes one authorization decision per request from the
// request itself plus configuration. It never queries the primary datastore;
// team-membership scoping is delegated to downstream handlers that can.
type EdgeAuthEnforcer struct {
	cfg  *config.Config
	cron *CronSecretVerifier
}

func NewEdgeAuthEnforcer(cfg *config.Config, cron *CronSecretVerifier) *EdgeAuthEnforcer {
	return &EdgeAuthEnforcer{cfg: cfg, cron: cron}
}

// Enforce classifies the path and applies the category's policy. Terminal on
// first match; the switch is exhaustive over the five categories.
func (e *EdgeAuthEnforcer) Enforce(r *http.Request) AuthDecision {
	category := routes.Classify(r.URL.Path)
	switch category {
	case routes.CategoryPublic:
		return AuthDecision{Category: category}

	case routes.CategoryCron:
		if !e.cron.Verify(r.Header.Get("Authorization")) {
			metrics.AuthFailuresTotal.WithLabelValues("bad_cron_secret").Inc()
			msg := "secret verification failed"
			if tok := bearerToken(r.Header.Get("Authorization")); tok != "" {
				msg += " (token " + redact.Token(tok) + ")"
			}
			audit.LogCronRun(logger.FromContext(r.Context()), r.Method, r.URL.Path, ClientIP(r), "failure", msg)
			// Generic message: never reveal whether the path or the secret was wrong.
			return AuthDecision{Blocked: true, Status: http.StatusUnauthorized, Message: "Unauthorized", Category: category}
		}
		audit.LogCronRun(logger.FromContext(r.Context()), r.Method, r.URL.Path, ClientIP(r), "success", "")
		// Cron callers are not users: allowed with no identity attached.
		return AuthDecision{Category: category}

	case routes.CategoryAdmin:
		return e.enforceAdmin(r, category)

	case routes.CategoryTeamScoped, routes.CategoryAuthenticated:
		claims := auth.SessionFromRequest(r, e.cfg.SessionSecret, e.cfg.SessionCookieName)
		if claims == nil {
			metrics.AuthFailuresTotal.WithLabelValues("no_session").Inc()
			return AuthDecision{Blocked: true, Status: http.StatusUnauthorized, Message: "Authentication required", Category: category}
		}
		return AuthDecision{
			UserID:    claims.UserID,
			UserEmail: claims.Email,
			UserRole:  claims.Role,
			Category:  category,
		}

	default:
		// Unreachable with the closed category set; deny if it ever happens.
		return AuthDecision{Blocked: true, Status: http.StatusUnauthorized, Message: "Unauthorized", Category: category}
	}
}

// enforceAdmin requires a valid session and a role above the lowest tenant
// role. The role check is the shared auth.IsElevated routine, the same one
// the page-route admin check uses.
func (e *EdgeAuthEnforcer) enforceAdmin(r *http.Request, category routes.RouteCategory) AuthDecision {
	reqID := logger.FromContext(r.Context())
	claims := auth.SessionFromRequest(r, e.cfg.SessionSecret, e.cfg.SessionCookieName)
	if claims == nil {
		metrics.AuthFailuresTotal.WithLabelValues("no_session").Inc()
		audit.LogAdminAccess(reqID, r.Method, r.URL.Path, "", ClientIP(r), "failure", "no session")
		return AuthDecision{Blocked: true, Status: http.StatusUnauthorized, Message: "Authentication required", Category: category}
	}
	if !auth.IsElevated(claims.Role) {
		metrics.AuthFailuresTotal.WithLabelValues("bad_role").Inc()
		audit.LogAdminAccess(reqID, r.Method, r.URL.Path, claims.UserID, ClientIP(r), "failure", "insufficient role")
		return AuthDecision{Blocked: true, Status: http.StatusForbidden, Message: "Insufficient permissions", Category: category}
	}
	audit.LogAdminAccess(reqID, r.Method, r.URL.Path, claims.UserID, ClientIP(r), "success", "")
	return AuthDecision{
		UserID:    claims.UserID,
		UserEmail: claims.Email,
		UserRole:  claims.Role,
		Category:  category,
	}
}

// EdgeAuthStep adapts the enforcer into the final chain step. Allowed
// decisions are stashed in the request context for the identity injector and
// the request logger.
func EdgeAuthStep(e *EdgeAuthEnforcer) Step {
	return func(r *http.Request) (*http.Request, *StepResponse) {
		decision := e.Enforce(r)
		metrics.AuthDecisionsTotal.WithLabelValues(decision.Category.String(), outcome(decision)).Inc()
		if decision.Blocked {
			return nil, &StepResponse{Status: decision.Status, Message: decision.Message}
		}
		return r.WithContext(WithDecision(r.Context(), &decision)), nil
	}
}

func outcome(d AuthDecision) string {
	if d.Blocked {
		return "blocked"
	}
	return "allowed"
}
