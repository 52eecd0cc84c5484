// Package domainrouter decides how page (non-API) requests dispatch: tenant
// custom domains serve tenant-branded portals, platform hosts serve the
// application shell. API routes never come through here; they are handled by
// the middleware chain.
package domainrouter

import (
	"net/http"
	"strings"

	"github.com/fundlane/fundlane-edge/internal/auth"
	"github.com/fundlane/fundlane-edge/internal/config"
	"github.com/fundlane/fundlane-edge/internal/pkg/validate"
)

// DispatchKind is where a page request is routed.
type DispatchKind int

const (
	DispatchPlatform DispatchKind = iota
	DispatchCustomDomain
)

// TenantHostHeader carries the verified tenant custom domain to the next hop.
const TenantHostHeader = "x-middleware-tenant-host"

// Router classifies the Host header. Immutable after construction.
type Router struct {
	platformDomain string
}

func New(cfg *config.Config) *Router {
	return &Router{platformDomain: strings.ToLower(cfg.PlatformDomain)}
}

// Dispatch decides platform vs custom-domain routing for a Host header
// value. ok is false when the host is malformed; the caller answers 400.
func (rt *Router) Dispatch(hostHeader string) (kind DispatchKind, host string, ok bool) {
	host, ok = validate.SplitHostPort(hostHeader)
	if !ok {
		return DispatchPlatform, "", false
	}
	if host == rt.platformDomain || strings.HasSuffix(host, "."+rt.platformDomain) || host == "localhost" || host == "127.0.0.1" {
		return DispatchPlatform, host, true
	}
	return DispatchCustomDomain, host, true
}

// PageHandler wraps the page-route next hop: malformed hosts get 400, tenant
// custom domains are tagged for downstream, and /admin pages require an
// elevated session via the same role routine the API admin check uses.
func PageHandler(cfg *config.Config, rt *Router, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, host, ok := rt.Dispatch(r.Host)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid host"}`))
			return
		}
		if kind == DispatchCustomDomain {
			r.Header.Set(TenantHostHeader, host)
		} else {
			r.Header.Del(TenantHostHeader)
		}
		if strings.HasPrefix(r.URL.Path, "/admin") {
			claims := auth.SessionFromRequest(r, cfg.SessionSecret, cfg.SessionCookieName)
			if claims == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
				return
			}
			if !auth.IsElevated(claims.Role) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"Insufficient permissions"}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
