package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/fundlane/fundlane-edge/internal/config"
	"github.com/fundlane/fundlane-edge/internal/pkg/audit"
	"github.com/fundlane/fundlane-edge/internal/pkg/logger"
	"github.com/fundlane/fundlane-edge/internal/pkg/metrics"
	"github.com/fundlane/fundlane-edge/internal/routes"
)

// CSRFValidator checks the Origin (or Referer-derived origin) of
// state-mutating requests against a statically computed allow-list. Exempt
// paths come from the classification table, never from a second list.
type CSRFValidator struct {
	platformDomain string
	appHost        string
	extraHosts     map[string]bool
	allowDevHosts  bool
}

func NewCSRFValidator(cfg *config.Config) *CSRFValidator {
	v := &CSRFValidator{
		platformDomain: strings.ToLower(cfg.PlatformDomain),
		extraHosts:     make(map[string]bool),
		allowDevHosts:  !cfg.IsProduction(),
	}
	if u, err := url.Parse(cfg.AppURL); err == nil {
		v.appHost = strings.ToLower(u.Hostname())
	}
	for _, o := range cfg.AllowedOrigins {
		if u, err := url.Parse(o); err == nil && u.Hostname() != "" {
			v.extraHosts[strings.ToLower(u.Hostname())] = true
		}
	}
	return v
}

// safeMethod reports whether the method cannot mutate state.
func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Validate returns a 403 response for forged cross-site requests, nil
// otherwise. When neither Origin nor Referer is present the request passes:
// under a strict same-site cookie policy, cross-site requests always carry at
// least one of them.
func (v *CSRFValidator) Validate(method, originHeader, refererHeader, path string) *StepResponse {
	if safeMethod(method) {
		return nil
	}
	if routes.CSRFExempt(path) {
		return nil
	}
	origin := originHeader
	if origin == "" {
		if refererHeader == "" {
			return nil
		}
		origin = refererHeader
	}
	if v.originAllowed(origin) {
		return nil
	}
	metrics.CSRFRejectionsTotal.Inc()
	return &StepResponse{
		Status:  http.StatusForbidden,
		Message: "Invalid request origin",
	}
}

// originAllowed checks the origin's host against the platform apex and its
// subdomains, the canonical app host, configured extras, and (outside
// production only) local development hosts.
func (v *CSRFValidator) originAllowed(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == v.platformDomain || strings.HasSuffix(host, "."+v.platformDomain) {
		return true
	}
	if host == v.appHost {
		return true
	}
	if v.extraHosts[host] {
		return true
	}
	if v.allowDevHosts && (host == "localhost" || host == "127.0.0.1") {
		return true
	}
	return false
}

// CSRFStep adapts the validator into a chain step.
func CSRFStep(v *CSRFValidator) Step {
	return func(r *http.Request) (*http.Request, *StepResponse) {
		resp := v.Validate(r.Method, r.Header.Get("Origin"), r.Header.Get("Referer"), r.URL.Path)
		if resp != nil {
			audit.LogBlocked(logger.FromContext(r.Context()),
				routes.Classify(r.URL.Path).String(), r.Method, r.URL.Path, ClientIP(r), "origin rejected")
		}
		return nil, resp
	}
}
