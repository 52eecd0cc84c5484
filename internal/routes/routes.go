// Package routes classifies request paths into security categories.
// The tables below are static configuration: loaded once, never mutated at
// request time, and exported so the middleware and its tests consult the same
// source of truth.
package routes

import "strings"

// APIPrefix is the path prefix for all API routes. Paths outside it are page
// routes and get their own admin-page check in the domain router, not here.
const APIPrefix = "/api/"

// RouteCategory is the security class assigned to a path. It determines which
// auth policy the edge applies. Closed set: adding a category means updating
// every switch over it.
type RouteCategory int

const (
	CategoryPublic RouteCategory = iota
	CategoryCron
	CategoryAuthenticated
	CategoryTeamScoped
	CategoryAdmin
)

func (c RouteCategory) String() string {
	switch c {
	case CategoryPublic:
		return "public"
	case CategoryCron:
		return "cron"
	case CategoryAuthenticated:
		return "authenticated"
	case CategoryTeamScoped:
		return "team_scoped"
	case CategoryAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// PublicEntry is a PUBLIC-table path. CSRFExempt marks endpoints that bypass
// the CSRF origin check entirely: webhooks verified by their own signature
// scheme, health checks, CSP reports, auth callbacks, and beacon-style
// tracking. The CSRF exemption set is derived from this table so the two
// lists cannot drift apart.
type PublicEntry struct {
	Prefix     string
	CSRFExempt bool
}

// Public lists routes reachable with no credentials at all. Matching is
// textual prefix matching: "/api/health" also matches "/api/healthcheck".
// That overreach is deliberate (branch-free matching at the edge); route
// existence downstream is the safety net. Do not "fix" it.
var Public = []PublicEntry{
	{Prefix: "/api/health", CSRFExempt: true},
	{Prefix: "/api/auth/", CSRFExempt: false},
	{Prefix: "/api/auth/callback/", CSRFExempt: true},
	{Prefix: "/api/webhooks/", CSRFExempt: true},
	{Prefix: "/api/csp-report", CSRFExempt: true},
	{Prefix: "/api/track", CSRFExempt: true},
	{Prefix: "/api/unsubscribe", CSRFExempt: false},
}

// Cron lists scheduled-job routes gated by the shared cron secret.
var Cron = []string{
	"/api/cron/",
}

// Admin lists platform-admin routes. Evaluated before TeamScoped so
// "/api/admin/teams/settings" is ADMIN, never TEAM_SCOPED.
var Admin = []string{
	"/api/admin/",
}

// TeamScoped lists tenant-scoped routes. The edge only establishes identity
// for these; team-membership checks happen downstream where the datastore is
// reachable.
var TeamScoped = []string{
	"/api/teams/",
}

// Authenticated lists routes that need a session but no team scoping. Any API
// path matching no table also lands here (deny by default).
var Authenticated = []string{
	"/api/account",
	"/api/esign/",
	"/api/datarooms/",
	"/api/documents/",
	"/api/search",
}

// Classify maps a request path to its security category. Pure and total:
// tables are evaluated in priority order PUBLIC, CRON, ADMIN, TEAM_SCOPED,
// AUTHENTICATED and the first match wins. Unmatched API paths are
// AUTHENTICATED; everything else is PUBLIC.
func Classify(path string) RouteCategory {
	for _, e := range Public {
		if matches(path, e.Prefix) {
			return CategoryPublic
		}
	}
	for _, p := range Cron {
		if matches(path, p) {
			return CategoryCron
		}
	}
	for _, p := range Admin {
		if matches(path, p) {
			return CategoryAdmin
		}
	}
	for _, p := range TeamScoped {
		if matches(path, p) {
			return CategoryTeamScoped
		}
	}
	for _, p := range Authenticated {
		if matches(path, p) {
			return CategoryAuthenticated
		}
	}
	if strings.HasPrefix(path, APIPrefix) {
		return CategoryAuthenticated
	}
	return CategoryPublic
}

// CSRFExempt reports whether the path bypasses the CSRF origin check. Only
// PUBLIC entries flagged CSRFExempt qualify, so the exemption set is a subset
// of the PUBLIC category by construction.
func CSRFExempt(path string) bool {
	exempt := false
	for _, e := range Public {
		if matches(path, e.Prefix) && e.CSRFExempt {
			exempt = true
		}
	}
	return exempt
}

// matches reports whether path equals entry or starts with it. Case-sensitive,
// no trailing-slash normalization beyond what the caller supplies.
func matches(path, entry string) bool {
	return path == entry || strings.HasPrefix(path, entry)
}

// AllEntries returns every table entry keyed by category, for the disjointness
// test and any tooling that needs the full map.
func AllEntries() map[RouteCategory][]string {
	pub := make([]string, 0, len(Public))
	for _, e := range Public {
		pub = append(pub, e.Prefix)
	}
	return map[RouteCategory][]string{
		CategoryPublic:        pub,
		CategoryCron:          Cron,
		CategoryAdmin:         Admin,
		CategoryTeamScoped:    TeamScoped,
		CategoryAuthenticated: Authenticated,
	}
}
