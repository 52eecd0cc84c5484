package routes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTables(t *testing.T) {
	for _, e := range Public {
		assert.Equal(t, CategoryPublic, Classify(e.Prefix), "public entry %s", e.Prefix)
	}
	for _, p := range Cron {
		assert.Equal(t, CategoryCron, Classify(p), "cron entry %s", p)
	}
	for _, p := range Admin {
		assert.Equal(t, CategoryAdmin, Classify(p), "admin entry %s", p)
	}
	for _, p := range TeamScoped {
		assert.Equal(t, CategoryTeamScoped, Classify(p), "team entry %s", p)
	}
	for _, p := range Authenticated {
		assert.Equal(t, CategoryAuthenticated, Classify(p), "authenticated entry %s", p)
	}
}

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		path string
		want RouteCategory
	}{
		{"/api/auth/register", CategoryPublic},
		{"/api/cron/domains/verify", CategoryCron},
		// ADMIN wins over TEAM_SCOPED despite the path containing "teams".
		{"/api/admin/teams/settings", CategoryAdmin},
		{"/api/teams/t_123/members", CategoryTeamScoped},
		{"/api/esign/envelopes", CategoryAuthenticated},
		// Deny by default: unknown API routes require a session.
		{"/api/unknown-endpoint", CategoryAuthenticated},
		// Page routes are PUBLIC here; they get the separate admin-page check.
		{"/", CategoryPublic},
		{"/dashboard", CategoryPublic},
		{"/admin/users", CategoryPublic},
		// Prefix matching is textual: /api/health also covers /api/healthcheck.
		{"/api/healthcheck", CategoryPublic},
		{"/api/webhooks/stripe", CategoryPublic},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.path), "path %s", tt.path)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, CategoryAdmin, Classify("/api/admin/teams"))
	}
}

// TestTablesPairwiseDisjoint enforces the configuration invariant: a literal
// path prefix in one category table must not match any entry of another
// category table. Violation is a configuration bug, not a runtime condition.
func TestTablesPairwiseDisjoint(t *testing.T) {
	all := AllEntries()
	for catA, entriesA := range all {
		for catB, entriesB := range all {
			if catA == catB {
				continue
			}
			for _, a := range entriesA {
				for _, b := range entriesB {
					assert.False(t, strings.HasPrefix(a, b),
						"%s entry %q overlaps %s entry %q", catA, a, catB, b)
				}
			}
		}
	}
}

func TestCSRFExemptSubsetOfPublic(t *testing.T) {
	for _, e := range Public {
		if e.CSRFExempt {
			assert.Equal(t, CategoryPublic, Classify(e.Prefix))
		}
	}
	// Non-public paths are never exempt.
	assert.False(t, CSRFExempt("/api/teams/t_1/invite"))
	assert.False(t, CSRFExempt("/api/admin/users"))
}

func TestCSRFExemptPaths(t *testing.T) {
	assert.True(t, CSRFExempt("/api/webhooks/stripe"))
	assert.True(t, CSRFExempt("/api/csp-report"))
	assert.True(t, CSRFExempt("/api/track"))
	assert.True(t, CSRFExempt("/api/auth/callback/google"))
	// Public but not exempt: login/register still go through the origin check.
	assert.False(t, CSRFExempt("/api/auth/register"))
	assert.False(t, CSRFExempt("/api/unsubscribe"))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "public", CategoryPublic.String())
	assert.Equal(t, "cron", CategoryCron.String())
	assert.Equal(t, "authenticated", CategoryAuthenticated.String())
	assert.Equal(t, "team_scoped", CategoryTeamScoped.String())
	assert.Equal(t, "admin", CategoryAdmin.String())
	assert.Equal(t, "unknown", RouteCategory(99).String())
}
