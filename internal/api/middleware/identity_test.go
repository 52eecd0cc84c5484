package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundlane/fundlane-edge/internal/routes"
)

func TestInjectIdentity_WithUser(t *testing.T) {
	h := http.Header{}
	d := &AuthDecision{
		UserID:    "user-42",
		UserEmail: "lp@acme.example",
		UserRole:  "manager",
		Category:  routes.CategoryAuthenticated,
	}
	InjectIdentity(h, d, "req-1")

	if h.Get(HeaderUserID) != "user-42" {
		t.Errorf("Expected user id header, got %q", h.Get(HeaderUserID))
	}
	if h.Get(HeaderUserEmail) != "lp@acme.example" {
		t.Errorf("Expected email header, got %q", h.Get(HeaderUserEmail))
	}
	if h.Get(HeaderUserRole) != "manager" {
		t.Errorf("Expected role header, got %q", h.Get(HeaderUserRole))
	}
	if h.Get(HeaderRequestID) != "req-1" {
		t.Errorf("Expected request id header, got %q", h.Get(HeaderRequestID))
	}
}

func TestInjectIdentity_PublicAndCron(t *testing.T) {
	for _, d := range []*AuthDecision{
		{Category: routes.CategoryPublic},
		{Category: routes.CategoryCron},
		nil,
	} {
		h := http.Header{}
		InjectIdentity(h, d, "req-2")
		if h.Get(HeaderUserID) != "" || h.Get(HeaderUserEmail) != "" || h.Get(HeaderUserRole) != "" {
			t.Errorf("No identity headers expected for %+v", d)
		}
		if h.Get(HeaderRequestID) != "req-2" {
			t.Error("Request id header is always set")
		}
	}
}

func TestInjectIdentity_StripsSpoofedHeaders(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderUserID, "attacker-supplied")
	h.Set(HeaderUserRole, "owner")
	InjectIdentity(h, &AuthDecision{Category: routes.CategoryPublic}, "req-3")
	if h.Get(HeaderUserID) != "" || h.Get(HeaderUserRole) != "" {
		t.Error("Client-supplied identity headers must be stripped")
	}
}

func TestRequestID_FreshPerRequest(t *testing.T) {
	var seen []string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		// Client-supplied IDs are ignored; the edge always mints its own.
		req.Header.Set(HeaderRequestID, "spoofed-id")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		id := rec.Header().Get(HeaderRequestID)
		if id == "" || id == "spoofed-id" {
			t.Fatalf("Expected fresh generated id, got %q", id)
		}
		seen = append(seen, id)
	}
	if seen[0] == seen[1] {
		t.Error("Request ids must differ across requests")
	}
}
