package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecovery_ConvertsPanicToGeneric500(t *testing.T) {
	h := Recovery(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("secret internal detail: db password is hunter2")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Error("Raw panic value must never reach the response")
	}
	if rec.Body.String() != `{"error":"Internal server error"}` {
		t.Errorf("Expected generic body, got %s", rec.Body.String())
	}
}

func TestRecovery_PassThrough(t *testing.T) {
	h := Recovery(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
}

func TestStructuredLog_CapturesStatus(t *testing.T) {
	h := StructuredLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/account", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("Status must pass through the recorder, got %d", rec.Code)
	}
}

func TestSecureHeaders(t *testing.T) {
	h := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("Expected clickjacking guard")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("Expected MIME sniffing guard")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("Expected CSP header")
	}
}
