package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/teams/t_1/funds", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestBodyGuard_ValidJSONPassesAndStaysReadable(t *testing.T) {
	step := BodyGuardStep(1024)
	r2, resp := step(jsonRequest(`{"name":"Fund IV"}`))
	if resp != nil {
		t.Fatalf("Valid JSON should pass, got %d", resp.Status)
	}
	if r2 == nil {
		t.Fatal("Expected request with rewrapped body")
	}
	body, err := io.ReadAll(r2.Body)
	if err != nil {
		t.Fatalf("Failed to re-read body: %v", err)
	}
	if string(body) != `{"name":"Fund IV"}` {
		t.Errorf("Body should be intact for the next hop, got %q", body)
	}
}

func TestBodyGuard_MalformedJSON(t *testing.T) {
	step := BodyGuardStep(1024)
	_, resp := step(jsonRequest(`{"name": "Fund IV"`))
	if resp == nil {
		t.Fatal("Expected 400 for malformed JSON")
	}
	if resp.Status != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.Status)
	}
}

func TestBodyGuard_TooLarge(t *testing.T) {
	step := BodyGuardStep(16)
	_, resp := step(jsonRequest(`{"name":"a very long fund name indeed"}`))
	if resp == nil {
		t.Fatal("Expected rejection for oversized body")
	}
	if resp.Status != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", resp.Status)
	}
}

func TestBodyGuard_SafeMethodsSkipped(t *testing.T) {
	step := BodyGuardStep(1024)
	r := httptest.NewRequest(http.MethodGet, "/api/account", nil)
	if _, resp := step(r); resp != nil {
		t.Errorf("GET should skip the body guard, got %d", resp.Status)
	}
}

func TestBodyGuard_NonJSONSkipped(t *testing.T) {
	step := BodyGuardStep(1024)
	r := httptest.NewRequest(http.MethodPost, "/api/documents/upload", strings.NewReader("%PDF-1.7 ..."))
	r.Header.Set("Content-Type", "application/octet-stream")
	if _, resp := step(r); resp != nil {
		t.Errorf("Non-JSON content should skip validation, got %d", resp.Status)
	}
}

func TestBodyGuard_EmptyJSONBody(t *testing.T) {
	step := BodyGuardStep(1024)
	if _, resp := step(jsonRequest("")); resp != nil {
		t.Errorf("Empty body should pass, got %d", resp.Status)
	}
}
