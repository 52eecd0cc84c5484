// Package middleware implements the edge request-authorization chain:
// rate limiting, body validation, CSRF origin checks, and the per-category
// auth enforcement, composed as an ordered short-circuiting step list.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/fundlane/fundlane-edge/internal/routes"
)

// AuthDecision is the per-request outcome of edge authorization. Created
// fresh per request; carries no shared state.
type AuthDecision struct {
	Blocked   bool
	Status    int
	Message   string
	UserID    string
	UserEmail string
	UserRole  string
	Category  routes.RouteCategory
}

// StepResponse is a terminal response produced by a chain step. Header
// entries are copied onto the ResponseWriter before the status is written.
type StepResponse struct {
	Status  int
	Message string
	Header  http.Header
}

// Step inspects a request and either short-circuits with a response or
// passes. A step that needs to hand state to later steps (verified identity,
// classification) returns a request with an updated context; returning a nil
// request means "unchanged".
type Step func(*http.Request) (*http.Request, *StepResponse)

// Chain executes steps strictly in order. The first non-nil StepResponse
// terminates the chain and is written as-is; if every step passes, the final
// request falls through to next. Order is significant: rate limiting rejects
// abusive traffic before CSRF parsing, and CSRF rejects forged requests
// before token verification spends cycles.
type Chain struct {
	steps []Step
}

func NewChain(steps ...Step) *Chain {
	return &Chain{steps: steps}
}

// Then returns a handler that runs the chain in front of next.
func (c *Chain) Then(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, step := range c.steps {
			r2, resp := step(r)
			if resp != nil {
				writeStepResponse(w, resp)
				return
			}
			if r2 != nil {
				r = r2
			}
		}
		next.ServeHTTP(w, r)
	})
}

func writeStepResponse(w http.ResponseWriter, resp *StepResponse) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = fmt.Fprintf(w, `{"error":%q}`, resp.Message)
}
