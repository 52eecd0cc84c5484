package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const decisionKey contextKey = "auth_decision"

// WithDecision returns a context carrying the edge auth decision.
func WithDecision(ctx context.Context, d *AuthDecision) context.Context {
	return context.WithValue(ctx, decisionKey, d)
}

// DecisionFromContext returns the edge auth decision, or nil.
func DecisionFromContext(ctx context.Context) *AuthDecision {
	v := ctx.Value(decisionKey)
	if v == nil {
		return nil
	}
	d, _ := v.(*AuthDecision)
	return d
}

// ClientIP extracts the client address: first value of X-Forwarded-For is
// authoritative, then X-Real-IP, then the connection's remote address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx >= 0 {
		addr = addr[:idx]
	}
	return addr
}
