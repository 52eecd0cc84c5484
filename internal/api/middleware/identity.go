package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fundlane/fundlane-edge/internal/pkg/logger"
)

// Forwarded identity headers. Defense in depth: downstream handlers reachable
// by any path that bypasses this middleware must not treat these as proof of
// identity on their own.
const (
	HeaderUserID    = "x-middleware-user-id"
	HeaderUserEmail = "x-middleware-user-email"
	HeaderUserRole  = "x-middleware-user-role"
	HeaderRequestID = "x-request-id"
)

// InjectIdentity writes the decision's verified identity into h. Public and
// cron decisions carry no identity, so only the request ID is set for them.
func InjectIdentity(h http.Header, d *AuthDecision, requestID string) {
	// Strip any client-supplied values first; these headers are ours.
	h.Del(HeaderUserID)
	h.Del(HeaderUserEmail)
	h.Del(HeaderUserRole)
	h.Set(HeaderRequestID, requestID)
	if d == nil || d.UserID == "" {
		return
	}
	h.Set(HeaderUserID, d.UserID)
	h.Set(HeaderUserEmail, d.UserEmail)
	h.Set(HeaderUserRole, d.UserRole)
}

// RequestID generates a fresh identifier per request (client-supplied values
// are ignored), stores it in context, and mirrors it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New().String()
		ctx := logger.WithRequestID(r.Context(), reqID)
		w.Header().Set(HeaderRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
