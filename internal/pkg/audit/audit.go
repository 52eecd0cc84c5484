// Package audit provides audit logging for security-sensitive edge decisions.
// Logs who (identity/request), what (category/path), when, and outcome for
// admin access, cron runs, and blocked requests; fund administration is a
// compliance-heavy domain and these lines feed the retention pipeline.
package audit

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"
)

// Event represents one audit event (structured for compliance and retention).
type Event struct {
	Time      string `json:"time"` // ISO8601
	Action    string `json:"action"` // "admin_access" | "cron_run" | "blocked"
	RequestID string `json:"request_id,omitempty"`
	Category  string `json:"category,omitempty"`
	Method    string `json:"method,omitempty"`
	Path      string `json:"path,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	Outcome   string `json:"outcome"` // "success" | "failure"
	Message   string `json:"message,omitempty"`
}

var auditLog = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// LogAdminAccess records an admin-route decision.
func LogAdminAccess(requestID, method, path, userID, clientIP, outcome, message string) {
	write(Event{
		Time:      time.Now().UTC().Format(time.RFC3339Nano),
		Action:    "admin_access",
		RequestID: requestID,
		Category:  "admin",
		Method:    method,
		Path:      path,
		UserID:    userID,
		ClientIP:  clientIP,
		Outcome:   outcome,
		Message:   message,
	})
}

// LogCronRun records a scheduled-job invocation attempt.
func LogCronRun(requestID, method, path, clientIP, outcome, message string) {
	write(Event{
		Time:      time.Now().UTC().Format(time.RFC3339Nano),
		Action:    "cron_run",
		RequestID: requestID,
		Category:  "cron",
		Method:    method,
		Path:      path,
		ClientIP:  clientIP,
		Outcome:   outcome,
		Message:   message,
	})
}

// LogBlocked records any other blocked request (rate limit, CSRF, session).
func LogBlocked(requestID, category, method, path, clientIP, message string) {
	write(Event{
		Time:      time.Now().UTC().Format(time.RFC3339Nano),
		Action:    "blocked",
		RequestID: requestID,
		Category:  category,
		Method:    method,
		Path:      path,
		ClientIP:  clientIP,
		Outcome:   "failure",
		Message:   message,
	})
}

func write(e Event) {
	auditLog.Info("audit", "event", mustMarshal(e))
}

func mustMarshal(e Event) string {
	b, err := json.Marshal(e)
	if err != nil {
		return `{"error":"marshal failed"}`
	}
	return string(b)
}
