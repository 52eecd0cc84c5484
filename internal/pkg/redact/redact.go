// Package redact provides helpers to avoid exposing secret values in logs.
package redact

const redactedValue = "***REDACTED***"

// Token masks a bearer token or cookie value for logging: keeps the first
// four characters so operators can correlate, hides the rest. Short values
// are fully masked.
func Token(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 8 {
		return redactedValue
	}
	return v[:4] + redactedValue
}
