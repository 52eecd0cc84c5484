package middleware

import (
	"crypto/subtle"
	"strings"
)

// CronSecretVerifier gates scheduled-job routes with a shared secret. An
// unconfigured secret fails closed: no cron route is reachable until the
// deployment sets one.
type CronSecretVerifier struct {
	secret string
}

func NewCronSecretVerifier(secret string) *CronSecretVerifier {
	return &CronSecretVerifier{secret: secret}
}

// Verify checks the Authorization header's bearer token against the
// configured secret in constant time, so response timing leaks nothing about
// where the candidate first differs.
func (v *CronSecretVerifier) Verify(authorizationHeader string) bool {
	if v.secret == "" {
		return false
	}
	token := bearerToken(authorizationHeader)
	if token == "" {
		return false
	}
	if len(token) != len(v.secret) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(v.secret)) == 1
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
