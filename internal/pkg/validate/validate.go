// Package validate provides input validation for request headers the edge
// must parse before trusting: Host and derived origins.
package validate

import (
	"regexp"
	"strings"
)

// HostMaxLen is the maximum allowed length for a Host header name part.
const HostMaxLen = 253

// RFC 1123 DNS subdomain: lowercase alphanumeric labels joined by dots,
// hyphens allowed inside labels.
var hostnameRe = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?(\.[a-z0-9]([-a-z0-9]*[a-z0-9])?)*$`)

// Hostname validates a hostname (no port, no scheme). Case-insensitive.
func Hostname(host string) bool {
	if host == "" || len(host) > HostMaxLen {
		return false
	}
	return hostnameRe.MatchString(strings.ToLower(host))
}

// SplitHostPort strips an optional :port suffix from a Host header value.
// Returns the bare host and whether the value was well-formed. IPv6 literals
// are rejected: the platform and tenant custom domains are always names.
func SplitHostPort(hostport string) (string, bool) {
	if hostport == "" {
		return "", false
	}
	if strings.HasPrefix(hostport, "[") {
		return "", false
	}
	host := hostport
	if idx := strings.IndexByte(hostport, ':'); idx >= 0 {
		host = hostport[:idx]
		port := hostport[idx+1:]
		if port == "" {
			return "", false
		}
		for _, r := range port {
			if r < '0' || r > '9' {
				return "", false
			}
		}
	}
	if !Hostname(host) {
		return "", false
	}
	return strings.ToLower(host), true
}
