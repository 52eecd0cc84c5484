// Package auth verifies session tokens and models the tenant role set.
// Everything here is answerable from the request plus configuration: no call
// in this package touches the primary datastore, because the edge runtime has
// no access to it.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrExpiredToken = errors.New("token expired")

// SessionExpiry is how long an issued session token stays valid.
const SessionExpiry = 24 * time.Hour

// DefaultCookieName is the session cookie name unless configuration overrides it.
const DefaultCookieName = "fundlane-session"

// Claims is the verified identity carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IssueSessionToken returns a signed HS256 session token. The application
// tier calls this at login; the edge only ever verifies.
func IssueSessionToken(secret, userID, email, role string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("session secret is required")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionExpiry)),
			ID:        fmt.Sprintf("%d", now.UnixNano()),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// ValidateSessionToken parses and verifies the token string; returns claims
// or an error. Rejects any non-HMAC signing method.
func ValidateSessionToken(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SessionFromRequest extracts and verifies the session cookie. Any failure
// (no cookie, bad signature, expired, malformed) returns nil: the caller
// treats all of them as "no session". cookieName falls back to
// DefaultCookieName when empty.
func SessionFromRequest(r *http.Request, secret, cookieName string) *Claims {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	claims, err := ValidateSessionToken(secret, c.Value)
	if err != nil {
		return nil
	}
	return claims
}
