package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of backend JWT claims the gateway cares about.
type TokenClaims struct {
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the backend-issued access token without verifying its
// signature. The gateway holds no verification keys; the backend remains the
// authority and expiry is still enforced reactively through 401 responses.
// This is informational only, for /auth/me and logging.
func ParseClaims(raw string) (*TokenClaims, error) {
	var claims TokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}
	return &claims, nil
}

// Expiry returns the access token's expiry time when the token carries one.
func (t *Token) Expiry() (time.Time, bool) {
	if t == nil || t.AccessToken == "" {
		return time.Time{}, false
	}
	claims, err := ParseClaims(t.AccessToken)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
