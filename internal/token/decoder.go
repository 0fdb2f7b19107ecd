// Package token extracts claims from university API access tokens.
//
// Tokens are decoded without signature verification: the remote API is the
// security boundary and rejects bad tokens itself. Decoding here is a
// client-side convenience read used for display and navigation only.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
)

// ErrNoToken is returned when an empty token string is decoded.
var ErrNoToken = errors.New("no token")

// apiClaims mirrors the payload the university API issues. The Faculty key
// is capitalized as provided by the issuer.
type apiClaims struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Faculty string `json:"Faculty"`
	jwt.RegisteredClaims
}

// Decode parses the token payload and returns its identity claims.
// The signature is not verified. Absent or malformed tokens return an error;
// callers must treat that as "no session".
func Decode(raw string) (domainauth.Claims, error) {
	if raw == "" {
		return domainauth.Claims{}, ErrNoToken
	}

	var claims apiClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return domainauth.Claims{}, fmt.Errorf("parse token: %w", err)
	}

	out := domainauth.Claims{
		Email:   claims.Email,
		Role:    domainauth.Role(claims.Role),
		Faculty: claims.Faculty,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// IsExpired reports whether the token should be considered expired.
// Absent, malformed, and exp-less tokens all report true (fail closed).
//
// Expiry is advisory: nothing gates requests on it. The API's 401 is the
// authoritative signal, handled by the refreshing transport.
func IsExpired(raw string) bool {
	claims, err := Decode(raw)
	if err != nil {
		return true
	}
	if claims.ExpiresAt.IsZero() {
		return true
	}
	return time.Now().After(claims.ExpiresAt)
}
