package jwt

import (
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-mail-badge/internal/errors"
)

// IDTokenClaims are the claims read from a Microsoft identity platform v2.0 ID token.
type IDTokenClaims struct {
	jwtlib.RegisteredClaims
	Nonce             string `json:"nonce,omitempty"`
	TenantID          string `json:"tid,omitempty"`
	ObjectID          string `json:"oid,omitempty"`
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
}

// HasJWTShape reports whether raw is non-empty and has exactly three
// period separated segments. Nothing is decoded.
func HasJWTShape(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	return len(strings.Split(raw, ".")) == 3
}

// ParseUnverified decodes the payload of an ID token WITHOUT checking its
// signature. Callers must apply their own claim checks.
func ParseUnverified(raw string) (*IDTokenClaims, error) {
	if !HasJWTShape(raw) {
		return nil, apperrors.ErrMalformedToken
	}

	claims := &IDTokenClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrMalformedToken, "ParseUnverified: %v", err)
	}
	return claims, nil
}
