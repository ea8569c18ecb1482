package token

import (
	"time"

	apperrors "github.com/jrsteele09/go-mail-badge/internal/errors"
	"github.com/jrsteele09/go-mail-badge/token/jwt"
)

const defaultClockSkew = 300 * time.Second

// IDTokenValidator applies the minimal checks this client relies on: shape,
// nonce, audience, issuer format and validity window. It does NOT verify the
// token signature.
type IDTokenValidator struct {
	clientID  string
	clockSkew time.Duration
	nowFunc   func() time.Time
}

type IDTokenValidatorOption func(*IDTokenValidator)

func WithClockSkew(skew time.Duration) IDTokenValidatorOption {
	return func(v *IDTokenValidator) {
		v.clockSkew = skew
	}
}

func WithNowFunc(now func() time.Time) IDTokenValidatorOption {
	return func(v *IDTokenValidator) {
		v.nowFunc = now
	}
}

// NewIDTokenValidator creates a validator for tokens issued to clientID.
func NewIDTokenValidator(clientID string, opts ...IDTokenValidatorOption) *IDTokenValidator {
	v := &IDTokenValidator{
		clientID:  clientID,
		clockSkew: defaultClockSkew,
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate decodes raw and checks it against expectedNonce. The returned
// claims are only meaningful when err is nil.
func (v *IDTokenValidator) Validate(raw, expectedNonce string) (*jwt.IDTokenClaims, error) {
	if !jwt.HasJWTShape(raw) {
		return nil, apperrors.ErrMalformedToken
	}

	claims, err := jwt.ParseUnverified(raw)
	if err != nil {
		return nil, err
	}

	if expectedNonce == "" || claims.Nonce != expectedNonce {
		return nil, apperrors.ErrNonceMismatch
	}

	if len(claims.Audience) != 1 || claims.Audience[0] != v.clientID {
		return nil, apperrors.ErrInvalidAud
	}

	if claims.TenantID == "" || claims.Issuer != jwt.IssuerForTenant(claims.TenantID) {
		return nil, apperrors.ErrInvalidIssuer
	}

	if claims.NotBefore == nil || claims.ExpiresAt == nil {
		return nil, apperrors.ErrTokenExpired
	}
	now := v.nowFunc()
	if now.Before(claims.NotBefore.Add(-v.clockSkew)) || now.After(claims.ExpiresAt.Add(v.clockSkew)) {
		return nil, apperrors.ErrTokenExpired
	}

	return claims, nil
}
