package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-mail-badge/internal/errors"
	"github.com/jrsteele09/go-mail-badge/token"
	"github.com/jrsteele09/go-mail-badge/token/jwt"
	"github.com/stretchr/testify/require"
)

const (
	testClientID = "test-client-1"
	testTenantID = "72f988bf-86f1-41af-91ab-2d7cd011db47"
	testNonce    = "random-nonce-value"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

// validClaims returns claims that pass every check at testNow.
func validClaims() jwt.IDTokenClaims {
	return jwt.IDTokenClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    jwt.IssuerForTenant(testTenantID),
			Subject:   "subject-1",
			Audience:  jwtlib.ClaimStrings{testClientID},
			IssuedAt:  jwtlib.NewNumericDate(testNow.Add(-time.Minute)),
			NotBefore: jwtlib.NewNumericDate(testNow.Add(-time.Minute)),
			ExpiresAt: jwtlib.NewNumericDate(testNow.Add(time.Hour)),
		},
		Nonce:             testNonce,
		TenantID:          testTenantID,
		Name:              "Jane Doe",
		PreferredUsername: "jane@contoso.com",
	}
}

func sign(t *testing.T, claims jwt.IDTokenClaims) string {
	t.Helper()
	raw, err := jwt.NewCreator(testClientID).Sign(claims)
	require.NoError(t, err)
	return raw
}

func newValidator() *token.IDTokenValidator {
	return token.NewIDTokenValidator(testClientID, token.WithNowFunc(func() time.Time { return testNow }))
}

func TestIDTokenValidator_Valid(t *testing.T) {
	claims, err := newValidator().Validate(sign(t, validClaims()), testNonce)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", claims.Name)
	require.Equal(t, "jane@contoso.com", claims.PreferredUsername)
	require.Equal(t, testTenantID, claims.TenantID)
}

func TestIDTokenValidator_Shape(t *testing.T) {
	v := newValidator()
	for _, raw := range []string{"", "   ", "onlyone", "two.segments", "four.seg.men.ts", "!!!.???"} {
		_, err := v.Validate(raw, testNonce)
		require.ErrorIs(t, err, apperrors.ErrMalformedToken, raw)
	}
}

func TestIDTokenValidator_UndecodablePayload(t *testing.T) {
	_, err := newValidator().Validate("eyJhbGciOiJIUzI1NiJ9.not-json.sig", testNonce)
	require.ErrorIs(t, err, apperrors.ErrMalformedToken)
}

// Each check is broken in isolation; everything else stays valid.
func TestIDTokenValidator_SingleViolations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *jwt.IDTokenClaims)
		nonce    string
		expected error
	}{
		{
			name:     "nonce differs",
			mutate:   func(c *jwt.IDTokenClaims) { c.Nonce = "other-nonce" },
			nonce:    testNonce,
			expected: apperrors.ErrNonceMismatch,
		},
		{
			name:     "no current nonce",
			mutate:   func(c *jwt.IDTokenClaims) { c.Nonce = "" },
			nonce:    "",
			expected: apperrors.ErrNonceMismatch,
		},
		{
			name:     "audience differs",
			mutate:   func(c *jwt.IDTokenClaims) { c.Audience = jwtlib.ClaimStrings{"another-client"} },
			nonce:    testNonce,
			expected: apperrors.ErrInvalidAud,
		},
		{
			name:     "issuer bound to another tenant",
			mutate:   func(c *jwt.IDTokenClaims) { c.Issuer = jwt.IssuerForTenant("00000000-0000-0000-0000-000000000001") },
			nonce:    testNonce,
			expected: apperrors.ErrInvalidIssuer,
		},
		{
			name:     "issuer wrong format",
			mutate:   func(c *jwt.IDTokenClaims) { c.Issuer = "https://sts.windows.net/" + testTenantID + "/" },
			nonce:    testNonce,
			expected: apperrors.ErrInvalidIssuer,
		},
		{
			name:     "not yet valid beyond skew",
			mutate:   func(c *jwt.IDTokenClaims) { c.NotBefore = jwtlib.NewNumericDate(testNow.Add(301 * time.Second)) },
			nonce:    testNonce,
			expected: apperrors.ErrTokenExpired,
		},
		{
			name:     "expired beyond skew",
			mutate:   func(c *jwt.IDTokenClaims) { c.ExpiresAt = jwtlib.NewNumericDate(testNow.Add(-301 * time.Second)) },
			nonce:    testNonce,
			expected: apperrors.ErrTokenExpired,
		},
		{
			name:     "missing exp",
			mutate:   func(c *jwt.IDTokenClaims) { c.ExpiresAt = nil },
			nonce:    testNonce,
			expected: apperrors.ErrTokenExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			tt.mutate(&claims)
			_, err := newValidator().Validate(sign(t, claims), tt.nonce)
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestIDTokenValidator_ClockSkewBounds(t *testing.T) {
	t.Run("nbf within skew", func(t *testing.T) {
		claims := validClaims()
		claims.NotBefore = jwtlib.NewNumericDate(testNow.Add(299 * time.Second))
		_, err := newValidator().Validate(sign(t, claims), testNonce)
		require.NoError(t, err)
	})

	t.Run("exp within skew", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwtlib.NewNumericDate(testNow.Add(-299 * time.Second))
		_, err := newValidator().Validate(sign(t, claims), testNonce)
		require.NoError(t, err)
	})

	t.Run("custom skew", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwtlib.NewNumericDate(testNow.Add(-time.Minute))
		v := token.NewIDTokenValidator(testClientID,
			token.WithNowFunc(func() time.Time { return testNow }),
			token.WithClockSkew(30*time.Second),
		)
		_, err := v.Validate(sign(t, claims), testNonce)
		require.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}
