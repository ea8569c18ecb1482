package jwt_test

import (
	"testing"

	apperrors "github.com/jrsteele09/go-mail-badge/internal/errors"
	"github.com/jrsteele09/go-mail-badge/token/jwt"
	"github.com/stretchr/testify/require"
)

func TestHasJWTShape(t *testing.T) {
	require.True(t, jwt.HasJWTShape("a.b.c"))
	require.False(t, jwt.HasJWTShape(""))
	require.False(t, jwt.HasJWTShape("a.b"))
	require.False(t, jwt.HasJWTShape("a.b.c.d"))
}

func TestCreator_RoundTrip(t *testing.T) {
	creator := jwt.NewCreator("client-1")
	raw, err := creator.CreateIDToken("tenant-1", "nonce-1", "Jane Doe", "jane@contoso.com")
	require.NoError(t, err)

	claims, err := jwt.ParseUnverified(raw)
	require.NoError(t, err)
	require.Equal(t, "nonce-1", claims.Nonce)
	require.Equal(t, "tenant-1", claims.TenantID)
	require.Equal(t, jwt.IssuerForTenant("tenant-1"), claims.Issuer)
	require.Equal(t, "https://login.microsoftonline.com/tenant-1/v2.0", claims.Issuer)
	require.Equal(t, []string{"client-1"}, []string(claims.Audience))
	require.Equal(t, "Jane Doe", claims.Name)
	require.Equal(t, "jane@contoso.com", claims.PreferredUsername)
	require.NotNil(t, claims.NotBefore)
	require.NotNil(t, claims.ExpiresAt)
}

func TestParseUnverified_IgnoresSignature(t *testing.T) {
	raw, err := jwt.NewCreator("client-1").CreateIDToken("tenant-1", "nonce-1", "", "")
	require.NoError(t, err)

	// Another creator uses another key; the payload is still readable.
	tampered := raw[:len(raw)-4] + "AAAA"
	claims, err := jwt.ParseUnverified(tampered)
	require.NoError(t, err)
	require.Equal(t, "nonce-1", claims.Nonce)
}

func TestParseUnverified_Malformed(t *testing.T) {
	_, err := jwt.ParseUnverified("a.b")
	require.ErrorIs(t, err, apperrors.ErrMalformedToken)

	_, err = jwt.ParseUnverified("eyJhbGciOiJIUzI1NiJ9.%%%.sig")
	require.ErrorIs(t, err, apperrors.ErrMalformedToken)
}
