package jwt

import (
	"crypto/rand"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Creator mints ID tokens shaped like the ones the identity platform issues.
// Tokens are HS256 signed with a throwaway key: the signature is never
// verified by this client, so Creator exists for fakes and tests.
type Creator struct {
	key      []byte
	clientID string
	lifetime time.Duration
}

// NewCreator creates a new JWT creator for the given client id (the aud claim).
func NewCreator(clientID string) *Creator {
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return &Creator{
		key:      key,
		clientID: clientID,
		lifetime: time.Hour,
	}
}

// IssuerForTenant returns the v2.0 issuer the identity platform uses for a tenant.
func IssuerForTenant(tenantID string) string {
	return fmt.Sprintf("https://login.microsoftonline.com/%s/v2.0", tenantID)
}

// CreateIDToken creates a signed ID token for a tenant, nonce and user.
func (c *Creator) CreateIDToken(tenantID, nonce, name, preferredUsername string) (string, error) {
	now := NowTimeFunc()
	claims := IDTokenClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    IssuerForTenant(tenantID),
			Subject:   uuid.NewString(),
			Audience:  jwtlib.ClaimStrings{c.clientID},
			IssuedAt:  jwtlib.NewNumericDate(now),
			NotBefore: jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.lifetime)),
		},
		Nonce:             nonce,
		TenantID:          tenantID,
		ObjectID:          uuid.NewString(),
		Name:              name,
		PreferredUsername: preferredUsername,
	}
	return c.Sign(claims)
}

// Sign signs arbitrary claims, letting tests build tokens that break one rule.
func (c *Creator) Sign(claims jwtlib.Claims) (string, error) {
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}
