package config

import (
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
)

const (
	clientIDVar           = "CLIENT_ID"
	redirectURIVar        = "REDIRECT_URI"
	authorityVar          = "AUTHORITY"
	scopesVar             = "SCOPES"
	silentResponseTypeVar = "SILENT_RESPONSE_TYPE"
)

type OAuthConfig interface {
	GetClientID() string
	GetRedirectURI() string
	GetAuthority() string
	GetAuthorizeURL() string
	GetScopes() []string
	GetSilentResponseType() string
	GetInteractiveFlowTimeout() time.Duration
	GetSilentFlowTimeout() time.Duration
	GetClockSkew() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetClientID() string {
	return GetEnv(clientIDVar, "")
}

// GetRedirectURI is the loopback address the identity provider redirects to.
// It must be registered against the application.
func (OAuth) GetRedirectURI() string {
	return GetEnv(redirectURIVar, "http://localhost:8400/callback")
}

func (OAuth) GetAuthority() string {
	return strings.TrimRight(GetEnv(authorityVar, "https://login.microsoftonline.com/common"), "/")
}

func (o OAuth) GetAuthorizeURL() string {
	return o.GetAuthority() + "/oauth2/v2.0/authorize"
}

// GetScopes returns the space separated SCOPES env var as a slice.
func (OAuth) GetScopes() []string {
	scopes := GetEnv(scopesVar, "")
	if scopes == "" {
		return []string{oidc.ScopeOpenID, "profile", "https://outlook.office.com/Mail.Read"}
	}
	return strings.Fields(scopes)
}

// GetSilentResponseType is the response_type requested by prompt=none refreshes.
func (OAuth) GetSilentResponseType() string {
	return GetEnv(silentResponseTypeVar, "token")
}

func (OAuth) GetInteractiveFlowTimeout() time.Duration {
	return 5 * time.Minute
}

func (OAuth) GetSilentFlowTimeout() time.Duration {
	return 30 * time.Second
}

func (OAuth) GetClockSkew() time.Duration {
	return 300 * time.Second
}
