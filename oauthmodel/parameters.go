package oauthmodel

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// AuthQuery holds the parameters of one implicit flow authorization request.
// A new AuthQuery, with a new Nonce and State, is built for every attempt.
type AuthQuery struct {
	// ClientID identifies the application requesting authorization.
	// Required: Yes
	ClientID string

	// RedirectURI is where the authorization response will be sent.
	// Required: Yes
	// Example: "http://localhost:8400/callback"
	// Security: Must exactly match a URI registered for the application
	RedirectURI string

	// ResponseType specifies what the authorization endpoint should return.
	// Example: "id_token token" (interactive) or "token" (silent)
	ResponseType ResponseType

	// ResponseMode controls how the response is returned. Always "fragment" here.
	ResponseMode ResponseModeType

	// Scopes are joined with spaces into the scope parameter.
	// Example: ["openid", "profile", "https://outlook.office.com/Mail.Read"]
	Scopes []string

	// Nonce is echoed back inside the ID token and checked against the session.
	// Required: Yes
	// Security: Prevents replay of an ID token minted for a different attempt
	Nonce string

	// State is echoed back in the redirect fragment.
	// Security: CSRF protection for the redirect
	State string

	// Prompt is "none" for silent refreshes, empty otherwise.
	Prompt PromptType

	// DomainHint skips the account type picker ("consumers" or "organizations").
	DomainHint string

	// LoginHint pre-fills the sign in name.
	// Security: Should not be trusted, only used for UI pre-population
	LoginHint string
}

// NewAuthQuery returns an AuthQuery with freshly generated nonce and state values.
func NewAuthQuery(clientID, redirectURI string, responseType ResponseType, scopes []string) *AuthQuery {
	return &AuthQuery{
		ClientID:     clientID,
		RedirectURI:  redirectURI,
		ResponseType: responseType,
		ResponseMode: FragmentResponseMode,
		Scopes:       scopes,
		Nonce:        uuid.NewString(),
		State:        uuid.NewString(),
	}
}

// Validate checks the parameters that the provider would otherwise reject.
func (q *AuthQuery) Validate() error {
	if strings.TrimSpace(q.ClientID) == "" {
		return ErrMissingClientID
	}
	if _, err := url.ParseRequestURI(q.RedirectURI); err != nil || strings.Contains(q.RedirectURI, "#") {
		return ErrInvalidRedirectUri
	}
	if q.Nonce == "" {
		return ErrMissingNonce
	}
	return nil
}

// URL serializes the query onto the authorize endpoint. Every value is
// percent-encoded with url.Values rules (spaces become '+').
func (q *AuthQuery) URL(authorizeEndpoint oauth2.Endpoint) string {
	cfg := oauth2.Config{
		ClientID:    q.ClientID,
		Endpoint:    authorizeEndpoint,
		RedirectURL: q.RedirectURI,
		Scopes:      q.Scopes,
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("response_type", string(q.ResponseType)),
		oauth2.SetAuthURLParam("response_mode", string(q.ResponseMode)),
		oauth2.SetAuthURLParam("nonce", q.Nonce),
	}
	if q.Prompt != "" {
		opts = append(opts, oauth2.SetAuthURLParam("prompt", string(q.Prompt)))
	}
	if q.DomainHint != "" {
		opts = append(opts, oauth2.SetAuthURLParam("domain_hint", q.DomainHint))
	}
	if q.LoginHint != "" {
		opts = append(opts, oauth2.SetAuthURLParam("login_hint", q.LoginHint))
	}
	return cfg.AuthCodeURL(q.State, opts...)
}
