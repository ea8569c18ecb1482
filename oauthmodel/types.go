package oauthmodel

// ResponseType represents the OAuth 2.0 response type.
// Determines what is returned from the authorization endpoint.
type ResponseType string

const (
	// TokenResponseType returns only an access token in the redirect fragment.
	// Used in: silent (prompt=none) refreshes
	TokenResponseType ResponseType = "token"

	// IDTokenTokenResponseType returns both an ID token and an access token.
	// Used in: interactive implicit flow sign in
	// Example: /oauth2/v2.0/authorize?response_type=id_token+token&nonce=...
	IDTokenTokenResponseType ResponseType = "id_token token"
)

// ResponseModeType denotes how the authorization response parameters are returned to the client.
type ResponseModeType string

const (
	// FragmentResponseMode returns parameters in the URL fragment (after #).
	// Used in: Implicit Flow
	// Example: http://localhost:8400/callback#access_token=ABC&id_token=XYZ&state=xyz
	// Security: Fragment not sent to server, only accessible via JavaScript
	FragmentResponseMode ResponseModeType = "fragment"
)

// PromptType controls whether the identity provider may show UI.
type PromptType string

const (
	// PromptNone forbids any interaction. The provider redirects straight back
	// with either tokens or an error such as login_required.
	PromptNone PromptType = "none"
)

// DomainType classifies the tenant an account lives in. It doubles as the
// domain_hint sent on later authorization requests.
type DomainType string

const (
	ConsumersDomain     DomainType = "consumers"
	OrganizationsDomain DomainType = "organizations"
)

// ConsumerTenantID is the well known tenant of personal Microsoft accounts.
const ConsumerTenantID = "9188040d-6c67-4c5b-b112-36a304b66dad"

// DomainTypeForTenant returns ConsumersDomain for the consumer tenant and
// OrganizationsDomain for every other tenant.
func DomainTypeForTenant(tenantID string) DomainType {
	if tenantID == ConsumerTenantID {
		return ConsumersDomain
	}
	return OrganizationsDomain
}
