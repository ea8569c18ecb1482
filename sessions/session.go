package sessions

import "github.com/jrsteele09/go-mail-badge/oauthmodel"

// UserProfile is filled from validated ID token claims and the /me profile
// fetch. Any field may be empty.
type UserProfile struct {
	DisplayName string                `json:"displayName,omitempty"`
	SigninName  string                `json:"signinName,omitempty"`
	DomainType  oauthmodel.DomainType `json:"domainType,omitempty"`
	Email       string                `json:"email,omitempty"`
}

// Session is the single persisted authorization state of the process.
// AccessToken and IDToken are either both set or both empty.
type Session struct {
	IsAuthorized bool        // True after a validated authorization
	AccessToken  string      // Bearer token for the mail API
	IDToken      string      // Last accepted ID token
	CurrentNonce string      // Nonce of the most recent authorization attempt
	User         UserProfile // Signed in user
}

// New returns the default session used when nothing has been persisted.
func New() *Session {
	return &Session{}
}

// SetTokens stores both tokens and marks the session authorized.
func (s *Session) SetTokens(accessToken, idToken string) {
	s.AccessToken = accessToken
	s.IDToken = idToken
	s.IsAuthorized = true
}

// ClearTokens drops both tokens and marks the session unauthorized. The user
// profile is kept so its hints can seed the next sign in.
func (s *Session) ClearTokens() {
	s.AccessToken = ""
	s.IDToken = ""
	s.IsAuthorized = false
}

// Clone returns a copy that shares no state with s.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}
