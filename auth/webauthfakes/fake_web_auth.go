package webauthfakes

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/jrsteele09/go-mail-badge/auth"
	"github.com/jrsteele09/go-mail-badge/token/jwt"
)

var _ auth.WebAuthFlow = (*FakeWebAuthFlow)(nil)

// Outcome scripts how the fake identity provider answers one flow.
type Outcome int

const (
	// Success returns an access token and an ID token bound to the request nonce.
	Success Outcome = iota
	// ProviderError redirects back with error=login_required.
	ProviderError
	// StaleNonce returns an ID token carrying a nonce from another attempt.
	StaleNonce
	// MissingIDToken returns only an access token.
	MissingIDToken
	// Cancelled fails the flow as if the user closed the window.
	Cancelled
)

// Call records one LaunchWebAuthFlow invocation.
type Call struct {
	Interactive bool
	Query       url.Values
}

// FakeWebAuthFlow plays the identity provider. Outcomes are consumed in order
// per flow kind; when a queue is empty the flow succeeds. The redirect carries
// an id_token only when the request's response_type asks for one.
type FakeWebAuthFlow struct {
	lock        sync.Mutex
	creator     *jwt.Creator
	TenantID    string
	Name        string
	Username    string
	silent      []Outcome
	interactive []Outcome
	calls       []Call
	issued      int
}

func NewFakeWebAuthFlow(clientID, tenantID string) *FakeWebAuthFlow {
	return &FakeWebAuthFlow{
		creator:  jwt.NewCreator(clientID),
		TenantID: tenantID,
		Name:     "Jane Doe",
		Username: "jane@contoso.com",
	}
}

// QueueSilent scripts the next non-interactive flows.
func (f *FakeWebAuthFlow) QueueSilent(outcomes ...Outcome) *FakeWebAuthFlow {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.silent = append(f.silent, outcomes...)
	return f
}

// QueueInteractive scripts the next interactive flows.
func (f *FakeWebAuthFlow) QueueInteractive(outcomes ...Outcome) *FakeWebAuthFlow {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.interactive = append(f.interactive, outcomes...)
	return f
}

// Calls returns every recorded flow.
func (f *FakeWebAuthFlow) Calls() []Call {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]Call(nil), f.calls...)
}

// LastAccessToken returns the access token issued by the latest successful flow.
func (f *FakeWebAuthFlow) LastAccessToken() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return accessToken(f.issued)
}

func (f *FakeWebAuthFlow) LaunchWebAuthFlow(ctx context.Context, authURL string, interactive bool) (string, error) {
	u, err := url.Parse(authURL)
	if err != nil {
		return "", err
	}
	query := u.Query()

	f.lock.Lock()
	defer f.lock.Unlock()

	f.calls = append(f.calls, Call{Interactive: interactive, Query: query})
	outcome := f.next(interactive)

	redirect := query.Get("redirect_uri")
	state := query.Get("state")
	switch outcome {
	case Cancelled:
		return "", errors.New("the user did not approve access")
	case ProviderError:
		return fmt.Sprintf("%s#error=login_required&error_description=AADSTS50058%%3a+no+session&state=%s", redirect, state), nil
	}

	// Like the real provider, an id_token is only returned when requested.
	if outcome == MissingIDToken || !requestsIDToken(query.Get("response_type")) {
		f.issued++
		return fmt.Sprintf("%s#access_token=%s&token_type=Bearer&state=%s", redirect, accessToken(f.issued), state), nil
	}

	nonce := query.Get("nonce")
	if outcome == StaleNonce {
		nonce = "stale-" + nonce
	}
	idToken, err := f.creator.CreateIDToken(f.TenantID, nonce, f.Name, f.Username)
	if err != nil {
		return "", err
	}
	f.issued++
	return fmt.Sprintf("%s#access_token=%s&token_type=Bearer&expires_in=3599&id_token=%s&state=%s",
		redirect, accessToken(f.issued), idToken, state), nil
}

func (f *FakeWebAuthFlow) next(interactive bool) Outcome {
	queue := &f.silent
	if interactive {
		queue = &f.interactive
	}
	if len(*queue) == 0 {
		return Success
	}
	outcome := (*queue)[0]
	*queue = (*queue)[1:]
	return outcome
}

func requestsIDToken(responseType string) bool {
	for _, t := range strings.Fields(responseType) {
		if t == "id_token" {
			return true
		}
	}
	return false
}

func accessToken(n int) string {
	return fmt.Sprintf("access-%d", n)
}
