package auth

import (
	"context"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-mail-badge/badge"
	"github.com/jrsteele09/go-mail-badge/internal/config"
	apperrors "github.com/jrsteele09/go-mail-badge/internal/errors"
	"github.com/jrsteele09/go-mail-badge/mail"
	"github.com/jrsteele09/go-mail-badge/oauthmodel"
	"github.com/jrsteele09/go-mail-badge/sessions"
	"github.com/jrsteele09/go-mail-badge/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Dependencies holds the collaborators the AuthSession sequences.
type Dependencies struct {
	Sessions sessions.Repo  // Persisted session store
	WebAuth  WebAuthFlow    // Authorization popup
	Mail     MailAPI        // Mail REST API
	Badge    badge.Renderer // Unread count output
	Opener   URLOpener      // Opens the mail web client
}

// AuthSession signs the user in with the implicit flow, keeps the session
// persisted and turns the mail folder listing into an unread count.
//
// It is not safe for concurrent use. All calls are expected to come from one
// goroutine, which guarantees a reauthorization finishes before the API call
// it unblocks is retried.
type AuthSession struct {
	cfg       config.Config
	deps      Dependencies
	session   *sessions.Session
	attempt   *oauthmodel.AuthQuery // Request of the authorization in progress
	endpoint  oauth2.Endpoint
	validator *token.IDTokenValidator
	nowTime   func() time.Time
}

// AuthSessionOption defines a function type to modify the AuthSession instance.
type AuthSessionOption func(*AuthSession)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AuthSessionOption {
	return func(a *AuthSession) {
		a.nowTime = nowFunc
	}
}

// NewAuthSession loads the persisted session and wires the collaborators.
func NewAuthSession(ctx context.Context, cfg config.Config, deps Dependencies, options ...AuthSessionOption) (*AuthSession, error) {
	if cfg == nil {
		return nil, errors.New("[NewAuthSession] config is required")
	}
	if cfg.GetClientID() == "" {
		return nil, errors.New("[NewAuthSession] client id is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("[NewAuthSession] Sessions repo is required")
	}
	if deps.WebAuth == nil {
		return nil, errors.New("[NewAuthSession] WebAuth flow is required")
	}
	if deps.Mail == nil {
		return nil, errors.New("[NewAuthSession] Mail API is required")
	}
	if deps.Badge == nil {
		return nil, errors.New("[NewAuthSession] Badge renderer is required")
	}

	session, err := deps.Sessions.Load()
	if err != nil {
		return nil, errors.Wrap(err, "[NewAuthSession] Sessions.Load")
	}
	if session.AccessToken == "" || session.IDToken == "" {
		session.ClearTokens()
	}

	// Only the authorize endpoint comes from the provider. Issuers are per tenant.
	provider := (&oidc.ProviderConfig{
		IssuerURL: cfg.GetAuthority() + "/v2.0",
		AuthURL:   cfg.GetAuthorizeURL(),
	}).NewProvider(ctx)

	a := &AuthSession{
		cfg:      cfg,
		deps:     deps,
		session:  session,
		endpoint: provider.Endpoint(),
		nowTime:  time.Now,
	}

	// Apply optional configuration
	for _, opt := range options {
		opt(a)
	}

	a.validator = token.NewIDTokenValidator(cfg.GetClientID(),
		token.WithClockSkew(cfg.GetClockSkew()),
		token.WithNowFunc(a.nowTime),
	)

	return a, nil
}

// Session returns a copy of the current session state.
func (a *AuthSession) Session() *sessions.Session {
	return a.session.Clone()
}

// IsAuthorized reports whether the session holds validated tokens.
func (a *AuthSession) IsAuthorized() bool {
	return a.session.IsAuthorized
}

// Authorize runs one implicit flow authorization. A non-interactive attempt
// that returns an invalid ID token is escalated once to an interactive one.
// A provider error or a cancelled popup returns ErrAuthorizationDenied and
// leaves the tokens untouched.
func (a *AuthSession) Authorize(ctx context.Context, interactive bool) error {
	return a.authorize(ctx, interactive, true)
}

// FinishAuth completes an authorization from the raw redirect URL.
func (a *AuthSession) FinishAuth(ctx context.Context, rawRedirect string, wasInteractive bool) error {
	return a.finishAuth(ctx, rawRedirect, wasInteractive, true)
}

func (a *AuthSession) authorize(ctx context.Context, interactive, fetchAfter bool) error {
	query := a.newAuthQuery(interactive)
	if err := query.Validate(); err != nil {
		return errors.Wrap(err, "[Authorize] invalid authorization request")
	}

	// A new attempt always replaces the nonce, so a token minted for an
	// earlier attempt can never validate against this one.
	a.session.CurrentNonce = query.Nonce
	a.attempt = query
	a.persist()

	log.Debug().Bool("interactive", interactive).Str("prompt", string(query.Prompt)).Msg("starting authorization")
	redirect, err := a.deps.WebAuth.LaunchWebAuthFlow(ctx, query.URL(a.endpoint), interactive)
	if err != nil {
		log.Warn().Err(err).Bool("interactive", interactive).Msg("authorization flow did not complete")
		return errors.Wrap(ErrAuthorizationDenied, err.Error())
	}

	fragment, err := oauthmodel.ParseFragment(redirect)
	if err != nil {
		log.Warn().Err(err).Bool("interactive", interactive).Msg("authorization redirect unreadable")
		return errors.Wrap(ErrAuthorizationDenied, err.Error())
	}
	if fragment.Failed() {
		log.Warn().
			Str("error", fragment.Error).
			Str("error_description", fragment.ErrorDescription).
			Bool("interactive", interactive).
			Msg("identity provider refused authorization")
		return errors.Wrap(ErrAuthorizationDenied, fragment.Error)
	}

	return a.finishAuth(ctx, redirect, interactive, fetchAfter)
}

func (a *AuthSession) newAuthQuery(interactive bool) *oauthmodel.AuthQuery {
	responseType := oauthmodel.IDTokenTokenResponseType
	if !interactive {
		responseType = oauthmodel.ResponseType(a.cfg.GetSilentResponseType())
	}

	query := oauthmodel.NewAuthQuery(a.cfg.GetClientID(), a.cfg.GetRedirectURI(), responseType, a.cfg.GetScopes())
	if !interactive {
		query.Prompt = oauthmodel.PromptNone
	}
	query.DomainHint = string(a.session.User.DomainType)
	query.LoginHint = a.session.User.SigninName
	return query
}

func (a *AuthSession) finishAuth(ctx context.Context, rawRedirect string, wasInteractive, fetchAfter bool) error {
	fragment, err := oauthmodel.ParseFragment(rawRedirect)
	if err != nil {
		return errors.Wrap(ErrAuthorizationDenied, err.Error())
	}
	if fragment.Failed() {
		return errors.Wrap(ErrAuthorizationDenied, fragment.Error)
	}

	if err := a.acceptFragment(fragment); err != nil {
		if !wasInteractive {
			log.Info().Err(err).Msg("silent authorization returned no valid token, retrying interactively")
			return a.authorize(ctx, true, fetchAfter)
		}

		a.session.ClearTokens()
		a.persist()
		return errors.Wrapf(ErrAuthorizationFailed, "[FinishAuth] %v", err)
	}

	a.session.SetTokens(fragment.AccessToken, fragment.IDToken)
	a.fetchProfile(ctx)
	a.persist()
	log.Info().Str("user", a.session.User.SigninName).Str("domain", string(a.session.User.DomainType)).Msg("authorized")

	if fetchAfter {
		if err := a.FetchMessageCount(ctx); err != nil {
			log.Error().Err(err).Msg("unread count fetch after authorization failed")
		}
	}
	return nil
}

// acceptFragment checks the echoed state, that an access token is present and
// that the ID token validates.
func (a *AuthSession) acceptFragment(fragment *oauthmodel.FragmentResponse) error {
	if a.attempt != nil && fragment.State != "" && fragment.State != a.attempt.State {
		log.Warn().Str("state", fragment.State).Msg("authorization redirect rejected")
		return apperrors.ErrStateMismatch
	}
	if fragment.AccessToken == "" {
		return errors.New("no access token returned")
	}
	if !a.ValidateIDToken(fragment.IDToken) {
		return errors.New("token validation failed")
	}
	return nil
}

// ValidateIDToken applies the minimal, non-cryptographic checks to token and,
// only when all pass, copies the user's names and domain type into the profile.
func (a *AuthSession) ValidateIDToken(rawToken string) bool {
	claims, err := a.validator.Validate(rawToken, a.session.CurrentNonce)
	if err != nil {
		log.Warn().Err(err).Msg("id token rejected")
		return false
	}

	a.session.User.DisplayName = claims.Name
	a.session.User.SigninName = claims.PreferredUsername
	a.session.User.DomainType = oauthmodel.DomainTypeForTenant(claims.TenantID)
	return true
}

// fetchProfile records the mailbox address used as x-AnchorMailbox.
func (a *AuthSession) fetchProfile(ctx context.Context) {
	profile, err := a.deps.Mail.Profile(ctx, a.session.AccessToken)
	if err != nil {
		log.Warn().Err(err).Msg("profile fetch failed")
		return
	}
	if profile.EmailAddress != "" {
		a.session.User.Email = profile.EmailAddress
	}
}

func (a *AuthSession) persist() {
	if err := a.deps.Sessions.Save(a.session); err != nil {
		log.Error().Err(err).Msg("persisting session failed")
	}
}

// FetchMessageCount polls the mail folders and renders the unread total.
// It does nothing while unauthorized. An API status below 500 triggers one
// silent reauthorization followed by one retry. When that reauthorization is
// refused the session is signed out.
func (a *AuthSession) FetchMessageCount(ctx context.Context) error {
	if !a.session.IsAuthorized {
		return nil
	}

	folders, err := a.mailFolders(ctx)
	if err != nil {
		status, expired := isExpiredCredentials(err)
		if !expired {
			return errors.Wrap(err, "[FetchMessageCount] mail folders")
		}

		log.Info().Int("status", status).Msg("access token rejected, reauthorizing silently")
		if err := a.authorize(ctx, false, false); err != nil {
			if errors.Is(err, ErrAuthorizationDenied) && ctx.Err() == nil && a.session.IsAuthorized {
				// The API has rejected the stored token, so it is no longer known valid.
				log.Warn().Err(err).Msg("reauthorization refused, signing out")
				a.session.ClearTokens()
				a.persist()
			}
			return errors.Wrap(err, "[FetchMessageCount] reauthorization")
		}
		if !a.session.IsAuthorized {
			return ErrNotAuthorized
		}

		folders, err = a.mailFolders(ctx)
		if err != nil {
			return errors.Wrap(err, "[FetchMessageCount] retry after reauthorization")
		}
	}

	count := mail.UnreadCount(folders)
	log.Debug().Int("folders", len(folders)).Int("unread", count).Msg("unread count fetched")
	a.deps.Badge.SetCount(count)
	return nil
}

func (a *AuthSession) mailFolders(ctx context.Context) ([]mail.MailFolder, error) {
	return a.deps.Mail.MailFolders(ctx, a.session.AccessToken, a.session.User.Email)
}

// Click handles the badge click: sign in when unauthorized, otherwise open the
// mail web client for the account's domain.
func (a *AuthSession) Click(ctx context.Context) error {
	if !a.session.IsAuthorized {
		return a.Authorize(ctx, true)
	}
	if a.deps.Opener == nil {
		return errors.New("[Click] no URL opener configured")
	}
	return a.deps.Opener.Open(a.WebClientURL())
}

// WebClientURL returns the consumer or organizational Outlook web address.
func (a *AuthSession) WebClientURL() string {
	if a.session.User.DomainType == oauthmodel.ConsumersDomain {
		return a.cfg.GetOutlookConsumerWebURL()
	}
	return a.cfg.GetOutlookWebURL()
}
