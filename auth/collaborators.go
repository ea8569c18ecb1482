package auth

import (
	"context"

	"github.com/jrsteele09/go-mail-badge/mail"
)

// WebAuthFlow opens the identity provider's authorization URL and returns the
// URL the provider finally redirected to, fragment included. interactive=false
// means the provider is expected to answer without showing UI.
type WebAuthFlow interface {
	LaunchWebAuthFlow(ctx context.Context, authURL string, interactive bool) (string, error)
}

// MailAPI is the subset of the mail REST API the session calls.
type MailAPI interface {
	MailFolders(ctx context.Context, accessToken, anchorMailbox string) ([]mail.MailFolder, error)
	Profile(ctx context.Context, accessToken string) (*mail.Profile, error)
}

// URLOpener opens a URL in the user's browser.
type URLOpener interface {
	Open(url string) error
}
