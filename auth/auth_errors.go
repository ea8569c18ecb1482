package auth

import (
	apperrors "github.com/jrsteele09/go-mail-badge/internal/errors"
	"github.com/jrsteele09/go-mail-badge/mail"
)

var (
	ErrAuthorizationDenied = apperrors.ErrAuthorizationDenied
	ErrAuthorizationFailed = apperrors.ErrAuthorizationFailed
	ErrNotAuthorized       = apperrors.ErrNotAuthorized
)

// isExpiredCredentials reports whether err is an API response with a status
// below 500, which is taken to mean the access token has expired.
func isExpiredCredentials(err error) (int, bool) {
	var statusErr *mail.StatusError
	if !apperrors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.StatusCode, statusErr.IsAuthFailure()
}
