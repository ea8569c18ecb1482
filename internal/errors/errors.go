package errors

import (
	"errors"
	"fmt"
)

// Failure classes for the authorization and polling flows.
var (
	// Authorization errors
	ErrAuthorizationDenied = errors.New("authorization denied or cancelled")
	ErrAuthorizationFailed = errors.New("authorization failed")
	ErrNotAuthorized       = errors.New("not authorized")

	// Token errors
	ErrMalformedToken = errors.New("malformed token")
	ErrNonceMismatch  = errors.New("nonce mismatch")
	ErrInvalidAud     = errors.New("invalid audience")
	ErrInvalidIssuer  = errors.New("invalid issuer")
	ErrTokenExpired   = errors.New("token outside validity window")
	ErrStateMismatch  = errors.New("state mismatch")

	// Web auth flow errors
	ErrFlowInProgress = errors.New("web auth flow already in progress")
	ErrFlowTimeout    = errors.New("web auth flow timed out")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
