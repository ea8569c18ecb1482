package oauthmodel

import "errors"

var (
	ErrMissingClientID    = errors.New("client id is required")
	ErrInvalidRedirectUri = errors.New("invalid or no redirect uri")
	ErrMissingNonce       = errors.New("nonce is required")
	ErrMissingFragment    = errors.New("redirect has no fragment")
)
