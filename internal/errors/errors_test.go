package errors_test

import (
	stderrors "errors"
	"testing"

	apperrors "github.com/jrsteele09/go-mail-badge/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.NoError(t, apperrors.Wrapf(nil, "context %d", 1))

	err := apperrors.Wrapf(apperrors.ErrNonceMismatch, "validate %s", "id_token")
	require.EqualError(t, err, "validate id_token: nonce mismatch")
	require.True(t, apperrors.Is(err, apperrors.ErrNonceMismatch))
	require.False(t, apperrors.Is(err, apperrors.ErrInvalidAud))
}

type codeErr struct{ code int }

func (c *codeErr) Error() string { return "code" }

func TestAs(t *testing.T) {
	err := apperrors.Wrapf(&codeErr{code: 401}, "fetch")
	var target *codeErr
	require.True(t, apperrors.As(err, &target))
	require.Equal(t, 401, target.code)
	require.False(t, apperrors.As(stderrors.New("plain"), &target))
}
