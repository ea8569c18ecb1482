package sqliterepo_test

import (
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-mail-badge/oauthmodel"
	"github.com/jrsteele09/go-mail-badge/sessions"
	"github.com/jrsteele09/go-mail-badge/sessions/sqliterepo"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T, path string) *sqliterepo.Repo {
	t.Helper()
	repo, err := sqliterepo.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepo_LoadDefaults(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "session.db"))

	s, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, sessions.New(), s)
}

func TestRepo_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	repo := openRepo(t, path)

	stored := &sessions.Session{
		CurrentNonce: "nonce-1",
		User: sessions.UserProfile{
			DisplayName: "Jane Doe",
			SigninName:  "jane@contoso.com",
			DomainType:  oauthmodel.OrganizationsDomain,
			Email:       "jane@contoso.com",
		},
	}
	stored.SetTokens("access-1", "a.b.c")
	require.NoError(t, repo.Save(stored))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, stored, loaded)

	// survives reopening the database
	require.NoError(t, repo.Close())
	reopened := openRepo(t, path)
	loaded, err = reopened.Load()
	require.NoError(t, err)
	require.Equal(t, stored, loaded)
}

func TestRepo_SaveOverwrites(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "session.db"))

	s := sessions.New()
	s.SetTokens("access-1", "a.b.c")
	require.NoError(t, repo.Save(s))

	s.ClearTokens()
	require.NoError(t, repo.Save(s))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.False(t, loaded.IsAuthorized)
	require.Empty(t, loaded.AccessToken)
	require.Empty(t, loaded.IDToken)
}

func TestRepo_SaveNil(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "session.db"))
	require.Error(t, repo.Save(nil))
}
