package mail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/jrsteele09/go-mail-badge/internal/errors"
	"github.com/jrsteele09/go-mail-badge/mail"
	"github.com/stretchr/testify/require"
)

func TestUnreadCount(t *testing.T) {
	folders := []mail.MailFolder{
		{DisplayName: "Archive", UnreadItemCount: 5},
		{DisplayName: "Inbox", UnreadItemCount: 3},
		{DisplayName: "Sent", UnreadItemCount: 0},
	}
	require.Equal(t, 3, mail.UnreadCount(folders))
	require.Equal(t, 0, mail.UnreadCount(nil))
	require.Equal(t, 9, mail.UnreadCount([]mail.MailFolder{
		{DisplayName: "Inbox", UnreadItemCount: 4},
		{DisplayName: "Archived", UnreadItemCount: 5},
	}))
}

func TestClient_MailFolders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{
				{"DisplayName": "Inbox", "UnreadItemCount": 3},
				{"DisplayName": "Archive", "UnreadItemCount": 5},
			},
		})
	}))
	defer srv.Close()

	client := mail.NewClient(srv.URL+"/api/v2.0", mail.WithHTTPClient(srv.Client()))
	folders, err := client.MailFolders(context.Background(), "access-1", "jane@contoso.com")
	require.NoError(t, err)
	require.Len(t, folders, 2)
	require.Equal(t, "Inbox", folders[0].DisplayName)
	require.Equal(t, 3, folders[0].UnreadItemCount)

	require.Equal(t, http.MethodGet, got.Method)
	require.Equal(t, "/api/v2.0/me/MailFolders", got.URL.Path)
	require.Equal(t, "UnreadItemCount gt 0", got.URL.Query().Get("$filter"))
	require.Equal(t, "50", got.URL.Query().Get("$top"))
	require.Equal(t, "Bearer access-1", got.Header.Get("Authorization"))
	require.Equal(t, "application/json", got.Header.Get("Accept"))
	require.Equal(t, "jane@contoso.com", got.Header.Get("x-AnchorMailbox"))
}

func TestClient_MailFoldersWithoutAnchor(t *testing.T) {
	var anchor []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		anchor = r.Header.Values("x-AnchorMailbox")
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer srv.Close()

	client := mail.NewClient(srv.URL, mail.WithHTTPClient(srv.Client()))
	folders, err := client.MailFolders(context.Background(), "access-1", "")
	require.NoError(t, err)
	require.Empty(t, folders)
	require.Empty(t, anchor)
}

func TestClient_StatusError(t *testing.T) {
	tests := []struct {
		status      int
		authFailure bool
	}{
		{http.StatusUnauthorized, true},
		{http.StatusForbidden, true},
		{http.StatusNotFound, true},
		{http.StatusInternalServerError, false},
		{http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"code":"InvalidAuthenticationToken"}}`, tt.status)
			}))
			defer srv.Close()

			client := mail.NewClient(srv.URL, mail.WithHTTPClient(srv.Client()))
			_, err := client.MailFolders(context.Background(), "expired", "")
			require.Error(t, err)

			var statusErr *mail.StatusError
			require.True(t, apperrors.As(err, &statusErr))
			require.Equal(t, tt.status, statusErr.StatusCode)
			require.Equal(t, tt.authFailure, statusErr.IsAuthFailure())
			require.Contains(t, statusErr.Body, "InvalidAuthenticationToken")
		})
	}
}

func TestClient_Profile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me", r.URL.Path)
		require.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"Id":"u1","EmailAddress":"jane@contoso.com","DisplayName":"Jane Doe"}`))
	}))
	defer srv.Close()

	client := mail.NewClient(srv.URL, mail.WithHTTPClient(srv.Client()))
	p, err := client.Profile(context.Background(), "access-1")
	require.NoError(t, err)
	require.Equal(t, "jane@contoso.com", p.EmailAddress)
	require.Equal(t, "Jane Doe", p.DisplayName)
}

func TestClient_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := mail.NewClient(srv.URL, mail.WithHTTPClient(srv.Client()))
	_, err := client.Profile(context.Background(), "access-1")
	require.ErrorContains(t, err, "decoding response")
}
