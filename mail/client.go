package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

const (
	requestTimeout    = 30 * time.Second
	maxErrorBodyBytes = 4096
	folderPageSize    = 50
	unreadFilter      = "UnreadItemCount gt 0"
	anchorMailboxHdr  = "x-AnchorMailbox"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// IsAuthFailure reports whether the status is below 500. Such failures are
// treated as an expired access token.
func (e *StatusError) IsAuthFailure() bool {
	return e.StatusCode < http.StatusInternalServerError
}

// Client is the Outlook mail REST API client.
type Client struct {
	endpoint string
	http     *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient sets the base client used underneath the bearer transport.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(mc *Client) {
		mc.http = c
	}
}

// NewClient creates a client for an API endpoint such as https://outlook.office.com/api/v2.0.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MailFolders lists folders with unread items. anchorMailbox is sent as
// x-AnchorMailbox when not empty.
func (c *Client) MailFolders(ctx context.Context, accessToken, anchorMailbox string) ([]MailFolder, error) {
	query := url.Values{}
	query.Set("$filter", unreadFilter)
	query.Set("$top", strconv.Itoa(folderPageSize))

	headers := http.Header{}
	if anchorMailbox != "" {
		headers.Set(anchorMailboxHdr, anchorMailbox)
	}

	var resp mailFoldersResponse
	if err := c.get(ctx, accessToken, "/me/MailFolders?"+query.Encode(), headers, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// Profile fetches /me.
func (c *Client) Profile(ctx context.Context, accessToken string) (*Profile, error) {
	var p Profile
	if err := c.get(ctx, accessToken, "/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// get issues an authenticated GET and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, accessToken, path string, headers http.Header, dst interface{}) error {
	url := c.endpoint + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, v := range headers {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.bearerClient(ctx, accessToken).Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{StatusCode: resp.StatusCode, URL: url, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// bearerClient wraps the base client with a transport that sets
// "Authorization: Bearer <token>".
func (c *Client) bearerClient(ctx context.Context, accessToken string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	client.Timeout = c.http.Timeout
	return client
}
