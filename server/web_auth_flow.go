package server

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/jrsteele09/go-mail-badge/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const maxSilentRedirects = 10

// pendingFlow is the one interactive authorization waiting for its redirect.
type pendingFlow struct {
	state  string
	result chan string
}

// LaunchWebAuthFlow runs one authorization request and returns the redirect
// URL, fragment included.
//
// Interactive flows open the browser and wait for the callback page to post
// the redirect back. Only one interactive flow may be pending at a time.
// Silent flows follow the provider's redirects without a browser and stop at
// the redirect URI; a provider that answers with a page instead of a redirect
// needs user interaction and the flow fails.
func (s *Server) LaunchWebAuthFlow(ctx context.Context, authURL string, interactive bool) (string, error) {
	parsed, err := url.Parse(authURL)
	if err != nil {
		return "", errors.Wrap(err, "[LaunchWebAuthFlow] invalid authorize url")
	}
	if !interactive {
		return s.launchSilent(ctx, parsed)
	}

	flow, err := s.beginFlow(parsed.Query().Get("state"))
	if err != nil {
		return "", err
	}
	defer s.endFlow(flow)

	if err := s.opener.Open(authURL); err != nil {
		return "", errors.Wrap(err, "[LaunchWebAuthFlow] opening browser")
	}
	log.Info().Dur("timeout", s.interactiveTimeout).Msg("waiting for sign in to complete in the browser")

	timer := time.NewTimer(s.interactiveTimeout)
	defer timer.Stop()

	select {
	case redirect := <-flow.result:
		return redirect, nil
	case <-timer.C:
		return "", apperrors.ErrFlowTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// FlowPending reports whether an interactive flow is waiting for its redirect.
func (s *Server) FlowPending() bool {
	s.pendingLock.Lock()
	defer s.pendingLock.Unlock()
	return s.pending != nil
}

func (s *Server) beginFlow(state string) (*pendingFlow, error) {
	s.pendingLock.Lock()
	defer s.pendingLock.Unlock()

	if s.pending != nil {
		return nil, apperrors.ErrFlowInProgress
	}
	s.pending = &pendingFlow{state: state, result: make(chan string, 1)}
	return s.pending, nil
}

func (s *Server) endFlow(flow *pendingFlow) {
	s.pendingLock.Lock()
	defer s.pendingLock.Unlock()

	if s.pending == flow {
		s.pending = nil
	}
}

// deliver passes a redirect to the pending flow. A redirect carrying a state
// other than the pending request's is dropped.
func (s *Server) deliver(state, redirect string) bool {
	s.pendingLock.Lock()
	defer s.pendingLock.Unlock()

	if s.pending == nil {
		return false
	}
	if state != "" && s.pending.state != "" && state != s.pending.state {
		return false
	}
	select {
	case s.pending.result <- redirect:
		return true
	default:
		return false
	}
}

func (s *Server) launchSilent(ctx context.Context, authURL *url.URL) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.silentTimeout)
	defer cancel()

	client := *s.httpClient
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if s.isRedirectTarget(req.URL) {
			return http.ErrUseLastResponse
		}
		if len(via) >= maxSilentRedirects {
			return errors.Errorf("stopped after %d redirects", maxSilentRedirects)
		}
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, authURL.String(), nil)
	if err != nil {
		return "", errors.Wrap(err, "[launchSilent] building request")
	}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apperrors.ErrFlowTimeout
		}
		return "", errors.Wrap(err, "[launchSilent] authorize request")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	location := resp.Header.Get("Location")
	if location == "" {
		return "", errors.Errorf("[launchSilent] provider needs interaction (status %d)", resp.StatusCode)
	}
	target, err := url.Parse(location)
	if err != nil || !s.isRedirectTarget(target) {
		return "", errors.Errorf("[launchSilent] provider redirected outside the redirect uri")
	}
	return location, nil
}
