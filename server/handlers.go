package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-mail-badge/oauthmodel"
	"github.com/rs/zerolog/log"
)

// CallbackPageHandler serves the page the identity provider redirects to.
// The fragment never reaches the server, so the page posts its own URL back.
func (s *Server) CallbackPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := struct {
			AppName      string
			FragmentPath string
		}{
			AppName:      s.config.GetAppName(),
			FragmentPath: s.FragmentPath(),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.callbackPage.Execute(w, data); err != nil {
			log.Error().Err(err).Msg("rendering callback page")
		}
	}
}

// FragmentHandler receives the redirect URL posted by the callback page and
// hands it to the waiting interactive flow.
func (s *Server) FragmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		href := r.PostFormValue("href")
		if href == "" {
			http.Error(w, "missing href", http.StatusBadRequest)
			return
		}
		redirect, err := url.Parse(href)
		if err != nil || !s.isRedirectTarget(redirect) {
			http.Error(w, "href is not the redirect uri", http.StatusBadRequest)
			return
		}

		// Providers that ignore response_mode answer errors in the query.
		state := redirect.Query().Get("state")
		if fragment, err := oauthmodel.ParseFragment(href); err == nil {
			state = fragment.State
		}

		if !s.deliver(state, href) {
			log.Warn().Msg("redirect received with no matching sign in waiting")
			http.Error(w, "no sign in is waiting for this response", http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"pending": s.FlowPending(),
		})
	}
}

func (s *Server) isRedirectTarget(u *url.URL) bool {
	return u.Host == s.addr && strings.TrimRight(u.Path, "/") == s.callbackPath
}
