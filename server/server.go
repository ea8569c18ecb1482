package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/go-mail-badge/auth"
	"github.com/jrsteele09/go-mail-badge/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const resetColor = "\033[0m"

// methodColors holds the ANSI colour of each logged method; "" is the fallback.
var methodColors = map[string]string{
	"GET":  "\033[32m",
	"POST": "\033[34m",
	"":     "\033[90m",
}

// Server is the loopback receiver for implicit flow redirects. The identity
// provider redirects the browser to the callback page, whose script posts the
// full redirect URL, fragment included, back to the server.
type Server struct {
	env          string // Environment (e.g., "DEV", "PROD")
	mux          *http.ServeMux
	routes       []string
	config       config.Config
	addr         string
	callbackPath string
	callbackPage *template.Template
	opener       auth.URLOpener
	httpClient   *http.Client

	interactiveTimeout time.Duration
	silentTimeout      time.Duration

	pendingLock sync.Mutex
	pending     *pendingFlow
}

// ServerOption defines a function type to modify the Server instance.
type ServerOption func(*Server)

// WithFlowTimeouts overrides the interactive and silent flow timeouts.
func WithFlowTimeouts(interactive, silent time.Duration) ServerOption {
	return func(s *Server) {
		s.interactiveTimeout = interactive
		s.silentTimeout = silent
	}
}

// WithHTTPClient sets the client used for silent flows.
func WithHTTPClient(client *http.Client) ServerOption {
	return func(s *Server) {
		s.httpClient = client
	}
}

var _ auth.WebAuthFlow = (*Server)(nil)

func New(cfg config.Config, opener auth.URLOpener, options ...ServerOption) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if opener == nil {
		return nil, errors.New("[Server New] URL opener is required")
	}

	redirect, err := url.Parse(cfg.GetRedirectURI())
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] invalid redirect uri")
	}
	if redirect.Host == "" {
		return nil, errors.Errorf("[Server New] redirect uri %q has no host", cfg.GetRedirectURI())
	}
	callbackPath := strings.TrimRight(redirect.Path, "/")
	if callbackPath == "" {
		callbackPath = "/callback"
	}

	page, err := template.ParseFS(templateFiles, "templates/"+callbackTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] parsing callback page")
	}

	s := &Server{
		env:                cfg.GetEnv(),
		mux:                http.NewServeMux(),
		config:             cfg,
		addr:               redirect.Host,
		callbackPath:       callbackPath,
		callbackPage:       page,
		opener:             opener,
		interactiveTimeout: cfg.GetInteractiveFlowTimeout(),
		silentTimeout:      cfg.GetSilentFlowTimeout(),
	}

	// Apply optional configuration
	for _, opt := range options {
		opt(s)
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{}
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Addr is the host:port taken from the redirect URI.
func (s *Server) Addr() string {
	return s.addr
}

// CallbackPath is the path the identity provider redirects to.
func (s *Server) CallbackPath() string {
	return s.callbackPath
}

// FragmentPath is the path the callback page posts the redirect URL to.
func (s *Server) FragmentPath() string {
	return s.callbackPath + RouteFragmentSuffix
}

// ListenAndServe serves on the redirect URI's address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "[ListenAndServe] listen on %s", s.addr)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", listener.Addr().String()).Str("callback", s.callbackPath).Msg("redirect receiver listening")
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "[Serve] shutdown")
		}
		return nil
	}
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	color, ok := methodColors[method]
	if !ok {
		color = methodColors[""]
	}
	log.Debug().Msgf("[%-19s] %s", color+fmt.Sprintf(" %-7s", method)+resetColor, path)
}
