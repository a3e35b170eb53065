// Package httpapi is the HTTP host for the authentication core. It owns the
// session cookie and calls the injected strategy and session codec; it holds
// no credentials of its own.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/bumbitzu/cheatsheet/internal/logging"
	"github.com/bumbitzu/cheatsheet/internal/server/auth"
	"github.com/bumbitzu/cheatsheet/internal/server/models"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Registrar creates accounts. A nil Registrar disables POST /register.
type Registrar interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
}

type Options struct {
	Address      string
	AuthTimeout  time.Duration
	SecureCookie bool
}

type Server struct {
	address      string
	logger       logging.Logger
	strategy     auth.Strategy
	codec        auth.SessionCodec
	signer       *CookieSigner
	registrar    Registrar
	authTimeout  time.Duration
	secureCookie bool
	router       chi.Router
}

func NewServer(opts Options, l logging.Logger, strategy auth.Strategy, codec auth.SessionCodec, signer *CookieSigner, registrar Registrar) *Server {
	if l == nil {
		l = logging.Nop{}
	}
	s := &Server{
		address:      opts.Address,
		logger:       l.With("module", "http_server"),
		strategy:     strategy,
		codec:        codec,
		signer:       signer,
		registrar:    registrar,
		authTimeout:  opts.AuthTimeout,
		secureCookie: opts.SecureCookie,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.session)

	r.Get("/ping", s.ping)
	r.Post("/login", s.login)
	r.Post("/logout", s.logout)
	if s.registrar != nil {
		r.Post("/register", s.register)
	}

	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/me", s.me)
	})

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
