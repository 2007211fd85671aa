// Package api is the HTTP session boundary: login, logout and verify
// handlers plus cookie issuance and clearing. No session state is held
// between requests; the cookie is the only credential.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/antonkvl/authgate/internal/logging"
	"github.com/antonkvl/authgate/internal/server/auth"
)

// authService is the slice of the auth service the handlers need.
type authService interface {
	Login(ctx context.Context, email, password string) (string, *auth.Claims, error)
	Verify(ctx context.Context, token string) (*auth.Claims, error)
	TokenValidity() time.Duration
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	auth    authService
}

func NewHTTPServer(address string, l logging.Logger, as authService) *HTTPServer {
	return &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		auth:    as,
	}
}

// Handler builds the route table. Exposed for tests.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/verify", s.handleVerify)
	return s.withRequestID(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
