// Package httpapi exposes the account and document services over HTTP. It
// owns routing, the auth middleware resolving bearer tokens to users, and
// the mapping from service errors to status codes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/avoronin/docvault/internal/logging"
	"github.com/avoronin/docvault/internal/server/observability"
	"github.com/avoronin/docvault/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	documents *services.DocumentService
	registry  *prometheus.Registry
}

func NewServer(address string, l logging.Logger, us *services.UserService, ds *services.DocumentService, reg *prometheus.Registry) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "httpapi"),
		users:     us,
		documents: ds,
		registry:  reg,
	}
}

// routes builds the request mux. Account endpoints are public; document
// endpoints sit behind the auth middleware.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/signup", s.handleSignup)
	mux.HandleFunc("POST /api/login", s.handleLogin)

	mux.Handle("POST /api/documents", s.withUser(s.handleCreateDocument))
	mux.Handle("GET /api/documents/{id}", s.withUser(s.handleGetDocument))
	mux.Handle("GET /api/user/documents", s.withUser(s.handleListDocuments))
	mux.Handle("POST /api/documents/{id}/attachment", s.withUser(s.handleAttachmentUpload))
	mux.Handle("GET /api/documents/{id}/attachment", s.withUser(s.handleAttachmentDownload))

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.registry != nil {
		mux.Handle("GET /metrics", observability.Handler(s.registry))
	}

	return mux
}

// Handler returns the full middleware-wrapped handler. Split out from Run so
// tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	return observability.MetricsMiddleware(s.routes())
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
