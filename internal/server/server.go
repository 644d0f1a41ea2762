// Package server exposes the symptom checker as a JSON HTTP API. The model
// credential stays on the server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Veraticus/pathogenius/internal/model"
)

// Checker runs the two model-backed operations.
type Checker interface {
	Diagnose(ctx context.Context, symptoms []string) (model.Prediction, error)
	Insights(ctx context.Context, symptoms []string) (string, error)
}

// Server serves the API.
type Server struct {
	checker         Checker
	logger          *slog.Logger
	router          chi.Router
	shutdownTimeout time.Duration
}

// New creates a server backed by checker.
func New(checker Checker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		checker:         checker,
		logger:          logger,
		shutdownTimeout: 10 * time.Second,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(uuidRequestID)
	r.Use(middleware.RequestID)
	r.Use(echoRequestID)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	h := &handler{checker: s.checker, logger: s.logger}

	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/symptoms", h.symptoms)
		r.Post("/diagnose", h.diagnose)
		r.Post("/insights", h.insights)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
