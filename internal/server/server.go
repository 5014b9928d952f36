// Package server implements the floattree HTTP API.
//
// The API exposes stored snapshots over REST and runs open/close
// coordination server-side: toggling a node loads its snapshot, rebuilds
// the coordinator, applies the change with full cascade semantics, and
// persists the result. Rendering endpoints return DOT, SVG, or PNG built
// from the stored state.
//
// # Endpoints
//
//	GET    /healthz
//	GET    /v1/snapshots
//	GET    /v1/snapshots/{id}
//	PUT    /v1/snapshots/{id}
//	DELETE /v1/snapshots/{id}
//	POST   /v1/snapshots/{id}/nodes/{nodeID}/open
//	GET    /v1/snapshots/{id}/open
//	GET    /v1/snapshots/{id}/topmost
//	GET    /v1/snapshots/{id}/render
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sherif414/floattree/pkg/store"
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string

	// Store is the snapshot backend. Required.
	Store store.Store

	// Logger receives request and error logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server serves the floattree HTTP API.
type Server struct {
	store  store.Store
	logger *log.Logger
	http   *http.Server
}

// New creates a server with its routes registered.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		store:  cfg.Store,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until ctx is canceled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", s.http.Addr)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down")
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1/snapshots", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Get("/open", s.handleOpenNodes)
			r.Get("/topmost", s.handleTopmost)
			r.Get("/render", s.handleRender)
			r.Post("/nodes/{nodeID}/open", s.handleSetOpen)
		})
	})

	return r
}

// logRequests logs each request with method, path, status, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
