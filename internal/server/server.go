// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sigil-dev/rdfexplorer/internal/dataset"
	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/health"
)

// Dataset is the read side of a dataset manager.
type Dataset interface {
	Snapshot() (*dataset.Snapshot, error)
	View(req navigate.WindowRequest) (dataset.View, error)
	Status() health.Status
	CacheStats() dataset.CacheStats
}

// ViewConfig carries the windowing knobs exposed to clients.
type ViewConfig struct {
	DefaultLimit          int
	LargeDatasetThreshold int
	LimitSteps            []int
	SearchMaxResults      int
}

// Config holds HTTP server configuration.
type Config struct {
	ListenAddr   string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	View         ViewConfig
	Version      string
	// Registry receives the server's collectors. Nil uses a private
	// registry, which keeps parallel tests from colliding.
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// Server wraps a chi router with huma API and HTTP server.
type Server struct {
	router  chi.Router
	api     huma.API
	cfg     Config
	data    Dataset
	metrics *metrics
	logger  *slog.Logger
}

// New creates a Server with chi router, huma API, metrics and CORS, and
// registers every route against data.
func New(cfg Config, data Dataset) (*Server, error) {
	if cfg.ListenAddr == "" {
		return nil, rdferr.New(rdferr.CodeServerConfigInvalid, "listen address is required")
	}
	if data == nil {
		return nil, rdferr.New(rdferr.CodeServerConfigInvalid, "dataset is required")
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.View.DefaultLimit <= 0 {
		cfg.View.DefaultLimit = navigate.DefaultLimit
	}
	if cfg.View.LargeDatasetThreshold <= 0 {
		cfg.View.LargeDatasetThreshold = navigate.LargeDatasetThreshold
	}
	if len(cfg.View.LimitSteps) == 0 {
		cfg.View.LimitSteps = navigate.DefaultLimitSteps
	}
	if cfg.View.SearchMaxResults <= 0 {
		cfg.View.SearchMaxResults = navigate.DefaultSearchResults
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	m, err := newMetrics(cfg.Registry, data)
	if err != nil {
		return nil, rdferr.Wrap(err, rdferr.CodeServerConfigInvalid, "registering metrics")
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(securityHeaders)
	r.Use(corsMiddleware(cfg.CORSOrigins))
	r.Use(m.instrument)

	humaConfig := huma.DefaultConfig("rdfexplorer", cfg.Version)
	humaConfig.Info.Description = "Read-only exploration API over an RDF ontology"
	api := humachi.New(r, humaConfig)

	r.Handle("/metrics", m.handler())

	srv := &Server{
		router:  r,
		api:     api,
		cfg:     cfg,
		data:    data,
		metrics: m,
		logger:  cfg.Logger,
	}
	srv.registerRoutes()

	return srv, nil
}

// Handler returns the underlying http.Handler for testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// API returns the huma API for registering additional operations.
func (s *Server) API() huma.API {
	return s.api
}

// Start runs the HTTP server and blocks until the context is cancelled,
// then performs graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return rdferr.Wrapf(err, rdferr.CodeServerStartFailure, "listening on %s", s.cfg.ListenAddr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("api listening", "addr", ln.Addr().String())

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return rdferr.Wrap(err, rdferr.CodeServerStartFailure, "serving")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return rdferr.Wrap(err, rdferr.CodeServerShutdownFailure, "shutting down")
	}

	return <-errCh
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "0")
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}
