// Package server exposes draftkit over HTTP for editors and other tools.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Config holds the server configuration
type Config struct {
	Host            string
	Port            int
	EnableMetrics   bool
	EnableCORS      bool
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            8080,
		EnableMetrics:   true,
		EnableCORS:      false,
		MaxBodyBytes:    10 << 20,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Addr returns host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

// Server serves the draftkit HTTP API.
type Server struct {
	config   *Config
	registry *prometheus.Registry
	metrics  *Metrics
	router   *mux.Router
	server   *http.Server
}

// New creates a server with its own metrics registry.
func New(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{
		config:   config,
		registry: reg,
		metrics:  NewMetrics(reg),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	if s.config.EnableCORS {
		router.Use(s.corsMiddleware)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.loggingMiddleware, s.metricsMiddleware, s.limitMiddleware)

	api.HandleFunc("/drafts", s.listDrafts).Methods(http.MethodGet)
	api.HandleFunc("/detect", s.detect).Methods(http.MethodPost)
	api.HandleFunc("/migrate", s.migrate).Methods(http.MethodPost)
	api.HandleFunc("/summary", s.summary).Methods(http.MethodPost)
	api.HandleFunc("/validate", s.validate).Methods(http.MethodPost)
	api.HandleFunc("/check", s.check).Methods(http.MethodPost)
	api.HandleFunc("/types/{name}", s.typeSchema).Methods(http.MethodGet)

	if s.config.EnableCORS {
		api.Methods(http.MethodOptions).HandlerFunc(s.handleOptions)
	}
	if s.config.EnableMetrics {
		router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	router.HandleFunc("/health", s.healthCheck).Methods(http.MethodGet)
	return router
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Info().
		Str("addr", s.server.Addr).
		Bool("metrics", s.config.EnableMetrics).
		Bool("cors", s.config.EnableCORS).
		Msg("Starting draftkit server")

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("Server shutdown complete")
	return nil
}
