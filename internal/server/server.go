// Package server exposes the cron engine as a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aatumaykin/cronlens/internal/config"
	"github.com/aatumaykin/cronlens/internal/cron"
	"github.com/aatumaykin/cronlens/internal/locale"
	"github.com/aatumaykin/cronlens/internal/logger"
	"github.com/aatumaykin/cronlens/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server
type Options struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.Metrics    // nil disables recording
	Gatherer prometheus.Gatherer // served on the metrics path when metrics are enabled
	Now      func() time.Time    // defaults to time.Now
}

// Server is the HTTP API server
type Server struct {
	cfg       *config.Config
	logger    *logger.Logger
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	estimator cron.Estimator
	locale    locale.Locale
	location  *time.Location
	now       func() time.Time
	handler   http.Handler
	server    *http.Server
}

// New creates a server. It fails only when the configured timezone cannot be loaded.
func New(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	loc, err := cfg.Estimator.Location()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		gatherer:  opts.Gatherer,
		estimator: cron.NewEstimator(cfg.Estimator.Horizon()),
		locale:    locale.Resolve(cfg.Describe.Locale),
		location:  loc,
		now:       opts.Now,
	}
	if s.logger == nil {
		s.logger = logger.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}

	s.handler = s.buildRouter()
	return s, nil
}

// Handler returns the HTTP handler with all routes wired
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", logger.Field{Key: "addr", Value: ln.Addr().String()})
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("api shutting down")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
