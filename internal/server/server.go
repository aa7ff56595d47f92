// Package server exposes the string-analyzer service over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rcliao/string-analyzer/internal/config"
	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/logger"
	"github.com/rcliao/string-analyzer/internal/metrics"
	"github.com/rcliao/string-analyzer/internal/service"
)

const (
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 20
)

// Server routes HTTP requests to a Service.
type Server struct {
	cfg     *config.Config
	svc     *service.Service
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
	limiter *rate.Limiter
	handler http.Handler
}

// New builds a Server and its routes. m must be the registry the service
// records into so /metrics exposes both.
func New(cfg *config.Config, svc *service.Service, m *metrics.Metrics, log *zap.SugaredLogger) *Server {
	s := &Server{
		cfg:     cfg,
		svc:     svc,
		metrics: m,
		logger:  log,
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	}
	s.handler = s.instrument(s.limit(s.routes()))
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /strings", s.handleCreate)
	mux.HandleFunc("GET /strings", s.handleFilter)
	mux.HandleFunc("GET /strings/filter-by-natural-language", s.handleNaturalLanguage)
	mux.HandleFunc("GET /strings/{value}", s.handleGet)
	mux.HandleFunc("DELETE /strings/{value}", s.handleDelete)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	if s.cfg.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Metrics.Path, s.metrics.Handler())
	}
	return mux
}

// Handler returns the root handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("HTTP server listening", logger.FieldAddress, s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	s.logger.Infow("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
