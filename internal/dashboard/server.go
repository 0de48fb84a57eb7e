// Package dashboard serves the read-only Sophia Toolkit web UI: the ethical
// trends page, the knowledge graph overview, and the system event log viewer,
// plus a JSON summary endpoint for scripted consumers.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sophiakit/sophiakit/internal/config"
)

// Server serves the Sophia Toolkit dashboard UI.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
	mux      *http.ServeMux
	httpSrv  *http.Server
}

// NewServer creates a dashboard server. Each server owns its metrics
// registry, so two servers in one process never collide on registration.
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  newMetrics(registry),
		mux:      http.NewServeMux(),
	}
	s.routes()
	s.httpSrv = &http.Server{
		Addr:           cfg.Server.Addr(),
		Handler:        s.Handler(),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	return s
}

// Handler returns the dashboard HTTP handler with request-ID middleware and,
// when tracing is enabled, otel HTTP instrumentation applied.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.withRequestID(s.mux)
	if s.cfg.Tracing.Enabled {
		h = otelhttp.NewHandler(h, "dashboard")
	}
	return h
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /trends", s.handleTrends)
	s.mux.HandleFunc("GET /graph", s.handleGraph)
	s.mux.HandleFunc("GET /logs", s.handleLogs)

	// JSON and operational endpoints
	s.mux.HandleFunc("GET /api/summary", s.handleAPISummary)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

// Start serves HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
	})
}

// handleRoot sends the browser to the first page of the navigation.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/trends", http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
