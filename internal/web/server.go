// Package web provides the CloudSaver HTTP API: billing analysis and report
// downloads for the React frontend.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/JonMunkholm/cloudsaver/internal/config"
	"github.com/JonMunkholm/cloudsaver/internal/core"
	"github.com/JonMunkholm/cloudsaver/internal/metrics"
	"github.com/JonMunkholm/cloudsaver/internal/report"
	"github.com/JonMunkholm/cloudsaver/internal/web/middleware"
)

// Server is the HTTP server for the analysis API.
type Server struct {
	cfg      *config.Config
	limiter  *core.AnalysisLimiter
	renderer *report.Renderer
	metrics  *metrics.Metrics
	rate     *rateLimiter
	router   *chi.Mux
	server   *http.Server
}

// NewServer wires the router. m may be nil when metrics are disabled.
func NewServer(cfg *config.Config, limiter *core.AnalysisLimiter, renderer *report.Renderer, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:      cfg,
		limiter:  limiter,
		renderer: renderer,
		metrics:  m,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger(s.metrics.ObserveRequest))
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(chimw.Compress(5))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
	s.router.Use(cors.Handler(corsOptions(s.cfg.Security.AllowedOrigins)))

	if s.cfg.Rate.Enabled {
		s.rate = newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(s.rate.middleware)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/status", s.handleStatus)

	s.router.Post("/analyze", s.handleAnalyze)
	s.router.Post("/download_report", s.handleDownloadReport)

	if s.cfg.Metrics.Enabled && s.metrics != nil {
		s.router.Handle(s.cfg.Metrics.Path, s.metrics.Handler())
	}
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections, waits for in-flight analyses and
// stops the rate limiter's cleanup loop.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rate != nil {
		s.rate.stop()
	}

	if active := s.limiter.ActiveCount(); active > 0 {
		slog.Info("waiting for analyses to complete", "active", active)
		if err := s.limiter.WaitForDrain(ctx); err != nil {
			slog.Warn("analyses did not complete in time", "error", err)
		}
	}

	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds hardening headers to every response. The API only
// serves JSON and downloads, so the CSP forbids everything.
func securityHeaders(csp bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if csp {
				h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// corsOptions lets the browser frontend call the API with credentials.
// A "*" entry allows any origin; the request origin is echoed back.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Report-ID", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           600,
	}

	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			// Credentialed responses cannot carry a literal "*".
			opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
			opts.AllowedOrigins = nil
			return opts
		}
		if o != "" {
			opts.AllowedOrigins = append(opts.AllowedOrigins, o)
		}
	}
	return opts
}
