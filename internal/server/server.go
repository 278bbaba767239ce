// Package server provides the HTTP server and routing for the pension API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/config"
	"github.com/aristath/pension/internal/di"
	assumptionhandlers "github.com/aristath/pension/internal/modules/assumptions/handlers"
	reporthandlers "github.com/aristath/pension/internal/modules/reports/handlers"
	retirementhandlers "github.com/aristath/pension/internal/modules/retirement/handlers"
)

// ShutdownTimeout bounds how long in-flight requests may run after a shutdown signal.
const ShutdownTimeout = 10 * time.Second

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Config    *config.Config
	Container *di.Container // DI container with all services
}

// Server represents the HTTP server
type Server struct {
	router      *chi.Mux
	server      *http.Server
	log         zerolog.Logger
	cfg         *config.Config
	container   *di.Container
	metrics     *httpMetrics
	apiLimiter  *ipRateLimiter
	authLimiter *ipRateLimiter
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		cfg:       cfg.Config,
		container: cfg.Container,
		metrics:   newHTTPMetrics(cfg.Container.Registry),
	}

	perMinute, authPerMinute := 100, 5
	if cfg.Config.RateLimit != nil {
		perMinute = cfg.Config.RateLimit.PerMinute
		authPerMinute = cfg.Config.RateLimit.AuthPerMinute
	}
	s.apiLimiter = newIPRateLimiter(perMinute, s.log)
	s.authLimiter = newIPRateLimiter(authPerMinute, s.log)

	s.setupMiddleware(cfg.Config.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Request metrics
	s.router.Use(s.metrics.middleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Accept-Language"},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.container.Registry, promhttp.HandlerOpts{}))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.apiLimiter.middleware)

		r.Route("/health", func(r chi.Router) {
			r.Get("/", s.handleAPIHealth)
			r.Get("/db", s.handleDatabaseHealth)
			r.Get("/redis", s.handleRedisHealth)
			r.Get("/full", s.handleFullHealth)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(s.authLimiter.middleware)
			r.Post("/register", comingSoon("Registration endpoint - coming soon"))
			r.Post("/login", comingSoon("Login endpoint - coming soon"))
			r.Post("/logout", comingSoon("Logout endpoint - coming soon"))
			r.Post("/refresh", comingSoon("Token refresh endpoint - coming soon"))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", comingSoon("Get current user endpoint - coming soon"))
			r.Put("/me", comingSoon("Update user endpoint - coming soon"))
			r.Get("/me/profile", comingSoon("Get athlete profile endpoint - coming soon"))
		})

		r.Route("/financial", s.setupFinancialRoutes)
	})
}

// setupFinancialRoutes mounts the assumption, analysis and report handlers
func (s *Server) setupFinancialRoutes(r chi.Router) {
	assumptionhandlers.NewHandler(s.container.AssumptionService, s.log).RegisterRoutes(r)
	retirementhandlers.NewHandler(s.container.RetirementService, s.log).RegisterRoutes(r)
	reporthandlers.NewHandler(s.container.ReportService, s.log).RegisterRoutes(r)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
