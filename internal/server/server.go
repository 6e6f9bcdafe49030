// Package server provides the HTTP server and routing for the zero-cost strategy service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/zerocost/internal/config"
	"github.com/aristath/zerocost/internal/database"
)

// RouteRegistrar is implemented by every module handler
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// Config holds server configuration
type Config struct {
	Log         zerolog.Logger
	StrategyDB  *database.DB
	SnapshotsDB *database.DB
	Config      *config.Config
	Port        int
	DevMode     bool
	APIRoutes   []RouteRegistrar // Mounted under /api
	Holdings    HoldingViews
	Accounts    AccountReader
	Trades      TradeLister
}

// Server represents the HTTP server
type Server struct {
	router      *chi.Mux
	server      *http.Server
	log         zerolog.Logger
	strategyDB  *database.DB
	snapshotsDB *database.DB
	cfg         *config.Config
	pages       *pages
}

// New creates a new HTTP server
func New(cfg Config) (*Server, error) {
	log := cfg.Log.With().Str("component", "server").Logger()

	p, err := newPages(cfg.Holdings, cfg.Accounts, cfg.Trades, log)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:      chi.NewRouter(),
		log:         log,
		strategyDB:  cfg.StrategyDB,
		snapshotsDB: cfg.SnapshotsDB,
		cfg:         cfg.Config,
		pages:       p,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes(cfg.APIRoutes)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes(apiRoutes []RouteRegistrar) {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		for _, routes := range apiRoutes {
			routes.RegisterRoutes(r)
		}
	})

	s.router.Get("/", s.pages.handleDashboard)
	s.router.Get("/strategy/{code}", s.pages.handleStrategy)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
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
