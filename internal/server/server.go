package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DuyDuc2014/l-ch/internal/backup"
	"github.com/DuyDuc2014/l-ch/internal/config"
	"github.com/DuyDuc2014/l-ch/internal/store"
)

// Server is the Lich REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
	backup    *backup.Runner // optional; /admin/backup reports unavailable when nil
	metrics   *metrics
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithBackupRunner sets the runner used by the /admin/backup endpoint.
func WithBackupRunner(r *backup.Runner) Option {
	return func(s *Server) {
		s.backup = r
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
		metrics:   newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	r.Use(metricsMiddleware(s.metrics))

	// Prometheus scrape endpoint (plain text, no envelope)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		// Discovery
		r.Get("/", s.handleDiscovery)

		// Health
		r.Get("/health", s.handleHealth)

		// Roster
		r.Route("/teachers", func(r chi.Router) {
			r.Get("/", s.handleListTeachers)
			r.Post("/", s.handleAddTeacher)
			r.Put("/order", s.handleReorderTeachers)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTeacher)
				r.Delete("/", s.handleDeleteTeacher)
			})
		})

		// Generated schedule
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", s.handleGetSchedule)
			r.Get("/export", s.handleExportSchedule)
		})

		// Manual overrides
		r.Route("/overrides", func(r chi.Router) {
			r.Get("/", s.handleListOverrides)
			r.Put("/{date}", s.handleSetOverride)
			r.Delete("/{date}", s.handleClearOverride)
		})

		// Day colors
		r.Route("/colors", func(r chi.Router) {
			r.Get("/", s.handleListDayColors)
			r.Put("/{date}", s.handleSetDayColor)
			r.Delete("/{date}", s.handleClearDayColor)
		})

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/start-date", s.handleGetStartDate)
			r.Put("/start-date", s.handleSetStartDate)
			r.Delete("/start-date", s.handleClearStartDate)
		})

		// Share codes
		r.Route("/share", func(r chi.Router) {
			r.Post("/", s.handleCreateShareCode)
			r.Post("/preview", s.handlePreviewShareCode)
			r.Post("/import", s.handleImportShareCode)
		})

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Post("/backup", s.handleRunBackup)
		})
	})
}
