// Package api exposes generator runs over HTTP. Clients create a run
// from a configuration, draw values from it, and fetch quality reports;
// the reproducibility tuple for every run stays in the ledger.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"golehmer/app"
	"golehmer/internal"
)

// Server represents the generator HTTP service
type Server struct {
	router *chi.Mux
	runs   *app.RunService
	logger *internal.Logger
}

// NewServer creates the HTTP service over a run service
func NewServer(runs *app.RunService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router: chi.NewRouter(),
		runs:   runs,
		logger: logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/runs", func(r chi.Router) {
		r.Post("/", s.handleCreateRun)
		r.Get("/", s.handleListRuns)

		r.Route("/{runID}", func(r chi.Router) {
			r.Get("/", s.handleGetRun)
			r.Post("/draw", s.handleDraw)
			r.Post("/select", s.handleSelect)
			r.Get("/replay", s.handleReplay)
			r.Get("/report", s.handleReport)
			r.Get("/report.html", s.handleReportHTML)
		})
	})
}

// Router returns the HTTP handler for mounting or testing
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP on the given port
func (s *Server) Start(port string) error {
	s.logger.Info("generator API listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}
