package ui

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"slotcorr/app"
)

// Server exposes estimation runs over HTTP.
type Server struct {
	router   *chi.Mux
	analysis *app.AnalysisService
}

// Config holds server configuration
type Config struct {
	Port string
}

// NewServer creates the HTTP server around an analysis service.
func NewServer(analysis *app.AnalysisService) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		analysis: analysis,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/runs", s.handleCreateRun)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{runID}", s.handleGetRun)
		r.Get("/runs/{runID}/report", s.handleRunReport)
	})
	s.router.Get("/healthz", s.handleHealth)

	return s
}

// Router returns the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start(cfg Config) error {
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("[Server] listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
