// Package api exposes the job pipeline over HTTP: submit a document job,
// poll its task record, download the result.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docforge/pdfconvert/internal/config"
	"github.com/docforge/pdfconvert/internal/pipeline"
	"github.com/docforge/pdfconvert/internal/storage"
	"github.com/docforge/pdfconvert/internal/taskstore"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	orch   *pipeline.Orchestrator
	tasks  *taskstore.Store
	store  *storage.Store
	log    *slog.Logger
	cfg    *config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, tasks *taskstore.Store, store *storage.Store, log *slog.Logger, cfg *config.Config) *Server {
	s := &Server{
		orch:  orch,
		tasks: tasks,
		store: store,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}
		r.Post("/api/jobs", s.handleSubmit)
		r.Get("/api/jobs", s.handleList)
		r.Get("/api/jobs/{jobID}", s.handleStatus)
		r.Get("/api/jobs/{jobID}/download", s.handleDownload)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
