package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mwidmer/mdp/internal/config"
	"github.com/mwidmer/mdp/internal/store"
)

// Server is the HTTP API over uploaded diaries.
type Server struct {
	router chi.Router
	store  *store.Store
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(st *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store: st,
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

		r.Post("/api/diaries", s.handleUpload)
		r.Get("/api/diaries", s.handleList)
		r.Delete("/api/diaries/{diaryID}", s.handleDelete)

		r.Get("/api/diaries/{diaryID}/tags", s.handleTags)
		r.Get("/api/diaries/{diaryID}/tasks", s.handleTasks)
		r.Get("/api/diaries/{diaryID}/search", s.handleSearch)
		r.Get("/api/diaries/{diaryID}/tree", s.handleTree)
		r.Get("/api/diaries/{diaryID}/sections/{date}", s.handleSection)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
