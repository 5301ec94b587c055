package server

import (
	"log/slog"
	"net/http"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/dashboard"
	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

type Deps struct {
	Analytics *services.Analytics
	Dashboard *dashboard.Dashboard
	Sessions  *dashboard.Sessions
	Page      templates.PageData
	Config    *config.Config
	Logger    *slog.Logger
}

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	data        config.DataConfig
	session     middleware.Middleware
	page        *handlers.PageHandler
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

func NewServer(deps Deps) *Server {
	s := &Server{
		mux:         http.NewServeMux(),
		logger:      deps.Logger,
		data:        deps.Config.Data,
		session:     middleware.Session(deps.Sessions, deps.Config.Session),
		page:        handlers.NewPageHandler(deps.Page, deps.Logger),
		apiHandlers: handlers.NewAPIHandlers(deps.Analytics, deps.Dashboard, deps.Sessions, deps.Logger),
		sseHandlers: handlers.NewSSEHandlers(deps.Dashboard, deps.Logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Dashboard routes
	s.mux.Handle("GET /{$}", s.session(s.page))
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)
	s.mux.Handle("GET /api/selection", s.session(http.HandlerFunc(s.apiHandlers.HandleSelection)))

	// Datastar SSE endpoints
	s.mux.Handle("GET /sse/dashboard", s.session(http.HandlerFunc(s.sseHandlers.HandleDashboard)))
	s.mux.Handle("POST /sse/select", s.session(http.HandlerFunc(s.sseHandlers.HandleSelect)))

	// The bundled dataset, when no remote source is configured.
	if s.data.BaseURL == "" {
		s.mux.HandleFunc("GET "+s.data.Path, s.handleDataset)
	}
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, s.data.File)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
