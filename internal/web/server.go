// Package web hosts the page-load handlers over HTTP.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/annwoerpel/visual-analytics-books/internal/csv"
	"github.com/annwoerpel/visual-analytics-books/internal/loader"
)

// PageLoader loads one resource file per call.
type PageLoader interface {
	Load(ctx context.Context, file string) (*csv.Result, error)
}

// Options configures a Server.
type Options struct {
	Addr string

	// StaticDir is served under /static when not empty.
	StaticDir string

	// RateLimit is requests per second across all clients; 0 disables it.
	RateLimit float64
	RateBurst int

	// RequestTimeout bounds each request; 0 disables it.
	RequestTimeout time.Duration

	// CSVOptions is used when rows are exported back to CSV.
	CSVOptions csv.Options
}

// Server is the HTTP host for the loader.
type Server struct {
	loader   PageLoader
	variants loader.Variants
	opts     Options
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a new Server instance.
func NewServer(l PageLoader, variants loader.Variants, opts Options) *Server {
	s := &Server{
		loader:   l,
		variants: variants,
		opts:     opts,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	if s.opts.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.opts.RequestTimeout))
	}
	if s.opts.RateLimit > 0 {
		s.router.Use(rateLimit(rate.NewLimiter(rate.Limit(s.opts.RateLimit), s.opts.RateBurst)))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	if s.opts.StaticDir != "" {
		s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.opts.StaticDir))))
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/variants", s.handleListVariants)
		r.Get("/pages/{variant}", s.handleLoadPage)
		r.Get("/pages/{variant}/export.csv", s.handleExportPage)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	slog.Info("server starting", "addr", s.opts.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
