package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hadocs/docs-addon/internal/docs"
	"github.com/hadocs/docs-addon/internal/render"
)

// Config holds server configuration.
type Config struct {
	Port            int
	IngressBaseURL  string // configured base URL override, "" to auto-detect
	DefaultDocument string // document shown at /, relative to the docs root
	AllowAll        bool   // allow all CORS origins (dev mode)
	UploadEnabled   bool
	UploadMaxBytes  int64
}

// Server is the document viewer's HTTP server.
type Server struct {
	cfg        Config
	store      *docs.Store
	renderer   *render.Renderer
	log        *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over the given document store.
func New(cfg Config, store *docs.Store, renderer *render.Renderer, log *slog.Logger) *Server {
	if cfg.DefaultDocument == "" {
		cfg.DefaultDocument = "index.md"
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		store:    store,
		renderer: renderer,
		log:      log,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(decodeRoute)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/folder", s.handleFolder)
	r.Get("/api/folder/*", s.handleFolder)
	r.Get("/api/file/*", s.handleFile)
	r.Post("/api/upload", s.handleUpload)

	r.Get("/", s.handleViewer)
	r.Get("/files", s.handleViewer)
	r.Get("/files/*", s.handleViewer)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("docs-addon server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// logRequests writes one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
