package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/termlink/internal/annotate"
	"github.com/ziadkadry99/termlink/internal/glossary"
	"github.com/ziadkadry99/termlink/internal/lesson"
	"github.com/ziadkadry99/termlink/internal/session"
)

// Config holds server configuration.
type Config struct {
	Port     int
	Title    string
	DPR      float64
	AllowAll bool // allow all CORS and WebSocket origins (dev mode)
}

// Server serves live lessons, the glossary API, diagram surfaces and the
// interactive session endpoint.
type Server struct {
	cfg        Config
	reg        *glossary.Registry
	ann        *annotate.Annotator
	renderer   *lesson.Renderer
	sources    []lesson.Source
	bySlug     map[string]lesson.Source
	titles     map[string]string
	sessionCfg session.Config
	router     chi.Router
	httpServer *http.Server
}

// New creates a server for the given lessons. sessionCfg configures each
// WebSocket session; its Registry is replaced by reg.
func New(cfg Config, reg *glossary.Registry, ann *annotate.Annotator, sources []lesson.Source, sessionCfg session.Config) *Server {
	sessionCfg.Registry = reg
	if sessionCfg.DPR <= 0 {
		sessionCfg.DPR = cfg.DPR
	}
	s := &Server{
		cfg:        cfg,
		reg:        reg,
		ann:        ann,
		renderer:   lesson.NewRenderer(ann),
		sources:    sources,
		bySlug:     make(map[string]lesson.Source, len(sources)),
		titles:     make(map[string]string, len(sources)),
		sessionCfg: sessionCfg,
	}
	for _, src := range sources {
		s.bySlug[src.Slug] = src
		s.titles[src.Slug] = src.Slug
		if l, err := s.renderer.Load(src); err == nil {
			s.titles[src.Slug] = l.Title
		}
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
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

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

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// The WebSocket route stays outside the timeout middleware; sessions
	// live as long as the page.
	var checkOrigin func(*http.Request) bool
	if s.cfg.AllowAll {
		checkOrigin = func(*http.Request) bool { return true }
	}
	r.Get("/ws/session", session.Handler(s.sessionCfg, checkOrigin))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/", s.handleIndex)
		r.Get("/index.html", s.handleIndex)
		r.Get("/lessons/{slug}", s.handleLesson)
		r.Get("/style.css", handleAsset("text/css; charset=utf-8", lesson.Stylesheet()))
		r.Get("/termlink.js", handleAsset("text/javascript; charset=utf-8", lesson.Script()))

		r.Route("/api", func(r chi.Router) {
			r.Get("/glossary", s.handleGlossary)
			r.Get("/terms/{key}", s.handleTerm)
			r.Post("/annotate", s.handleAnnotate)
			r.Get("/surfaces", s.handleSurfaceList)
			r.Get("/surfaces/{name}.png", s.handleSurfacePNG)
			r.Get("/surfaces/{name}.json", s.handleSurfaceZones)
		})
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("termlink server listening on %s (%d lessons, %d terms)", addr, len(s.sources), s.reg.Len())
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
