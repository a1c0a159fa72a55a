// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/aimcourse/ragdemo/internal/domain/ports"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Options configures the web front-end.
type Options struct {
	Addr         string
	InitialSlide int
	SessionTTL   time.Duration
	MaxSessions  int
}

// Server is the HTTP server for the demo page and the JSON API.
type Server struct {
	echo     *echo.Echo
	resolver ports.QueryResolver
	store    ports.CatalogStore
	sessions *sessionManager
	addr     string
}

// NewServer creates a new HTTP server.
func NewServer(resolver ports.QueryResolver, store ports.CatalogStore, opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = ":8000"
	}
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &templateRenderer{templates: tmpl}

	s := &Server{
		echo:     e,
		resolver: resolver,
		store:    store,
		sessions: newSessionManager(resolver, store, opts.InitialSlide, opts.SessionTTL),
		addr:     opts.Addr,
	}
	if opts.MaxSessions > 0 {
		s.sessions.limit = opts.MaxSessions
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo
	e.Use(middleware.Recover())
	e.Use(requestLogger)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	// UI
	e.GET("/", s.handleIndex)
	e.POST("/query", s.handleSubmit)
	e.POST("/samples/:index", s.handleSample)
	e.POST("/slides/next", s.handleNextSlide)
	e.POST("/slides/prev", s.handlePrevSlide)
	e.POST("/slides/:n", s.handleGoToSlide)

	// API
	api := e.Group("/api")
	api.POST("/query", s.handleQuery)
	api.POST("/rag", s.handleRAG)
	api.GET("/health", s.handleHealth)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	log.Printf("[INFO] RAG demo server starting on %s", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] Server shutdown: %v", err)
		}
	}()

	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		log.Printf("%s %s %v", c.Request().Method, c.Request().URL.Path, time.Since(start))
		return err
	}
}

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"px":  func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
}

type templateRenderer struct {
	templates *template.Template
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
