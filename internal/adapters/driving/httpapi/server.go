// Package httpapi exposes study sessions over a REST API.
// Each session is independent and runs one action at a time.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/custodia-labs/studydeck/internal/logger"
)

// Defaults for Options.
const (
	DefaultMaxUploadBytes = 100 << 20
	DefaultRequestTimeout = 5 * time.Minute
)

// Options configures the HTTP server.
type Options struct {
	// AllowedOrigins lists browser origins allowed by CORS. Empty allows none.
	AllowedOrigins []string

	// MaxUploadBytes caps the size of one request body.
	MaxUploadBytes int64

	// RequestTimeout bounds each request, including model calls.
	RequestTimeout time.Duration
}

// Server serves the REST API.
type Server struct {
	ports  *Ports
	opts   Options
	router chi.Router
}

// NewServer creates a server and builds its routes.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}

	s := &Server{ports: ports, opts: opts}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	if len(s.opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:     s.opts.AllowedOrigins,
			AllowedMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:     []string{"Accept", "Content-Type"},
			ExposedHeaders:     []string{"Content-Disposition"},
			OptionsPassthrough: false,
		}))
	}

	r.Route("/api/sessions", func(api chi.Router) {
		api.Post("/", s.createSession)
		api.Get("/", s.listSessions)

		api.Route("/{id}", func(sess chi.Router) {
			sess.Get("/", s.getSession)
			sess.Delete("/", s.deleteSession)

			sess.Post("/files", s.uploadFiles)
			sess.Post("/text", s.addText)
			sess.Delete("/sources/{sourceID}", s.removeSource)
			sess.Post("/reset", s.resetSession)

			sess.Post("/summary", s.summarise)
			sess.Post("/sections", s.detectSections)
			sess.Post("/sections/{index}/analysis", s.analyseSection)
			sess.Post("/concepts", s.keyConcepts)
			sess.Post("/chat", s.chat)
			sess.Post("/deck", s.deck)

			sess.Get("/export/{artifact}.md", s.export)
		})
	})

	return r
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// requestLogger logs one line per request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start),
			middleware.GetReqID(r.Context()))
	})
}
