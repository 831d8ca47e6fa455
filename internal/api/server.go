// Package api serves the dictionary editor over HTTP as JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"datadict/internal/view"
)

const (
	cookieName   = "datadict"
	sessionIDKey = "id"
)

// Server is the HTTP editor server.
type Server struct {
	registry     *Registry
	sessionStore *sessions.CookieStore
	port         int
	webDir       string
	ttl          time.Duration
	logger       *slog.Logger
}

// Config holds configuration for the HTTP server.
type Config struct {
	Machine  view.Machine
	PageSize int
	Port     int

	// WebDir, when set, is served at / for a browser front end.
	WebDir string

	SessionSecret string
	SessionTTL    time.Duration
	Logger        *slog.Logger
}

// NewServer creates a new server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
		logger.Warn("no session secret configured, sessions will not survive a restart")
	}
	sessionStore := sessions.NewCookieStore(secret)
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	if cfg.SessionTTL > 0 {
		sessionStore.MaxAge(int(cfg.SessionTTL / time.Second))
	}

	return &Server{
		registry:     NewRegistry(cfg.Machine, cfg.PageSize, cfg.SessionTTL, logger),
		sessionStore: sessionStore,
		port:         cfg.Port,
		webDir:       cfg.WebDir,
		ttl:          cfg.SessionTTL,
		logger:       logger,
	}
}

// Handler returns the router with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(s.logger),
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/view", s.handleView)
		r.Post("/load", s.handleLoad)
		r.Post("/open", s.handleOpen)
		r.Post("/back", s.handleAction(view.Back{}))
		r.Post("/edit", s.handleEdit)
		r.Post("/save", s.handleAction(view.Save{}))
		r.Post("/page/next", s.handleAction(view.PageNext{}))
		r.Post("/page/prev", s.handleAction(view.PagePrev{}))
	})

	if s.webDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.webDir)))
	}
	return r
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting editor server", "addr", fmt.Sprintf("http://localhost:%d", s.port), "web_dir", s.webDir)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.ttl > 0 {
		eg.Go(func() error {
			return s.registry.Janitor(egctx, max(s.ttl/4, time.Second))
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down editor server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
