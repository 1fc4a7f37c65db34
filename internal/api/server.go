// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/byteandblog/internal/blog"
	"github.com/taibuivan/byteandblog/internal/contact"
	"github.com/taibuivan/byteandblog/internal/news"
	"github.com/taibuivan/byteandblog/internal/platform/apperr"
	"github.com/taibuivan/byteandblog/internal/platform/config"
	"github.com/taibuivan/byteandblog/internal/platform/constants"
	"github.com/taibuivan/byteandblog/internal/platform/middleware"
	"github.com/taibuivan/byteandblog/internal/platform/respond"
	"github.com/taibuivan/byteandblog/internal/portfolio"
	"github.com/taibuivan/byteandblog/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 when all deps are healthy.
	Readiness http.HandlerFunc

	Auth      *auth.Handler
	Blog      *blog.Handler
	Portfolio *portfolio.Handler
	Contact   *contact.Handler
	News      *news.Handler

	// SPA serves uploads, static assets and the index.html fallback.
	SPA *SPAHandler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. The context bounds background work started by
// middleware (rate limiter sweeps).
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.ClientIP(cfg.TrustedProxyPrefixes()))
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimiter(context, cfg.RateLimitRPS, cfg.RateLimitBurst).Handler)
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/blog", h.Blog.PostRoutes())
		api.Mount("/comments", h.Blog.CommentRoutes())
		api.Mount("/portfolio", h.Portfolio.Routes())
		api.Mount("/contact", h.Contact.Routes())
		api.Mount("/news", h.News.Routes())

		// Unmatched API paths still sit behind authentication.
		api.With(middleware.RequireAuth).NotFound(apiNotFound)
		api.MethodNotAllowed(apiMethodNotAllowed)
	})

	// # Frontend
	if h.SPA != nil {
		h.SPA.Mount(r)
	}

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func apiNotFound(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.NotFound("Resource"))
}

func apiMethodNotAllowed(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.New("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed))
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
