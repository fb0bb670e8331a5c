package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/event"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/handler"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/leaderboard"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/metrics"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/stats"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/text"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/user"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/ws"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Store       *redis.Client
	Users       user.Service
	Stats       stats.Service
	Boards      leaderboard.Service
	Texts       text.Service
	Hub         *ws.Hub
	Sessions    ws.SessionEvents
	Publisher   event.Publisher
	CORSOrigins []string
}

type Server struct {
	httpServer *http.Server
}

// NewServer wires the router and middleware stack.
func NewServer(port int, deps Deps) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(corsMiddleware(deps.CORSOrigins))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Realtime socket
	r.Get("/ws", ws.HandleSocket(deps.Hub, deps.Sessions, deps.Boards, ws.AllowOrigins(deps.CORSOrigins)))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/text", handler.HandleGetRandomText(deps.Texts))
		r.Get("/stats", handler.HandleGetGlobalStats(deps.Stats))
		r.Get("/leaderboard", handler.HandleGetLeaderboard(deps.Boards))
		r.Get("/user/{username}", handler.HandleGetUserProfile(deps.Users))
		r.Post("/submit", handler.HandleSubmitResult(deps.Users, deps.Stats, deps.Publisher))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
