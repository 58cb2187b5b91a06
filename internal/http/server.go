package http

import (
	"net/http"

	"github.com/rs/cors"

	"gridiron/internal/config"
	"gridiron/internal/metrics"
	"gridiron/internal/notifier"
	"gridiron/internal/stats"
)

func NewServer(store stats.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()

	// The global middleware stack wraps the whole router so CORS preflights
	// and rate limiting apply uniformly, including to unmatched routes.
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS", "POST"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})

	middlewares := []Middleware{timingMiddleware, c.Handler}
	if cfg.RateLimit.Enabled {
		middlewares = append(middlewares, rateLimitMiddleware(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	server.handler = Chain(server.Router, middlewares...)

	return server
}

func (s *Server) routes() {
	// Method-qualified patterns give us 405s on mismatched verbs for free.
	// All handlers are wrapped with middleware using the Chain helper, which
	// makes it easy to add more middlewares later, like an auth middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /api/health", Chain(s.HealthCheckHandler(), loggingMiddleware))
	s.Router.Handle("GET /api/players/{position}", Chain(s.PlayersByPositionHandler(), loggingMiddleware))
	s.Router.Handle("GET /api/teams/{teamCode}/players", Chain(s.TeamPlayersHandler(), loggingMiddleware))
	s.Router.Handle("GET /api/search", Chain(s.SearchHandler(), loggingMiddleware))
	s.Router.Handle("POST /slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), loggingMiddleware, s.slackVerifyMiddleware))
	s.Router.Handle("POST /slack/command/player-stats", Chain(s.PlayerStatsCommandHandler(), loggingMiddleware, s.slackVerifyMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
