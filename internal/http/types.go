package http

import (
	"net/http"

	"gridiron/internal/config"
	"gridiron/internal/metrics"
	"gridiron/internal/notifier"
	"gridiron/internal/stats"
)

type Server struct {
	Store          stats.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux

	// handler is the Router wrapped with the global middleware stack
	// (CORS, rate limiting). All traffic goes through it.
	handler http.Handler
}
