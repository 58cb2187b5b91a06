package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PlayerQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridiron_player_queries_total",
			Help: "The total number of position listing requests served.",
		}),
		TeamQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridiron_team_queries_total",
			Help: "The total number of team roster requests served.",
		}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridiron_searches_total",
			Help: "The total number of name search requests served.",
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridiron_store_errors_total",
			Help: "The total number of storage-layer failures.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridiron_slack_notifications_sent_total",
			Help: "The total number of Slack notifications sent successfully.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridiron_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridiron_query_duration_seconds",
			Help:    "The duration of store queries, including normalization.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gridiron_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PlayerQueries,
		s.TeamQueries,
		s.Searches,
		s.StoreErrors,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.QueryDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPlayerQueries() {
	s.PlayerQueries.Inc()
}

func (s *Service) IncTeamQueries() {
	s.TeamQueries.Inc()
}

func (s *Service) IncSearches() {
	s.Searches.Inc()
}

func (s *Service) IncStoreErrors() {
	s.StoreErrors.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) ObserveQueryDuration(duration float64) {
	s.QueryDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
