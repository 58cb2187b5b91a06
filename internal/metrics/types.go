package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	PlayerQueries      prometheus.Counter
	TeamQueries        prometheus.Counter
	Searches           prometheus.Counter
	StoreErrors        prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	QueryDuration      prometheus.Histogram
	StartupTimeSeconds prometheus.Gauge
}
