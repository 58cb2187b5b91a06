package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncPlayerQueries()
	IncTeamQueries()
	IncSearches()
	IncStoreErrors()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	ObserveQueryDuration(duration float64)
	SetStartupTime(duration float64)
}
