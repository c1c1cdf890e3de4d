package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncStandingsRecomputes()
	IncWaitlistRuns()
	IncPromotions()
	IncRatingUpdates()
	ObserveRecomputeDuration(duration float64)
	SetStartupTime(duration float64)
}
