package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	StandingsRecomputes prometheus.Counter
	WaitlistRuns        prometheus.Counter
	Promotions          prometheus.Counter
	RatingUpdates       prometheus.Counter
	RecomputeDuration   prometheus.Histogram
	StartupTimeSeconds  prometheus.Gauge
}
