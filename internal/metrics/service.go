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
		StandingsRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtline_standings_recomputes_total",
			Help: "The total number of standings recomputations.",
		}),
		WaitlistRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtline_waitlist_runs_total",
			Help: "The total number of waitlist participant calculations.",
		}),
		Promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtline_waitlist_promotions_total",
			Help: "The total number of waitlist promotions.",
		}),
		RatingUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtline_rating_updates_total",
			Help: "The total number of persisted rating recomputations.",
		}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtline_recompute_duration_seconds",
			Help:    "The duration of individual derived-state recomputations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtline_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.StandingsRecomputes,
		s.WaitlistRuns,
		s.Promotions,
		s.RatingUpdates,
		s.RecomputeDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncStandingsRecomputes() {
	s.StandingsRecomputes.Inc()
}

func (s *Service) IncWaitlistRuns() {
	s.WaitlistRuns.Inc()
}

func (s *Service) IncPromotions() {
	s.Promotions.Inc()
}

func (s *Service) IncRatingUpdates() {
	s.RatingUpdates.Inc()
}

func (s *Service) ObserveRecomputeDuration(duration float64) {
	s.RecomputeDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
