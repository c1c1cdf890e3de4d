package http

import (
	"net/http"

	"github.com/mkrogh/courtline/internal/auth"
	"github.com/mkrogh/courtline/internal/club"
	"github.com/mkrogh/courtline/internal/config"
	"github.com/mkrogh/courtline/internal/history"
	"github.com/mkrogh/courtline/internal/league"
	"github.com/mkrogh/courtline/internal/metrics"
	"github.com/mkrogh/courtline/internal/processor"
	"github.com/mkrogh/courtline/internal/pubsub"
	"github.com/mkrogh/courtline/internal/training"
)

func NewServer(leagueStore league.LeagueStore, trainingStore training.TrainingStore, clubStore club.ClubStore, events history.EventStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, proc *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		League:         leagueStore,
		Trainings:      trainingStore,
		ClubStore:      clubStore,
		Events:         events,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Processor:      proc,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Identity is required everywhere except the health and metrics
	// endpoints; captain-only endpoints add auth.RequireCaptain on top.
	identity := Middleware(auth.Middleware(s.Cfg.Auth.SigningSecret))
	captain := Middleware(auth.RequireCaptain)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware, identity))
	s.Router.Handle("/teams", Chain(s.ListTeamsHandler(), paramsMiddleware, identity))
	s.Router.Handle("/fixtures", Chain(s.ListFixturesHandler(), paramsMiddleware, identity))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware, identity))
	s.Router.Handle("/trainings", Chain(s.ListTrainingsHandler(), paramsMiddleware, identity))
	s.Router.Handle("/training/participants", Chain(s.ParticipantsHandler(), paramsMiddleware, identity))
	s.Router.Handle("/training/respond", Chain(s.RespondHandler(), paramsMiddleware, identity))
	s.Router.Handle("/player/rating/recompute", Chain(s.RecomputeRatingHandler(), paramsMiddleware, identity, captain))
	s.Router.Handle("/history", Chain(s.HistoryHandler(), paramsMiddleware, identity))
	s.Router.Handle("/pubsub/table-changed", Chain(s.TableChangedHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware, identity, captain))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
