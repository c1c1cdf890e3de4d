package http

import (
	"net/http"

	"github.com/mkrogh/courtline/internal/club"
	"github.com/mkrogh/courtline/internal/config"
	"github.com/mkrogh/courtline/internal/history"
	"github.com/mkrogh/courtline/internal/league"
	"github.com/mkrogh/courtline/internal/metrics"
	"github.com/mkrogh/courtline/internal/processor"
	"github.com/mkrogh/courtline/internal/pubsub"
	"github.com/mkrogh/courtline/internal/training"
)

type Server struct {
	League         league.LeagueStore
	Trainings      training.TrainingStore
	ClubStore      club.ClubStore
	Events         history.EventStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
