package processor

import (
	"github.com/mkrogh/courtline/internal/club"
	"github.com/mkrogh/courtline/internal/history"
	"github.com/mkrogh/courtline/internal/league"
	"github.com/mkrogh/courtline/internal/metrics"
	"github.com/mkrogh/courtline/internal/pubsub"
	"github.com/mkrogh/courtline/internal/training"
)

// Processor coordinates the derived-state recomputations: it fetches
// snapshots, runs the pure engines and persists what the engines imply
// should be written back.
type Processor struct {
	league    league.LeagueStore
	trainings training.TrainingStore
	clubStore club.ClubStore
	scheduler *training.Scheduler
	events    history.EventStore
	metrics   metrics.Metrics
	pubsub    pubsub.PubSubClient
}
