package processor

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkrogh/courtline/internal/club"
	"github.com/mkrogh/courtline/internal/history"
	"github.com/mkrogh/courtline/internal/league"
	"github.com/mkrogh/courtline/internal/metrics"
	"github.com/mkrogh/courtline/internal/pubsub"
	"github.com/mkrogh/courtline/internal/rating"
	"github.com/mkrogh/courtline/internal/training"
)

// New creates a new Processor.
func New(leagueStore league.LeagueStore, trainingStore training.TrainingStore, clubStore club.ClubStore, scheduler *training.Scheduler, events history.EventStore, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		league:    leagueStore,
		trainings: trainingStore,
		clubStore: clubStore,
		scheduler: scheduler,
		events:    events,
		metrics:   metrics,
		pubsub:    pubsub,
	}
}

// RecomputeStandings fetches a fresh snapshot and re-runs the standings
// engine. The result is returned, never persisted; standings are derived
// state.
func (p *Processor) RecomputeStandings(season string) (league.Standings, error) {
	startTime := time.Now()
	teams, fixtures, results, err := p.league.Snapshot(season)
	if err != nil {
		return league.Standings{}, fmt.Errorf("failed to fetch league snapshot: %w", err)
	}

	standings := league.ComputeStandings(teams, fixtures, results)

	p.metrics.IncStandingsRecomputes()
	p.metrics.ObserveRecomputeDuration(time.Since(startTime).Seconds())
	if err := p.events.Append(history.EventStandingsRecomputed, season, fmt.Sprintf("%d fixtures", len(fixtures))); err != nil {
		log.Error("Failed to append standings event", "error", err)
	}
	log.Info("Recomputed standings", "season", season, "teams", len(teams), "fixtures", len(fixtures))
	return standings, nil
}

// CalculateParticipants re-runs the waitlist scheduler for one training.
func (p *Processor) CalculateParticipants(trainingID string) (training.Selection, error) {
	startTime := time.Now()
	t, err := p.trainings.GetTraining(trainingID)
	if err != nil {
		return training.Selection{}, err
	}
	roster, err := p.trainings.GetRoster(trainingID)
	if err != nil {
		return training.Selection{}, err
	}

	selection := p.scheduler.CalculateParticipants(*t, roster)

	p.metrics.IncWaitlistRuns()
	p.metrics.ObserveRecomputeDuration(time.Since(startTime).Seconds())
	log.Debug("Calculated participants", "trainingID", trainingID, "canPlay", len(selection.CanPlay), "waitlist", len(selection.Waitlist), "overbooked", selection.Overbooked)
	return selection, nil
}

// HandleResponse records one response event, updates the responder's
// historical counters and, on a decline for a round-robin training, promotes
// the first waitlist entry. Exactly one promotion per decline event.
func (p *Processor) HandleResponse(trainingID, playerID, playerName string, status training.ResponseStatus, dryRun bool) (training.Selection, error) {
	t, err := p.trainings.GetTraining(trainingID)
	if err != nil {
		return training.Selection{}, err
	}

	// The pre-decline selection decides who gets promoted: the freed slot
	// goes to the waitlist entry at position 1.
	var promoted *training.PriorityEntry
	if status == training.StatusDeclined && t.RoundRobinEnabled {
		before, err := p.CalculateParticipants(trainingID)
		if err != nil {
			return training.Selection{}, err
		}
		if wasAdmitted(before, playerID) && len(before.Waitlist) > 0 {
			promoted = &before.Waitlist[0]
		}
	}

	now := time.Now()
	if dryRun {
		log.Info("[Dry Run] Would record response", "trainingID", trainingID, "playerID", playerID, "status", status)
	} else {
		if err := p.trainings.RecordResponse(trainingID, playerID, playerName, status, now.Unix()); err != nil {
			return training.Selection{}, err
		}
		if err := p.updateStats(playerID, status, now); err != nil {
			log.Error("Failed to update attendance stats", "error", err, "playerID", playerID)
		}
		if err := p.events.Append(history.EventTrainingResponse, trainingID, fmt.Sprintf("%s: %s", playerID, status)); err != nil {
			log.Error("Failed to append response event", "error", err)
		}
		if promoted != nil {
			if err := p.trainings.RecordPromotion(trainingID, promoted.PlayerID, now.Unix()); err != nil {
				log.Error("Failed to record promotion", "error", err, "playerID", promoted.PlayerID)
			} else {
				p.metrics.IncPromotions()
				if err := p.events.Append(history.EventWaitlistPromotion, trainingID, promoted.PlayerID); err != nil {
					log.Error("Failed to append promotion event", "error", err)
				}
				log.Info("Promoted from waitlist", "trainingID", trainingID, "playerID", promoted.PlayerID)
			}
		}
		if err := p.pubsub.SendMessage(pubsub.EventTrainingsChanged, pubsub.TableChanged{Table: "training_responses", SubjectID: trainingID}); err != nil {
			log.Error("Failed to publish change notification", "error", err)
		}
	}

	return p.CalculateParticipants(trainingID)
}

// updateStats folds one response into the participant's persistent counters.
func (p *Processor) updateStats(playerID string, status training.ResponseStatus, respondedAt time.Time) error {
	stats, err := p.trainings.GetStats(playerID)
	if err != nil {
		return err
	}
	updated := training.ApplyResponse(stats, status, respondedAt)
	return p.trainings.UpsertStats(playerID, updated)
}

// RecomputeRating re-runs the rating adjuster for one player and persists
// the result.
func (p *Processor) RecomputeRating(playerID string, wins []rating.Win, weeksSinceSeasonStart int, dryRun bool) (float64, error) {
	startTime := time.Now()
	player, err := p.clubStore.GetPlayer(playerID)
	if err != nil {
		return 0, err
	}

	newRating := rating.Recompute(player.Rating, wins, weeksSinceSeasonStart)

	if dryRun {
		log.Info("[Dry Run] Would update rating", "playerID", playerID, "from", player.Rating, "to", newRating)
		return newRating, nil
	}

	if err := p.clubStore.UpdateRating(playerID, newRating); err != nil {
		return 0, err
	}
	p.metrics.IncRatingUpdates()
	p.metrics.ObserveRecomputeDuration(time.Since(startTime).Seconds())
	if err := p.events.Append(history.EventRatingUpdated, playerID, fmt.Sprintf("%.3f -> %.3f", player.Rating, newRating)); err != nil {
		log.Error("Failed to append rating event", "error", err)
	}
	if err := p.pubsub.SendMessage(pubsub.EventPlayersChanged, pubsub.TableChanged{Table: "players", SubjectID: playerID}); err != nil {
		log.Error("Failed to publish change notification", "error", err)
	}

	log.Info("Updated player rating", "playerID", playerID, "rating", rating.Display(newRating))
	return newRating, nil
}

func wasAdmitted(selection training.Selection, playerID string) bool {
	for _, e := range selection.CanPlay {
		if e.PlayerID == playerID {
			return true
		}
	}
	return false
}
