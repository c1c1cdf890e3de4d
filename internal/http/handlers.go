package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mkrogh/courtline/internal/auth"
	"github.com/mkrogh/courtline/internal/pubsub"
	"github.com/mkrogh/courtline/internal/rating"
	"github.com/mkrogh/courtline/internal/training"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season := r.URL.Query().Get("season")
		standings, err := s.Processor.RecomputeStandings(season)
		if err != nil {
			http.Error(w, "Failed to compute standings", http.StatusInternalServerError)
			log.Error("Failed to compute standings", "error", err, "season", season)
			return
		}
		writeJSON(w, standings)
	}
}

func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.League.GetTeams()
		if err != nil {
			http.Error(w, "Failed to get teams", http.StatusInternalServerError)
			log.Error("Failed to get teams from store", "error", err)
			return
		}
		writeJSON(w, teams)
	}
}

func (s *Server) ListFixturesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fixtures, err := s.League.GetFixtures(r.URL.Query().Get("season"))
		if err != nil {
			http.Error(w, "Failed to get fixtures", http.StatusInternalServerError)
			log.Error("Failed to get fixtures from store", "error", err)
			return
		}
		writeJSON(w, fixtures)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.ClubStore.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, players)
	}
}

func (s *Server) ListTrainingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trainings, err := s.Trainings.ListTrainings()
		if err != nil {
			http.Error(w, "Failed to get trainings", http.StatusInternalServerError)
			log.Error("Failed to get trainings from store", "error", err)
			return
		}
		writeJSON(w, trainings)
	}
}

func (s *Server) ParticipantsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trainingID := r.URL.Query().Get("id")
		if trainingID == "" {
			http.Error(w, "Missing 'id' parameter", http.StatusBadRequest)
			return
		}
		selection, err := s.Processor.CalculateParticipants(trainingID)
		if err != nil {
			http.Error(w, "Failed to calculate participants", http.StatusInternalServerError)
			log.Error("Failed to calculate participants", "error", err, "trainingID", trainingID)
			return
		}
		writeJSON(w, selection)
	}
}

// respondRequest is the body of a response event.
type respondRequest struct {
	TrainingID string `json:"training_id"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Status     string `json:"status"`
}

func (s *Server) RespondHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req respondRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.TrainingID == "" {
			http.Error(w, "Missing training_id", http.StatusBadRequest)
			return
		}

		identity, _ := auth.FromContext(r.Context())
		if req.PlayerID == "" {
			req.PlayerID = identity.PlayerID
		}
		// Only a captain may respond on behalf of someone else.
		if req.PlayerID != identity.PlayerID && !identity.Captain {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		status := training.ResponseStatus(req.Status)
		if status != training.StatusConfirmed && status != training.StatusDeclined {
			http.Error(w, "Invalid status", http.StatusBadRequest)
			return
		}

		selection, err := s.Processor.HandleResponse(req.TrainingID, req.PlayerID, req.PlayerName, status, isDryRunFromContext(r))
		if err != nil {
			http.Error(w, "Failed to handle response", http.StatusInternalServerError)
			log.Error("Failed to handle response", "error", err, "trainingID", req.TrainingID, "playerID", req.PlayerID)
			return
		}
		writeJSON(w, selection)
	}
}

// recomputeRatingRequest carries the chronological win list for one player.
type recomputeRatingRequest struct {
	PlayerID              string       `json:"player_id"`
	Wins                  []rating.Win `json:"wins"`
	WeeksSinceSeasonStart int          `json:"weeks_since_season_start"`
}

func (s *Server) RecomputeRatingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req recomputeRatingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" {
			http.Error(w, "Missing player_id", http.StatusBadRequest)
			return
		}

		newRating, err := s.Processor.RecomputeRating(req.PlayerID, req.Wins, req.WeeksSinceSeasonStart, isDryRunFromContext(r))
		if err != nil {
			http.Error(w, "Failed to recompute rating", http.StatusInternalServerError)
			log.Error("Failed to recompute rating", "error", err, "playerID", req.PlayerID)
			return
		}
		writeJSON(w, map[string]float64{
			"rating":  newRating,
			"display": rating.Display(newRating),
		})
	}
}

func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err == nil && parsed > 0 {
				limit = parsed
			}
		}
		events, err := s.Events.Recent(limit)
		if err != nil {
			http.Error(w, "Failed to get history", http.StatusInternalServerError)
			log.Error("Failed to get history", "error", err)
			return
		}
		writeJSON(w, events)
	}
}

// TableChangedHandler receives pubsub push messages about changed tables and
// re-runs the relevant pure computation over a fresh snapshot.
func (s *Server) TableChangedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}

		if err := json.NewDecoder(r.Body).Decode(&pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var changed pubsub.TableChanged
		if err := s.pubsub.ProcessMessage(rawData, &changed); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		log.Info("Received change notification", "table", changed.Table, "subjectID", changed.SubjectID)

		switch changed.Table {
		case "fixtures", "game_results", "teams":
			if _, err := s.Processor.RecomputeStandings(""); err != nil {
				log.Error("Failed to recompute standings", "error", err)
			}
		case "trainings", "training_responses":
			if changed.SubjectID != "" {
				if _, err := s.Processor.CalculateParticipants(changed.SubjectID); err != nil {
					log.Error("Failed to recalculate participants", "error", err)
				}
			}
		default:
			log.Debug("No recompute wired for table", "table", changed.Table)
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.League.Clear()
		s.Trainings.Clear()
		s.ClubStore.Clear()
		s.Events.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
