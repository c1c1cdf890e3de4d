package training

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewStore creates a new TrainingStore.
func NewStore(db *sql.DB) TrainingStore {
	return &store{
		db: db,
	}
}

func (s *store) UpsertTraining(t Training) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO trainings (id, starts_at, max_players, round_robin_enabled, round_robin_seed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			starts_at = excluded.starts_at,
			max_players = excluded.max_players,
			round_robin_enabled = excluded.round_robin_enabled,
			round_robin_seed = excluded.round_robin_seed;
	`, t.ID, t.StartsAt, t.MaxPlayers, t.RoundRobinEnabled, t.RoundRobinSeed)
	if err != nil {
		return fmt.Errorf("failed to upsert training: %w", err)
	}
	return nil
}

func (s *store) GetTraining(trainingID string) (*Training, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t Training
	var seed sql.NullString
	err := s.db.QueryRow(`
		SELECT id, starts_at, max_players, round_robin_enabled, round_robin_seed
		FROM trainings WHERE id = ?
	`, trainingID).Scan(&t.ID, &t.StartsAt, &t.MaxPlayers, &t.RoundRobinEnabled, &seed)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("training not found: %s", trainingID)
		}
		return nil, fmt.Errorf("failed to get training: %w", err)
	}
	t.RoundRobinSeed = seed.String
	return &t, nil
}

func (s *store) ListTrainings() ([]Training, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, starts_at, max_players, round_robin_enabled, round_robin_seed
		FROM trainings ORDER BY starts_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trainings: %w", err)
	}
	defer rows.Close()

	var trainings []Training
	for rows.Next() {
		var t Training
		var seed sql.NullString
		if err := rows.Scan(&t.ID, &t.StartsAt, &t.MaxPlayers, &t.RoundRobinEnabled, &seed); err != nil {
			log.Error("Failed to scan training row", "error", err)
			continue
		}
		t.RoundRobinSeed = seed.String
		trainings = append(trainings, t)
	}
	return trainings, nil
}

func (s *store) RecordResponse(trainingID, playerID, playerName string, status ResponseStatus, respondedAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The original responded_at is kept on conflict so a status change does
	// not push the player to the back of the FCFS order.
	_, err := s.db.Exec(`
		INSERT INTO training_responses (training_id, player_id, player_name, status, responded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(training_id, player_id) DO UPDATE SET
			player_name = excluded.player_name,
			status = excluded.status;
	`, trainingID, playerID, playerName, status, respondedAt)
	if err != nil {
		return fmt.Errorf("failed to record response: %w", err)
	}
	return nil
}

// GetRoster returns a training's participants in responded-at order, with
// each participant's historical counters attached.
func (s *store) GetRoster(trainingID string) ([]Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT r.player_id, r.player_name, r.status, r.responded_at,
		       COALESCE(ts.attended, 0),
		       COALESCE(ts.declined, 0),
		       COALESCE(ts.consecutive_declines, 0),
		       ts.last_attended,
		       ts.last_response,
		       COALESCE(ts.attendance_rate, 0)
		FROM training_responses r
		LEFT JOIN training_stats ts ON r.player_id = ts.player_id
		WHERE r.training_id = ?
		ORDER BY r.responded_at, r.player_id
	`, trainingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var roster []Participant
	for rows.Next() {
		var p Participant
		var lastAttended sql.NullInt64
		var lastResponse sql.NullString
		err := rows.Scan(
			&p.PlayerID, &p.Name, &p.Status, &p.RespondedAt,
			&p.Stats.Attended, &p.Stats.Declined, &p.Stats.ConsecutiveDeclines,
			&lastAttended, &lastResponse, &p.Stats.AttendanceRate,
		)
		if err != nil {
			log.Error("Failed to scan roster row", "error", err)
			continue
		}
		if lastAttended.Valid {
			ts := lastAttended.Int64
			p.Stats.LastAttended = &ts
		}
		p.Stats.LastResponse = ResponseStatus(lastResponse.String)
		roster = append(roster, p)
	}
	return roster, nil
}

func (s *store) GetStats(playerID string) (AttendanceStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats AttendanceStats
	var lastAttended sql.NullInt64
	var lastResponse sql.NullString
	err := s.db.QueryRow(`
		SELECT attended, declined, consecutive_declines, last_attended, last_response, attendance_rate
		FROM training_stats WHERE player_id = ?
	`, playerID).Scan(
		&stats.Attended, &stats.Declined, &stats.ConsecutiveDeclines,
		&lastAttended, &lastResponse, &stats.AttendanceRate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return AttendanceStats{}, nil // never responded before
		}
		return AttendanceStats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	if lastAttended.Valid {
		ts := lastAttended.Int64
		stats.LastAttended = &ts
	}
	stats.LastResponse = ResponseStatus(lastResponse.String)
	return stats, nil
}

func (s *store) UpsertStats(playerID string, stats AttendanceStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lastAttended any
	if stats.LastAttended != nil {
		lastAttended = *stats.LastAttended
	}
	_, err := s.db.Exec(`
		INSERT INTO training_stats (player_id, attended, declined, consecutive_declines, last_attended, last_response, attendance_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			attended = excluded.attended,
			declined = excluded.declined,
			consecutive_declines = excluded.consecutive_declines,
			last_attended = excluded.last_attended,
			last_response = excluded.last_response,
			attendance_rate = excluded.attendance_rate;
	`, playerID, stats.Attended, stats.Declined, stats.ConsecutiveDeclines, lastAttended, string(stats.LastResponse), stats.AttendanceRate)
	if err != nil {
		return fmt.Errorf("failed to upsert stats: %w", err)
	}
	return nil
}

func (s *store) RecordPromotion(trainingID, playerID string, promotedAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO promotions (id, training_id, player_id, promoted_at)
		VALUES (?, ?, ?, ?)
	`, uuid.New().String(), trainingID, playerID, promotedAt)
	if err != nil {
		return fmt.Errorf("failed to record promotion: %w", err)
	}
	log.Info("Recorded waitlist promotion", "trainingID", trainingID, "playerID", playerID)
	return nil
}

func (s *store) GetPromotions(trainingID string) ([]Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, training_id, player_id, promoted_at
		FROM promotions WHERE training_id = ? ORDER BY promoted_at
	`, trainingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query promotions: %w", err)
	}
	defer rows.Close()

	var promotions []Promotion
	for rows.Next() {
		var p Promotion
		if err := rows.Scan(&p.ID, &p.TrainingID, &p.PlayerID, &p.PromotedAt); err != nil {
			log.Error("Failed to scan promotion row", "error", err)
			continue
		}
		promotions = append(promotions, p)
	}
	return promotions, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing training store", "error", err)
		return
	}

	for _, table := range []string{"promotions", "training_responses", "training_stats", "trainings"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing training store", "error", err)
	}
}
