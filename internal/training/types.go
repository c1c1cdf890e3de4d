package training

import (
	"database/sql"
	"sync"
)

// store handles all database operations for trainings.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ResponseStatus is a participant's answer to a training invitation.
type ResponseStatus string

const (
	StatusConfirmed ResponseStatus = "confirmed"
	StatusDeclined  ResponseStatus = "declined"
	StatusPending   ResponseStatus = "pending"
)

// Training is a single training session with its selection policy.
type Training struct {
	ID                string `json:"id"`
	StartsAt          int64  `json:"starts_at"`
	MaxPlayers        int    `json:"max_players"`
	RoundRobinEnabled bool   `json:"round_robin_enabled"`
	RoundRobinSeed    string `json:"round_robin_seed"`
}

// AttendanceStats are a participant's historical counters. They persist in
// the external store and are updated after every response event.
type AttendanceStats struct {
	Attended            int            `json:"attended"`
	Declined            int            `json:"declined"`
	ConsecutiveDeclines int            `json:"consecutive_declines"`
	LastAttended        *int64         `json:"last_attended,omitempty"` // unix seconds
	LastResponse        ResponseStatus `json:"last_response,omitempty"`
	AttendanceRate      float64        `json:"attendance_rate"`
}

// Participant is one candidate for a training, carrying a response snapshot
// and historical counters.
type Participant struct {
	PlayerID    string          `json:"player_id"`
	Name        string          `json:"name"`
	Status      ResponseStatus  `json:"status"`
	RespondedAt int64           `json:"responded_at"`
	Stats       AttendanceStats `json:"stats"`
}

// PriorityBreakdown shows how a participant's priority score was composed.
type PriorityBreakdown struct {
	Recency      float64 `json:"recency"`
	DeclineBonus float64 `json:"decline_bonus"`
	Tiebreak     float64 `json:"tiebreak"`
}

// PriorityEntry is a ranked participant. Derived, never persisted.
type PriorityEntry struct {
	PlayerID  string            `json:"player_id"`
	Name      string            `json:"name"`
	Score     float64           `json:"score"`
	Breakdown PriorityBreakdown `json:"breakdown"`
	Rank      int               `json:"rank"`
}

// Selection is the outcome of a participant calculation.
type Selection struct {
	CanPlay    []PriorityEntry `json:"can_play"`
	Waitlist   []PriorityEntry `json:"waitlist"`
	Overbooked bool            `json:"overbooked"`
}

// Promotion records a waitlist entry moving into the admit list.
type Promotion struct {
	ID         string `json:"id"`
	TrainingID string `json:"training_id"`
	PlayerID   string `json:"player_id"`
	PromotedAt int64  `json:"promoted_at"`
}
