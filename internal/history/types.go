package history

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the event log.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// EventType classifies an audit event.
type EventType string

const (
	EventStandingsRecomputed EventType = "standings_recomputed"
	EventTrainingResponse    EventType = "training_response"
	EventWaitlistPromotion   EventType = "waitlist_promotion"
	EventRatingUpdated       EventType = "rating_updated"
)

// Event is one append-only audit record.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id"`
	Detail    string    `json:"detail"`
	CreatedAt int64     `json:"created_at"`
}
