package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// retention caps the event log at the newest rows; older rows are pruned on
// every append.
const retention = 500

// EventStore defines the interface for the append-only audit log.
type EventStore interface {
	Append(eventType EventType, subjectID, detail string) error
	Recent(limit int) ([]Event, error)
	Clear()
}

// New creates a new EventStore.
func New(db *sql.DB) EventStore {
	return &store{
		db: db,
	}
}

func (s *store) Append(eventType EventType, subjectID, detail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO club_events (id, event_type, subject_id, detail, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), string(eventType), subjectID, detail, time.Now().Unix())
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to append event: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM club_events WHERE id NOT IN (
			SELECT id FROM club_events ORDER BY created_at DESC, id LIMIT ?
		)
	`, retention)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prune event log: %w", err)
	}

	return tx.Commit()
}

func (s *store) Recent(limit int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > retention {
		limit = retention
	}

	rows, err := s.db.Query(`
		SELECT id, event_type, subject_id, detail, created_at
		FROM club_events ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var eventType string
		if err := rows.Scan(&e.ID, &eventType, &e.SubjectID, &e.Detail, &e.CreatedAt); err != nil {
			log.Error("Failed to scan event row", "error", err)
			continue
		}
		e.Type = EventType(eventType)
		events = append(events, e)
	}
	return events, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM club_events"); err != nil {
		log.Error("Failed to clear event log", "error", err)
	}
}
