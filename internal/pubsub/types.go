package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of change notification sent via pubsub.
// The expected reaction to any of them is "re-fetch snapshot, re-run the
// pure computation", never an incremental patch.
type EventType string

const (
	EventFixturesChanged  EventType = "fixtures-changed"
	EventResultsChanged   EventType = "results-changed"
	EventTrainingsChanged EventType = "trainings-changed"
	EventPlayersChanged   EventType = "players-changed"
)

// TableChanged is the payload of a change notification.
type TableChanged struct {
	Table     string `msgpack:"table"`
	SubjectID string `msgpack:"subject_id"`
}
