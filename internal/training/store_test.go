package training_test

import (
	"database/sql"
	"testing"

	"github.com/mkrogh/courtline/internal/database"
	"github.com/mkrogh/courtline/internal/training"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (training.TrainingStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := training.NewStore(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

func TestUpsertAndGetTraining(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	session := training.Training{
		ID:                "t1",
		StartsAt:          1750000000,
		MaxPlayers:        4,
		RoundRobinEnabled: true,
		RoundRobinSeed:    "42",
	}
	require.NoError(t, store.UpsertTraining(session))

	got, err := store.GetTraining("t1")
	require.NoError(t, err)
	assert.Equal(t, session, *got)

	// Upsert updates in place.
	session.MaxPlayers = 6
	require.NoError(t, store.UpsertTraining(session))
	got, err = store.GetTraining("t1")
	require.NoError(t, err)
	assert.Equal(t, 6, got.MaxPlayers)

	_, err = store.GetTraining("missing")
	assert.Error(t, err)
}

func TestListTrainingsOrderedByStart(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertTraining(training.Training{ID: "t2", StartsAt: 200}))
	require.NoError(t, store.UpsertTraining(training.Training{ID: "t1", StartsAt: 100}))

	trainings, err := store.ListTrainings()
	require.NoError(t, err)
	require.Len(t, trainings, 2)
	assert.Equal(t, "t1", trainings[0].ID)
	assert.Equal(t, "t2", trainings[1].ID)
}

func TestRecordResponseKeepsOriginalOrder(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertTraining(training.Training{ID: "t1"}))
	require.NoError(t, store.RecordResponse("t1", "p1", "One", training.StatusConfirmed, 100))
	require.NoError(t, store.RecordResponse("t1", "p2", "Two", training.StatusConfirmed, 200))

	// p1 changes their mind twice; the original responded_at must survive so
	// the FCFS order does not reshuffle.
	require.NoError(t, store.RecordResponse("t1", "p1", "One", training.StatusDeclined, 300))
	require.NoError(t, store.RecordResponse("t1", "p1", "One", training.StatusConfirmed, 400))

	roster, err := store.GetRoster("t1")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "p1", roster[0].PlayerID)
	assert.Equal(t, training.StatusConfirmed, roster[0].Status)
	assert.Equal(t, int64(100), roster[0].RespondedAt)
	assert.Equal(t, "p2", roster[1].PlayerID)
}

func TestGetRosterJoinsStats(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertTraining(training.Training{ID: "t1"}))
	require.NoError(t, store.RecordResponse("t1", "p1", "One", training.StatusConfirmed, 100))
	require.NoError(t, store.RecordResponse("t1", "p2", "Two", training.StatusConfirmed, 200))

	lastAttended := int64(1750000000)
	require.NoError(t, store.UpsertStats("p1", training.AttendanceStats{
		Attended:       3,
		Declined:       1,
		LastAttended:   &lastAttended,
		LastResponse:   training.StatusConfirmed,
		AttendanceRate: 0.75,
	}))

	roster, err := store.GetRoster("t1")
	require.NoError(t, err)
	require.Len(t, roster, 2)

	assert.Equal(t, 3, roster[0].Stats.Attended)
	require.NotNil(t, roster[0].Stats.LastAttended)
	assert.Equal(t, lastAttended, *roster[0].Stats.LastAttended)
	assert.Equal(t, 0.75, roster[0].Stats.AttendanceRate)

	// p2 has no stats row; counters default to zero.
	assert.Zero(t, roster[1].Stats.Attended)
	assert.Nil(t, roster[1].Stats.LastAttended)
}

func TestGetStatsDefaultsToZero(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	stats, err := store.GetStats("nobody")
	require.NoError(t, err)
	assert.Equal(t, training.AttendanceStats{}, stats)
}

func TestUpsertStatsRoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	lastAttended := int64(1750000000)
	want := training.AttendanceStats{
		Attended:            5,
		Declined:            2,
		ConsecutiveDeclines: 1,
		LastAttended:        &lastAttended,
		LastResponse:        training.StatusDeclined,
		AttendanceRate:      5.0 / 7.0,
	}
	require.NoError(t, store.UpsertStats("p1", want))

	got, err := store.GetStats("p1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecordAndGetPromotions(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertTraining(training.Training{ID: "t1"}))
	require.NoError(t, store.RecordPromotion("t1", "p1", 100))
	require.NoError(t, store.RecordPromotion("t1", "p2", 200))

	promotions, err := store.GetPromotions("t1")
	require.NoError(t, err)
	require.Len(t, promotions, 2)
	assert.Equal(t, "p1", promotions[0].PlayerID)
	assert.Equal(t, "p2", promotions[1].PlayerID)
	assert.NotEmpty(t, promotions[0].ID)
}

func TestTrainingStoreClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertTraining(training.Training{ID: "t1"}))
	require.NoError(t, store.RecordResponse("t1", "p1", "One", training.StatusConfirmed, 100))
	require.NoError(t, store.UpsertStats("p1", training.AttendanceStats{Attended: 1}))
	require.NoError(t, store.RecordPromotion("t1", "p1", 100))

	store.Clear()

	trainings, err := store.ListTrainings()
	require.NoError(t, err)
	assert.Empty(t, trainings)
	roster, err := store.GetRoster("t1")
	require.NoError(t, err)
	assert.Empty(t, roster)
	stats, err := store.GetStats("p1")
	require.NoError(t, err)
	assert.Zero(t, stats.Attended)
}
