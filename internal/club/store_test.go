package club_test

import (
	"database/sql"
	"testing"

	"github.com/mkrogh/courtline/internal/club"
	"github.com/mkrogh/courtline/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := club.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

func TestUpsertAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayers([]club.PlayerInfo{
		{ID: "p1", Name: "Anna", Rating: 12.3, IsCaptain: true},
		{ID: "p2", Name: "Ben", Rating: 25},
	}))

	assert.True(t, store.IsKnownPlayer("p1"))
	assert.False(t, store.IsKnownPlayer("p3"))

	all, err := store.GetAllPlayers()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Anna", all[0].Name)
	assert.True(t, all[0].IsCaptain)

	some, err := store.GetPlayers([]string{"p2"})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "Ben", some[0].Name)

	none, err := store.GetPlayers(nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpsertPlayersUpdatesInPlace(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayers([]club.PlayerInfo{{ID: "p1", Name: "Anna", Rating: 20}}))
	require.NoError(t, store.UpsertPlayers([]club.PlayerInfo{{ID: "p1", Name: "Anna B", Rating: 19.5, IsCaptain: true}}))

	p, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, "Anna B", p.Name)
	assert.Equal(t, 19.5, p.Rating)
	assert.True(t, p.IsCaptain)
}

func TestGetPlayerNotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetPlayer("ghost")
	assert.ErrorContains(t, err, "player not found")
}

func TestUpdateRating(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayers([]club.PlayerInfo{{ID: "p1", Name: "Anna", Rating: 20}}))

	require.NoError(t, store.UpdateRating("p1", 19.6))
	p, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, 19.6, p.Rating)

	err = store.UpdateRating("ghost", 15)
	assert.ErrorContains(t, err, "player not found")
}

func TestClubStoreClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayers([]club.PlayerInfo{{ID: "p1", Name: "Anna"}}))

	store.Clear()

	all, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Empty(t, all)
}
