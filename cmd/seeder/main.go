package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mkrogh/courtline/internal/club"
	"github.com/mkrogh/courtline/internal/database"
	"github.com/mkrogh/courtline/internal/league"
	"github.com/mkrogh/courtline/internal/training"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "courtline.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	if value, ok := os.LookupEnv("DB_NAME"); ok {
		config["DB_NAME"] = value
	}
	if value, ok := os.LookupEnv("MIGRATIONS_DIR"); ok {
		config["MIGRATIONS_DIR"] = value
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], "", "", cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	leagueStore := league.New(db)
	trainingStore := training.NewStore(db)
	clubStore := club.New(db)

	gofakeit.Seed(42)

	// Roster
	players := make([]club.PlayerInfo, 0, 12)
	for i := 0; i < 12; i++ {
		players = append(players, club.PlayerInfo{
			ID:        uuid.New().String(),
			Name:      gofakeit.Name(),
			Rating:    float64(gofakeit.IntRange(80, 250)) / 10,
			IsCaptain: i == 0,
		})
	}
	if err := clubStore.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to seed players: %s", err)
	}
	log.Info("Seeded players", "count", len(players))

	// Teams
	teams := []league.Team{
		{ID: "team-1", ClubName: "TC Grunewald", SquadLabel: "Herren 1"},
		{ID: "team-2", ClubName: "SV Blau-Weiss", SquadLabel: "Herren 2"},
		{ID: "team-3", ClubName: "TC Rotation", SquadLabel: ""},
		{ID: "team-4", ClubName: "Post SV", SquadLabel: "Damen 1"},
	}
	for _, t := range teams {
		if err := leagueStore.UpsertTeam(t); err != nil {
			log.Fatalf("Failed to seed team %s: %s", t.ID, err)
		}
	}
	log.Info("Seeded teams", "count", len(teams))

	// A played fixture with six decided rubbers and one upcoming fixture.
	now := time.Now()
	played := league.Fixture{
		ID:          uuid.New().String(),
		ScheduledAt: now.AddDate(0, 0, -7).Unix(),
		HomeTeamID:  "team-1",
		AwayTeamID:  "team-2",
		Season:      "Winter 25/26",
		Status:      league.FixtureStatusFinished,
	}
	upcoming := league.Fixture{
		ID:          uuid.New().String(),
		ScheduledAt: now.AddDate(0, 0, 7).Unix(),
		HomeTeamID:  "team-3",
		AwayTeamID:  "team-4",
		Season:      "Winter 25/26",
		Status:      "scheduled",
	}
	for _, f := range []league.Fixture{played, upcoming} {
		if err := leagueStore.UpsertFixture(f); err != nil {
			log.Fatalf("Failed to seed fixture %s: %s", f.ID, err)
		}
	}

	for i := 0; i < 6; i++ {
		winner := league.SideHome
		if gofakeit.Bool() {
			winner = league.SideGuest
		}
		result := league.GameResult{
			ID:        uuid.New().String(),
			FixtureID: played.ID,
			Status:    league.GameStatusCompleted,
			Winner:    winner,
			Sets: [3]league.SetScore{
				randomSet(winner),
				randomSet(winner),
				{},
			},
		}
		if err := leagueStore.UpsertGameResult(result); err != nil {
			log.Fatalf("Failed to seed game result: %s", err)
		}
	}
	log.Info("Seeded fixtures and game results")

	// A round-robin training with more confirmations than slots.
	t := training.Training{
		ID:                uuid.New().String(),
		StartsAt:          now.AddDate(0, 0, 3).Unix(),
		MaxPlayers:        4,
		RoundRobinEnabled: true,
		RoundRobinSeed:    "42",
	}
	if err := trainingStore.UpsertTraining(t); err != nil {
		log.Fatalf("Failed to seed training: %s", err)
	}
	for i, p := range players[:6] {
		respondedAt := now.Add(time.Duration(i) * time.Minute).Unix()
		if err := trainingStore.RecordResponse(t.ID, p.ID, p.Name, training.StatusConfirmed, respondedAt); err != nil {
			log.Fatalf("Failed to seed response: %s", err)
		}
	}
	log.Info("Seeded training", "trainingID", t.ID, "confirmed", 6, "maxPlayers", t.MaxPlayers)

	fmt.Println("Seeding complete. Training id: " + t.ID)
}

// randomSet generates a plausible set score won by the given side.
func randomSet(winner string) league.SetScore {
	loserGames := gofakeit.IntRange(0, 4)
	win := strconv.Itoa(6)
	lose := strconv.Itoa(loserGames)
	if winner == league.SideHome {
		return league.SetScore{Home: win, Guest: lose}
	}
	return league.SetScore{Home: lose, Guest: win}
}
