package league

import (
	"database/sql"
	"sync"
)

// store handles all database operations for league data.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Team is a squad registered in a league, owned by the external store.
type Team struct {
	ID         string `json:"id"`
	ClubName   string `json:"club_name"`
	SquadLabel string `json:"squad_label"`
}

// DisplayName combines the club name and squad label. The squad label is
// omitted when empty.
func (t Team) DisplayName() string {
	if t.SquadLabel == "" {
		return t.ClubName
	}
	return t.ClubName + " " + t.SquadLabel
}

// Fixture is a scheduled match day between two teams.
type Fixture struct {
	ID          string `json:"id"`
	ScheduledAt int64  `json:"scheduled_at"`
	HomeTeamID  string `json:"home_team_id"`
	AwayTeamID  string `json:"away_team_id"`
	Season      string `json:"season"`
	Status      string `json:"status"`
	// AggHome/AggAway are the externally recorded aggregate score. They are
	// only used as a display fallback when no individual results exist yet.
	AggHome string `json:"agg_home"`
	AggAway string `json:"agg_away"`
}

// SetScore holds the raw score strings for one set. Scores arrive as
// free-text from the external store and are parsed leniently.
type SetScore struct {
	Home  string `json:"home"`
	Guest string `json:"guest"`
}

// GameResult is the outcome of one individual rubber within a fixture.
type GameResult struct {
	ID        string      `json:"id"`
	FixtureID string      `json:"fixture_id"`
	Status    string      `json:"status"`
	Winner    string      `json:"winner"` // "home", "guest" or empty
	Sets      [3]SetScore `json:"sets"`
}

// TeamRecord is one row of the standings table. It is derived, never persisted.
type TeamRecord struct {
	TeamID        string `json:"team_id"`
	Name          string `json:"name"`
	MatchesPlayed int    `json:"matches_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Points        int    `json:"points"`
}

// FixtureSummary is the derived aggregate of one fixture's game results.
type FixtureSummary struct {
	FixtureID    string `json:"fixture_id"`
	HomeTeamID   string `json:"home_team_id"`
	AwayTeamID   string `json:"away_team_id"`
	HomeName     string `json:"home_name"`
	AwayName     string `json:"away_name"`
	HomeWins     int    `json:"home_wins"` // individual rubbers won
	AwayWins     int    `json:"away_wins"`
	HomeSets     int    `json:"home_sets"`
	AwaySets     int    `json:"away_sets"`
	HomeGames    int    `json:"home_games"` // games within sets
	AwayGames    int    `json:"away_games"`
	DisplayScore string `json:"display_score"`
	Winner       string `json:"winner"` // "home", "away", "draw" or empty
	Completed    int    `json:"completed"`
	Expected     int    `json:"expected"`
}

// Standings is the full derived output of a recompute.
type Standings struct {
	Records   []TeamRecord     `json:"records"`
	Summaries []FixtureSummary `json:"summaries"`
}
