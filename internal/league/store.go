package league

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

func (s *store) GetTeams() ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, club_name, squad_label FROM teams ORDER BY club_name, squad_label")
	if err != nil {
		log.Error("Failed to query teams", "error", err)
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		var squad sql.NullString
		if err := rows.Scan(&t.ID, &t.ClubName, &squad); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		t.SquadLabel = squad.String
		teams = append(teams, t)
	}
	return teams, nil
}

// GetFixtures retrieves fixtures, optionally filtered to one season.
func (s *store) GetFixtures(season string) ([]Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, scheduled_at, home_team_id, away_team_id, season, status, agg_home, agg_away
		FROM fixtures
	`
	args := []any{}
	if season != "" {
		query += " WHERE season = ?"
		args = append(args, season)
	}
	query += " ORDER BY scheduled_at"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query fixtures", "error", err)
		return nil, err
	}
	defer rows.Close()

	var fixtures []Fixture
	for rows.Next() {
		var f Fixture
		var aggHome, aggAway sql.NullString
		if err := rows.Scan(&f.ID, &f.ScheduledAt, &f.HomeTeamID, &f.AwayTeamID, &f.Season, &f.Status, &aggHome, &aggAway); err != nil {
			log.Error("Failed to scan fixture row", "error", err)
			continue
		}
		f.AggHome = aggHome.String
		f.AggAway = aggAway.String
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// GetGameResults retrieves the game results belonging to the given fixtures.
func (s *store) GetGameResults(fixtureIDs []string) ([]GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(fixtureIDs) == 0 {
		return []GameResult{}, nil
	}

	placeholders := strings.Repeat("?,", len(fixtureIDs)-1) + "?"
	query := fmt.Sprintf(`
		SELECT id, fixture_id, status, winner,
		       set1_home, set1_guest, set2_home, set2_guest, set3_home, set3_guest
		FROM game_results
		WHERE fixture_id IN (%s)
		ORDER BY id
	`, placeholders)

	rows, err := s.db.Query(query, toAnySlice(fixtureIDs)...)
	if err != nil {
		log.Error("Failed to query game results", "error", err)
		return nil, err
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		r, err := scanGameResult(rows)
		if err != nil {
			log.Error("Failed to scan game result row", "error", err)
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

func scanGameResult(scanner interface{ Scan(...any) error }) (GameResult, error) {
	var r GameResult
	var winner sql.NullString
	var sets [6]sql.NullString

	err := scanner.Scan(
		&r.ID, &r.FixtureID, &r.Status, &winner,
		&sets[0], &sets[1], &sets[2], &sets[3], &sets[4], &sets[5],
	)
	if err != nil {
		return GameResult{}, err
	}

	r.Winner = winner.String
	for i := 0; i < 3; i++ {
		r.Sets[i] = SetScore{Home: sets[i*2].String, Guest: sets[i*2+1].String}
	}
	return r, nil
}

func (s *store) UpsertTeam(team Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO teams (id, club_name, squad_label)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			club_name = excluded.club_name,
			squad_label = excluded.squad_label;
	`, team.ID, team.ClubName, team.SquadLabel)
	return err
}

func (s *store) UpsertFixture(fixture Fixture) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO fixtures (id, scheduled_at, home_team_id, away_team_id, season, status, agg_home, agg_away)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			scheduled_at = excluded.scheduled_at,
			home_team_id = excluded.home_team_id,
			away_team_id = excluded.away_team_id,
			season = excluded.season,
			status = excluded.status,
			agg_home = excluded.agg_home,
			agg_away = excluded.agg_away;
	`, fixture.ID, fixture.ScheduledAt, fixture.HomeTeamID, fixture.AwayTeamID, fixture.Season, fixture.Status, fixture.AggHome, fixture.AggAway)
	return err
}

func (s *store) UpsertGameResult(result GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO game_results (id, fixture_id, status, winner,
			set1_home, set1_guest, set2_home, set2_guest, set3_home, set3_guest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			fixture_id = excluded.fixture_id,
			status = excluded.status,
			winner = excluded.winner,
			set1_home = excluded.set1_home,
			set1_guest = excluded.set1_guest,
			set2_home = excluded.set2_home,
			set2_guest = excluded.set2_guest,
			set3_home = excluded.set3_home,
			set3_guest = excluded.set3_guest;
	`, result.ID, result.FixtureID, result.Status, result.Winner,
		result.Sets[0].Home, result.Sets[0].Guest,
		result.Sets[1].Home, result.Sets[1].Guest,
		result.Sets[2].Home, result.Sets[2].Guest)
	return err
}

// Snapshot fetches a consistent-enough view for one recompute run.
func (s *store) Snapshot(season string) ([]Team, []Fixture, []GameResult, error) {
	teams, err := s.GetTeams()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	fixtures, err := s.GetFixtures(season)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch fixtures: %w", err)
	}
	ids := make([]string, 0, len(fixtures))
	for _, f := range fixtures {
		ids = append(ids, f.ID)
	}
	results, err := s.GetGameResults(ids)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch game results: %w", err)
	}
	return teams, fixtures, results, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing league store", "error", err)
		return
	}

	for _, table := range []string{"game_results", "fixtures", "teams"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing league store", "error", err)
	}
}

func toAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
