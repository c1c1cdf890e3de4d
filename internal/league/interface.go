package league

// LeagueStore defines the interface for reading and syncing league data.
// The standings themselves are derived via ComputeStandings and are never
// persisted.
type LeagueStore interface {
	GetTeams() ([]Team, error)
	GetFixtures(season string) ([]Fixture, error)
	GetGameResults(fixtureIDs []string) ([]GameResult, error)
	UpsertTeam(team Team) error
	UpsertFixture(fixture Fixture) error
	UpsertGameResult(result GameResult) error
	Snapshot(season string) ([]Team, []Fixture, []GameResult, error)
	Clear()
}
