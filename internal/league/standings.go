package league

import (
	"sort"
	"strconv"
	"strings"
)

// Game result statuses that count towards standings. Anything else is
// treated as not yet decided and excluded from aggregation.
const (
	GameStatusCompleted    = "completed"
	GameStatusRetired      = "retired"
	GameStatusWalkover     = "walkover"
	GameStatusDisqualified = "disqualified"
	GameStatusDefaulted    = "defaulted"
)

// FixtureStatusFinished is the externally set fixture status that allows
// draw detection. Any other value is treated as not yet concluded.
const FixtureStatusFinished = "finished"

// Winner tags on a GameResult.
const (
	SideHome  = "home"
	SideGuest = "guest"
)

// Winner tags on a FixtureSummary.
const (
	WinnerHome = "home"
	WinnerAway = "away"
	WinnerDraw = "draw"
)

// PlaceholderTeamName is used when a fixture references a team id that is
// absent from the provided team snapshot.
const PlaceholderTeamName = "Unknown team"

// championsTiebreakThreshold marks a third set as a champions tiebreak when
// either side reaches it. A long tiebreak counts as a single set-deciding
// unit, not as raw games.
const championsTiebreakThreshold = 10

var finishedGameStatuses = map[string]bool{
	GameStatusCompleted:    true,
	GameStatusRetired:      true,
	GameStatusWalkover:     true,
	GameStatusDisqualified: true,
	GameStatusDefaulted:    true,
}

// ComputeStandings derives the ranked standings table and per-fixture
// summaries from a consistent snapshot. It is a pure function: it never
// errors and degrades malformed input to zero contributions. Callers are
// responsible for filtering the snapshot to one league/group/season.
func ComputeStandings(teams []Team, fixtures []Fixture, results []GameResult) Standings {
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.DisplayName()
	}

	byFixture := make(map[string][]GameResult, len(fixtures))
	for _, r := range results {
		byFixture[r.FixtureID] = append(byFixture[r.FixtureID], r)
	}

	records := make(map[string]*TeamRecord, len(teams))
	order := make([]string, 0, len(teams))
	for _, t := range teams {
		records[t.ID] = &TeamRecord{TeamID: t.ID, Name: t.DisplayName()}
		order = append(order, t.ID)
	}

	summaries := make([]FixtureSummary, 0, len(fixtures))
	for _, f := range fixtures {
		summary := summarizeFixture(f, byFixture[f.ID], names)
		summaries = append(summaries, summary)
		tallyRecords(records, summary)
	}

	ranked := make([]TeamRecord, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, *records[id])
	}
	// Ties are not broken further; stable keeps input order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})

	return Standings{Records: ranked, Summaries: summaries}
}

// summarizeFixture aggregates the decided game results of a single fixture.
func summarizeFixture(f Fixture, results []GameResult, names map[string]string) FixtureSummary {
	summary := FixtureSummary{
		FixtureID:  f.ID,
		HomeTeamID: f.HomeTeamID,
		AwayTeamID: f.AwayTeamID,
		HomeName:   teamName(names, f.HomeTeamID),
		AwayName:   teamName(names, f.AwayTeamID),
		Expected:   ExpectedGames(f.Season),
	}

	for _, r := range results {
		if !finishedGameStatuses[r.Status] || r.Winner == "" {
			continue
		}
		summary.Completed++
		if r.Winner == SideHome {
			summary.HomeWins++
		} else {
			summary.AwayWins++
		}

		for i, set := range r.Sets {
			home := parseScore(set.Home)
			guest := parseScore(set.Guest)
			if home == 0 && guest == 0 {
				continue // set not played
			}
			if home > guest {
				summary.HomeSets++
			} else if guest > home {
				summary.AwaySets++
			}

			// The third set, once either side reaches ten, is a champions
			// tiebreak: exactly one game-equivalent to the higher side.
			if i == 2 && (home >= championsTiebreakThreshold || guest >= championsTiebreakThreshold) {
				if home > guest {
					summary.HomeGames++
				} else if guest > home {
					summary.AwayGames++
				}
				continue
			}
			summary.HomeGames += home
			summary.AwayGames += guest
		}
	}

	switch {
	case summary.HomeWins > summary.AwayWins:
		summary.Winner = WinnerHome
	case summary.AwayWins > summary.HomeWins:
		summary.Winner = WinnerAway
	case f.Status == FixtureStatusFinished && summary.Completed > 0:
		// A draw is only declared for a finished fixture with at least one
		// decided game. Zero decided games means not yet concluded.
		summary.Winner = WinnerDraw
	}

	switch {
	case summary.Completed > 0:
		summary.DisplayScore = strconv.Itoa(summary.HomeWins) + ":" + strconv.Itoa(summary.AwayWins)
	case f.AggHome != "" || f.AggAway != "":
		summary.DisplayScore = strconv.Itoa(parseScore(f.AggHome)) + ":" + strconv.Itoa(parseScore(f.AggAway))
	default:
		summary.DisplayScore = "–:–"
	}

	return summary
}

// tallyRecords folds one fixture summary into the team records. Fixtures
// without a winner are not yet concluded and contribute nothing. Draws
// count as played for both sides but award no points; tennis has no draw,
// so this path is a defensive no-op in practice.
func tallyRecords(records map[string]*TeamRecord, summary FixtureSummary) {
	home := records[summary.HomeTeamID]
	away := records[summary.AwayTeamID]

	switch summary.Winner {
	case WinnerHome:
		bump(home, 1, 0)
		bump(away, 0, 1)
	case WinnerAway:
		bump(home, 0, 1)
		bump(away, 1, 0)
	case WinnerDraw:
		bump(home, 0, 0)
		bump(away, 0, 0)
	}
}

func bump(record *TeamRecord, wins, losses int) {
	if record == nil {
		return // team absent from snapshot, excluded from ranking
	}
	record.MatchesPlayed++
	record.Wins += wins
	record.Losses += losses
	record.Points += wins * 2
}

// ExpectedGames infers the expected number of individual games from the
// free-text season label: summer rounds play nine rubbers, all others six.
func ExpectedGames(season string) int {
	if strings.Contains(strings.ToLower(season), "summer") {
		return 9
	}
	return 6
}

func teamName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return PlaceholderTeamName
}

// parseScore parses a free-text score, degrading to 0 on malformed input.
func parseScore(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
