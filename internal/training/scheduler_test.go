package training_test

import (
	"testing"
	"time"

	"github.com/mkrogh/courtline/internal/training"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.Date(2026, time.January, 15, 18, 0, 0, 0, time.UTC)
}

func newTestScheduler(opts ...training.Option) *training.Scheduler {
	opts = append([]training.Option{training.WithClock(testClock)}, opts...)
	return training.NewScheduler(opts...)
}

func confirmed(playerID string, stats training.AttendanceStats) training.Participant {
	return training.Participant{
		PlayerID: playerID,
		Name:     "Player " + playerID,
		Status:   training.StatusConfirmed,
		Stats:    stats,
	}
}

func attendedDaysAgo(days int) training.AttendanceStats {
	ts := testClock().AddDate(0, 0, -days).Unix()
	return training.AttendanceStats{Attended: 1, LastAttended: &ts, LastResponse: training.StatusConfirmed}
}

func playerIDs(entries []training.PriorityEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.PlayerID
	}
	return ids
}

func TestCalculateParticipantsFirstComeFirstServed(t *testing.T) {
	scheduler := newTestScheduler()
	session := training.Training{ID: "t1", MaxPlayers: 2}
	roster := []training.Participant{
		confirmed("p1", training.AttendanceStats{}),
		{PlayerID: "p2", Status: training.StatusDeclined},
		confirmed("p3", training.AttendanceStats{}),
		confirmed("p4", training.AttendanceStats{}),
		{PlayerID: "p5", Status: training.StatusPending},
	}

	selection := scheduler.CalculateParticipants(session, roster)

	assert.Equal(t, []string{"p1", "p3"}, playerIDs(selection.CanPlay))
	assert.Equal(t, []string{"p4"}, playerIDs(selection.Waitlist))
	assert.True(t, selection.Overbooked)
	assert.Equal(t, 1, selection.CanPlay[0].Rank)
	assert.Equal(t, 2, selection.CanPlay[1].Rank)
	assert.Equal(t, 3, selection.Waitlist[0].Rank)
	// FCFS entries carry no score.
	assert.Zero(t, selection.CanPlay[0].Score)
}

func TestCalculateParticipantsCapacityLaw(t *testing.T) {
	scheduler := newTestScheduler()

	for _, max := range []int{0, 1, 3, 8} {
		session := training.Training{ID: "t1", MaxPlayers: max, RoundRobinEnabled: true, RoundRobinSeed: "42"}
		roster := []training.Participant{
			confirmed("p1", attendedDaysAgo(3)),
			confirmed("p2", attendedDaysAgo(10)),
			confirmed("p3", training.AttendanceStats{}),
			confirmed("p4", attendedDaysAgo(1)),
			{PlayerID: "p5", Status: training.StatusDeclined},
		}

		selection := scheduler.CalculateParticipants(session, roster)

		if max > 0 {
			assert.LessOrEqual(t, len(selection.CanPlay), max)
		}
		assert.Equal(t, 4, len(selection.CanPlay)+len(selection.Waitlist))
		assert.Equal(t, max > 0 && max < 4, selection.Overbooked)
	}
}

func TestCalculateParticipantsRoundRobinDeterministic(t *testing.T) {
	scheduler := newTestScheduler()
	session := training.Training{ID: "t1", MaxPlayers: 2, RoundRobinEnabled: true, RoundRobinSeed: "42"}
	roster := []training.Participant{
		confirmed("p1", attendedDaysAgo(5)),
		confirmed("p2", attendedDaysAgo(5)),
		confirmed("p3", attendedDaysAgo(5)),
	}

	first := scheduler.CalculateParticipants(session, roster)
	second := scheduler.CalculateParticipants(session, roster)

	assert.Equal(t, first, second)
}

func TestCalculateParticipantsFirstTimerOutranksHistory(t *testing.T) {
	scheduler := newTestScheduler()
	session := training.Training{ID: "t1", MaxPlayers: 1, RoundRobinEnabled: true, RoundRobinSeed: "42"}
	roster := []training.Participant{
		confirmed("p1", attendedDaysAgo(300)),
		confirmed("p2", training.AttendanceStats{}),
	}

	selection := scheduler.CalculateParticipants(session, roster)

	require.Len(t, selection.CanPlay, 1)
	assert.Equal(t, "p2", selection.CanPlay[0].PlayerID)
	assert.Equal(t, float64(1000), selection.CanPlay[0].Breakdown.Recency)
}

func TestCalculateParticipantsLongerAbsenceRanksHigher(t *testing.T) {
	scheduler := newTestScheduler()
	session := training.Training{ID: "t1", RoundRobinEnabled: true, RoundRobinSeed: "42"}
	roster := []training.Participant{
		confirmed("p1", attendedDaysAgo(2)),
		confirmed("p2", attendedDaysAgo(60)),
	}

	selection := scheduler.CalculateParticipants(session, roster)

	require.Len(t, selection.CanPlay, 2)
	// 58 days of recency dwarfs the bounded tie-break term.
	assert.Equal(t, "p2", selection.CanPlay[0].PlayerID)
}

func TestCalculateParticipantsTiebreakBounded(t *testing.T) {
	scheduler := newTestScheduler()
	session := training.Training{ID: "t1", RoundRobinEnabled: true, RoundRobinSeed: "42"}
	roster := []training.Participant{
		confirmed("p1", attendedDaysAgo(5)),
		confirmed("p2", attendedDaysAgo(5)),
		confirmed("p3", attendedDaysAgo(5)),
	}

	selection := scheduler.CalculateParticipants(session, roster)

	for _, entry := range selection.CanPlay {
		assert.GreaterOrEqual(t, entry.Breakdown.Tiebreak, 0.0)
		assert.Less(t, entry.Breakdown.Tiebreak, 5.0)
	}
}

func TestCalculateParticipantsSeedChangesTiebreak(t *testing.T) {
	scheduler := newTestScheduler()
	roster := []training.Participant{
		confirmed("p1", attendedDaysAgo(5)),
		confirmed("p2", attendedDaysAgo(5)),
		confirmed("p3", attendedDaysAgo(5)),
		confirmed("p4", attendedDaysAgo(5)),
	}

	seeded := func(seed string) map[string]float64 {
		session := training.Training{ID: "t1", RoundRobinEnabled: true, RoundRobinSeed: seed}
		tiebreaks := make(map[string]float64)
		for _, e := range scheduler.CalculateParticipants(session, roster).CanPlay {
			tiebreaks[e.PlayerID] = e.Breakdown.Tiebreak
		}
		return tiebreaks
	}

	assert.NotEqual(t, seeded("42"), seeded("99"))
}

func TestCalculateParticipantsInjectedTiebreaker(t *testing.T) {
	// A constant tie-breaker leaves exact ties, which stable sort resolves
	// by attendance order.
	scheduler := newTestScheduler(training.WithTiebreaker(func(string, float64) float64 { return 0 }))
	session := training.Training{ID: "t1", RoundRobinEnabled: true, RoundRobinSeed: "42"}
	roster := []training.Participant{
		confirmed("p1", attendedDaysAgo(5)),
		confirmed("p2", attendedDaysAgo(5)),
	}

	selection := scheduler.CalculateParticipants(session, roster)

	assert.Equal(t, []string{"p1", "p2"}, playerIDs(selection.CanPlay))
}

func TestDeclineBonusTiers(t *testing.T) {
	scheduler := newTestScheduler()
	session := training.Training{ID: "t1", RoundRobinEnabled: true, RoundRobinSeed: "42"}

	ts := testClock().AddDate(0, 0, -5).Unix()
	cases := []struct {
		name  string
		stats training.AttendanceStats
		want  float64
	}{
		{
			name:  "two consecutive declines",
			stats: training.AttendanceStats{Attended: 1, Declined: 2, ConsecutiveDeclines: 2, LastAttended: &ts, LastResponse: training.StatusDeclined},
			want:  50,
		},
		{
			name:  "last response declined",
			stats: training.AttendanceStats{Attended: 3, Declined: 1, ConsecutiveDeclines: 1, LastAttended: &ts, LastResponse: training.StatusDeclined},
			want:  25,
		},
		{
			name:  "decline ratio above half",
			stats: training.AttendanceStats{Attended: 1, Declined: 3, LastAttended: &ts, LastResponse: training.StatusConfirmed},
			want:  15,
		},
		{
			name:  "no bonus",
			stats: training.AttendanceStats{Attended: 4, Declined: 1, LastAttended: &ts, LastResponse: training.StatusConfirmed},
			want:  0,
		},
		{
			name:  "exactly half ratio gets nothing",
			stats: training.AttendanceStats{Attended: 2, Declined: 2, LastAttended: &ts, LastResponse: training.StatusConfirmed},
			want:  0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			roster := []training.Participant{confirmed("p1", tc.stats)}
			selection := scheduler.CalculateParticipants(session, roster)
			require.Len(t, selection.CanPlay, 1)
			assert.Equal(t, tc.want, selection.CanPlay[0].Breakdown.DeclineBonus)
		})
	}
}

func TestApplyResponseConfirm(t *testing.T) {
	now := testClock()
	stats := training.AttendanceStats{Attended: 2, Declined: 2, ConsecutiveDeclines: 2, LastResponse: training.StatusDeclined}

	updated := training.ApplyResponse(stats, training.StatusConfirmed, now)

	assert.Equal(t, 3, updated.Attended)
	assert.Equal(t, 2, updated.Declined)
	assert.Zero(t, updated.ConsecutiveDeclines)
	require.NotNil(t, updated.LastAttended)
	assert.Equal(t, now.Unix(), *updated.LastAttended)
	assert.Equal(t, training.StatusConfirmed, updated.LastResponse)
	assert.InDelta(t, 0.6, updated.AttendanceRate, 1e-9)
}

func TestApplyResponseDecline(t *testing.T) {
	stats := training.AttendanceStats{Attended: 1, ConsecutiveDeclines: 1, LastResponse: training.StatusDeclined}

	updated := training.ApplyResponse(stats, training.StatusDeclined, testClock())

	assert.Equal(t, 1, updated.Declined)
	assert.Equal(t, 2, updated.ConsecutiveDeclines)
	assert.Nil(t, updated.LastAttended)
	assert.Equal(t, training.StatusDeclined, updated.LastResponse)
	assert.InDelta(t, 0.5, updated.AttendanceRate, 1e-9)
}

func TestHashTiebreakerDeterministicAndBounded(t *testing.T) {
	first := training.HashTiebreaker("p1seed", 5)
	second := training.HashTiebreaker("p1seed", 5)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0.0)
	assert.Less(t, first, 5.0)
	assert.NotEqual(t, first, training.HashTiebreaker("p1other", 5))
}
