package rating_test

import (
	"testing"

	"github.com/mkrogh/courtline/internal/rating"
	"github.com/stretchr/testify/assert"
)

func TestRecomputeSingleWinEvenGap(t *testing.T) {
	// gap 0 -> 50 points; hurdle(20) = 112.5; delta = 50*0.8/112.5.
	got := rating.Recompute(20, []rating.Win{{OwnRating: 20, OpponentRating: 20}}, 0)
	assert.InDelta(t, 20-40.0/112.5, got, 1e-9)
}

func TestRecomputeWinAgainstStrongerOpponent(t *testing.T) {
	// Lower is better, so an opponent at 16 is stronger than own 18: gap +2
	// lands on the upper quadratic, 50 + 3.75*4 = 65 points.
	got := rating.Recompute(18, []rating.Win{{OwnRating: 18, OpponentRating: 16}}, 0)
	assert.InDelta(t, 18-52.0/137.5, got, 1e-9)
}

func TestRecomputeWinAgainstWeakerOpponent(t *testing.T) {
	// gap -2 lands on the lower quadratic, 50 - 2.5*4 = 40 points.
	got := rating.Recompute(18, []rating.Win{{OwnRating: 18, OpponentRating: 20}}, 0)
	assert.InDelta(t, 18-32.0/137.5, got, 1e-9)
}

func TestRecomputePointsCurveSaturates(t *testing.T) {
	// Gaps at or beyond +-4 pin the curve to its cap and floor.
	capped := rating.Recompute(20, []rating.Win{{OwnRating: 20, OpponentRating: 10}}, 0)
	assert.InDelta(t, 20-110*0.8/112.5, capped, 1e-9)

	floored := rating.Recompute(20, []rating.Win{{OwnRating: 20, OpponentRating: 25}}, 0)
	assert.InDelta(t, 20-10*0.8/112.5, floored, 1e-9)

	// Beyond the cutoff the delta stays the same.
	furtherOut := rating.Recompute(20, []rating.Win{{OwnRating: 20, OpponentRating: 4}}, 0)
	assert.InDelta(t, capped, furtherOut, 1e-9)
}

func TestRecomputeTeamMatchMultiplier(t *testing.T) {
	plain := rating.Recompute(18, []rating.Win{{OwnRating: 18, OpponentRating: 16}}, 0)
	team := rating.Recompute(18, []rating.Win{{OwnRating: 18, OpponentRating: 16, TeamMatch: true}}, 0)

	assert.InDelta(t, (18-plain)*1.1, 18-team, 1e-9)
	assert.Less(t, team, plain)
}

func TestRecomputeAppliesWeeklyDecay(t *testing.T) {
	got := rating.Recompute(20, nil, 4)
	assert.InDelta(t, 20.1, got, 1e-9)
}

func TestRecomputeDecayClampsAtWorst(t *testing.T) {
	got := rating.Recompute(24.9, nil, 20)
	assert.Equal(t, rating.WorstRating, got)
}

func TestRecomputeIgnoresNegativeWeeks(t *testing.T) {
	got := rating.Recompute(20, nil, -3)
	assert.Equal(t, 20.0, got)
}

func TestRecomputeAccumulatesWins(t *testing.T) {
	wins := []rating.Win{
		{OwnRating: 20, OpponentRating: 20},
		{OwnRating: 20, OpponentRating: 20},
	}
	one := rating.Recompute(20, wins[:1], 0)
	two := rating.Recompute(20, wins, 0)

	assert.InDelta(t, 20-2*(20-one), two, 1e-9)
}

func TestDoublesWinAveragesRatings(t *testing.T) {
	w := rating.DoublesWin(18, 20, 14, 16, true)

	assert.Equal(t, 19.0, w.OwnRating)
	assert.Equal(t, 15.0, w.OpponentRating)
	assert.True(t, w.TeamMatch)
}

func TestDisplayTruncates(t *testing.T) {
	assert.Equal(t, 19.6, rating.Display(19.69))
	assert.Equal(t, 19.6, rating.Display(19.649))
	assert.Equal(t, 7.0, rating.Display(7.0))
	assert.Equal(t, 25.0, rating.Display(25.0))
}

func TestParse(t *testing.T) {
	assert.Equal(t, 23.5, rating.Parse("23.5"))
	assert.Equal(t, 12.3, rating.Parse(" 12.3 "))
	assert.Equal(t, rating.WorstRating, rating.Parse("abc"))
	assert.Equal(t, rating.WorstRating, rating.Parse(""))
	assert.Equal(t, rating.WorstRating, rating.Parse("0"))
	assert.Equal(t, rating.WorstRating, rating.Parse("-3"))
	assert.Equal(t, rating.WorstRating, rating.Parse("26.1"))
}
