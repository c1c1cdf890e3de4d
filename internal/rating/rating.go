// Package rating implements the LK-style skill rating recomputation. On this
// scale lower is better: wins against stronger opponents reduce the value
// faster, and inactivity drifts it upward.
package rating

import (
	"math"
	"strconv"
	"strings"
)

const (
	// WorstRating caps the scale. Decay can never push a player past it and
	// unparseable input defaults to it.
	WorstRating = 25.0

	ageClassFactor  = 0.8
	teamMatchFactor = 1.1
	weeklyDecay     = 0.025

	minPoints  = 10.0
	midPoints  = 50.0
	maxPoints  = 110.0
	gapCutoff  = 4.0
	negaCurveK = (midPoints - minPoints) / (gapCutoff * gapCutoff) // 2.5
	posiCurveK = (maxPoints - midPoints) / (gapCutoff * gapCutoff) // 3.75
)

// Win is one recorded match win. For doubles the two teammates' ratings are
// averaged into OwnRating and the two opponents' into OpponentRating.
type Win struct {
	OwnRating      float64 `json:"own_rating"`
	OpponentRating float64 `json:"opponent_rating"`
	TeamMatch      bool    `json:"team_match"`
}

// DoublesWin builds a Win from the four individual ratings of a doubles
// rubber.
func DoublesWin(own, partner, opp1, opp2 float64, teamMatch bool) Win {
	return Win{
		OwnRating:      (own + partner) / 2,
		OpponentRating: (opp1 + opp2) / 2,
		TeamMatch:      teamMatch,
	}
}

// Recompute applies a chronological list of wins to a starting rating, adds
// the linear time decay for the elapsed weeks since season start and clamps
// the result. It is pure and never errors.
func Recompute(start float64, wins []Win, weeksSinceSeasonStart int) float64 {
	precise := start
	for _, w := range wins {
		precise -= winDelta(w)
	}

	if weeksSinceSeasonStart > 0 {
		precise += weeklyDecay * float64(weeksSinceSeasonStart)
	}

	if precise > WorstRating {
		precise = WorstRating
	}
	return precise
}

// winDelta is the improvement earned by one win: the points curve over the
// rating gap, scaled by the age-class factor and divided by the hurdle.
func winDelta(w Win) float64 {
	delta := points(w.OwnRating-w.OpponentRating) * ageClassFactor / hurdle(w.OwnRating)
	if w.TeamMatch {
		delta *= teamMatchFactor
	}
	return delta
}

// points maps the rating gap (own minus opponent) onto the piecewise
// quadratic curve: floored at 10 for gaps of -4 and below, capped at 110 for
// gaps of +4 and above, with separate quadratics on either side of zero.
func points(gap float64) float64 {
	switch {
	case gap <= -gapCutoff:
		return minPoints
	case gap >= gapCutoff:
		return maxPoints
	case gap < 0:
		return midPoints - negaCurveK*gap*gap
	default:
		return midPoints + posiCurveK*gap*gap
	}
}

// hurdle grows as the rating improves, so strong players need bigger wins to
// keep climbing.
func hurdle(ownRating float64) float64 {
	return 50 + 12.5*(WorstRating-ownRating)
}

// Display truncates (never rounds) a precise rating to one decimal place,
// which is the publicly shown value.
func Display(precise float64) float64 {
	return math.Trunc(precise*10) / 10
}

// Parse reads a free-text rating, defaulting to the worst rating on
// malformed input.
func Parse(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || v > WorstRating {
		return WorstRating
	}
	return v
}
