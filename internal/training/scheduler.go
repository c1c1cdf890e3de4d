package training

import (
	"sort"
	"strconv"
	"time"
)

// firstTimerBonus prioritizes participants with no recorded attendance over
// anyone with history.
const firstTimerBonus = 1000

// tiebreakRange bounds the seeded tie-break term.
const tiebreakRange = 5

// Scheduler computes admit lists and waitlists for trainings. It is a pure
// computation over snapshots; callers persist the results.
type Scheduler struct {
	tiebreak Tiebreaker
	now      func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTiebreaker substitutes the tie-break hash.
func WithTiebreaker(tb Tiebreaker) Option {
	return func(s *Scheduler) { s.tiebreak = tb }
}

// WithClock substitutes the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// NewScheduler creates a Scheduler with the default tie-break hash.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		tiebreak: HashTiebreaker,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CalculateParticipants splits the confirmed roster into an admit list and a
// waitlist. The roster must be ordered by response time; for first-come-
// first-served trainings that order is the ranking.
func (s *Scheduler) CalculateParticipants(training Training, roster []Participant) Selection {
	confirmed := make([]Participant, 0, len(roster))
	for _, p := range roster {
		if p.Status == StatusConfirmed {
			confirmed = append(confirmed, p)
		}
	}

	overbooked := training.MaxPlayers > 0 && len(confirmed) > training.MaxPlayers

	var entries []PriorityEntry
	if training.RoundRobinEnabled {
		entries = s.scoreEntries(training, confirmed)
		// Highest priority first; lower index wins exact-score ties.
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score > entries[j].Score
		})
	} else {
		// First come, first served: attendance order, no scoring.
		entries = make([]PriorityEntry, 0, len(confirmed))
		for _, p := range confirmed {
			entries = append(entries, PriorityEntry{PlayerID: p.PlayerID, Name: p.Name})
		}
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	cut := len(entries)
	if training.MaxPlayers > 0 && cut > training.MaxPlayers {
		cut = training.MaxPlayers
	}

	return Selection{
		CanPlay:    entries[:cut],
		Waitlist:   entries[cut:],
		Overbooked: overbooked,
	}
}

// scoreEntries computes the priority score for each confirmed participant:
// a recency term, a decline-bonus tier and a seeded tie-break.
func (s *Scheduler) scoreEntries(training Training, confirmed []Participant) []PriorityEntry {
	seed := training.RoundRobinSeed
	if seed == "" {
		seed = strconv.FormatInt(s.now().Unix(), 10)
	}

	entries := make([]PriorityEntry, 0, len(confirmed))
	for _, p := range confirmed {
		breakdown := PriorityBreakdown{
			Recency:      s.recencyTerm(p.Stats),
			DeclineBonus: declineBonus(p.Stats),
			Tiebreak:     s.tiebreak(p.PlayerID+seed, tiebreakRange),
		}
		entries = append(entries, PriorityEntry{
			PlayerID:  p.PlayerID,
			Name:      p.Name,
			Score:     breakdown.Recency + breakdown.DeclineBonus + breakdown.Tiebreak,
			Breakdown: breakdown,
		})
	}
	return entries
}

// recencyTerm rewards participants who have not played recently. First-timers
// outrank anyone with history.
func (s *Scheduler) recencyTerm(stats AttendanceStats) float64 {
	if stats.LastAttended == nil {
		return firstTimerBonus
	}
	days := s.now().Sub(time.Unix(*stats.LastAttended, 0)).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// declineBonus compensates participants who keep being declined or keep
// declining. Only the highest qualifying tier applies.
func declineBonus(stats AttendanceStats) float64 {
	switch {
	case stats.ConsecutiveDeclines >= 2:
		return 50
	case stats.LastResponse == StatusDeclined:
		return 25
	case declineRatio(stats) > 0.5:
		return 15
	default:
		return 0
	}
}

func declineRatio(stats AttendanceStats) float64 {
	total := stats.Declined + stats.Attended
	if total == 0 {
		return 0
	}
	return float64(stats.Declined) / float64(total)
}

// ApplyResponse folds one response event into a participant's historical
// counters and recomputes the lifetime attendance rate.
func ApplyResponse(stats AttendanceStats, status ResponseStatus, respondedAt time.Time) AttendanceStats {
	switch status {
	case StatusConfirmed:
		stats.Attended++
		stats.ConsecutiveDeclines = 0
		ts := respondedAt.Unix()
		stats.LastAttended = &ts
	case StatusDeclined:
		stats.Declined++
		stats.ConsecutiveDeclines++
	}
	stats.LastResponse = status

	if total := stats.Attended + stats.Declined; total > 0 {
		stats.AttendanceRate = float64(stats.Attended) / float64(total)
	}
	return stats
}
