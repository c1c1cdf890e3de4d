package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	StandingsRecomputeCount int
	WaitlistRunCount        int
	PromotionCount          int
	RatingUpdateCount       int
	ObservedDurations       []float64
	StartupTime             float64
}

// NewMock creates a new mock Metrics instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncStandingsRecomputes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StandingsRecomputeCount++
}

func (m *Mock) IncWaitlistRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WaitlistRunCount++
}

func (m *Mock) IncPromotions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PromotionCount++
}

func (m *Mock) IncRatingUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RatingUpdateCount++
}

func (m *Mock) ObserveRecomputeDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ObservedDurations = append(m.ObservedDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}
