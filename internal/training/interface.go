package training

// TrainingStore defines the interface for training sessions, responses and
// attendance counters.
type TrainingStore interface {
	UpsertTraining(t Training) error
	GetTraining(trainingID string) (*Training, error)
	ListTrainings() ([]Training, error)
	// RecordResponse upserts one response. The roster keeps responses in
	// responded-at order, which is the FCFS ranking.
	RecordResponse(trainingID, playerID, playerName string, status ResponseStatus, respondedAt int64) error
	GetRoster(trainingID string) ([]Participant, error)
	GetStats(playerID string) (AttendanceStats, error)
	UpsertStats(playerID string, stats AttendanceStats) error
	RecordPromotion(trainingID, playerID string, promotedAt int64) error
	GetPromotions(trainingID string) ([]Promotion, error)
	Clear()
}
