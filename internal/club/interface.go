package club

// ClubStore defines the interface for interacting with the club's roster.
type ClubStore interface {
	UpsertPlayers(players []PlayerInfo) error
	GetAllPlayers() ([]PlayerInfo, error)
	GetPlayers(playerIDs []string) ([]PlayerInfo, error)
	GetPlayer(playerID string) (*PlayerInfo, error)
	IsKnownPlayer(playerID string) bool
	// UpdateRating persists a recomputed rating, the only rating write
	// contract the engines imply.
	UpdateRating(playerID string, rating float64) error
	Clear()
}
