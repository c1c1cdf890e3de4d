package club

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the club roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PlayerInfo represents a registered player.
type PlayerInfo struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Rating    float64 `json:"rating"`
	IsCaptain bool    `json:"is_captain"`
}
