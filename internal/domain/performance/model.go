package performance

import "time"

// Performance is a player's score within one contest. For contest-scoped
// teams this row is authoritative: a missing row means zero, never a
// fallback to the player's global points.
type Performance struct {
	PlayerID  string
	ContestID string
	Points    int
	Runs      int
	Wickets   int
	UpdatedAt time.Time
}
