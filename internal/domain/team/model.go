package team

import "time"

// Member is one roster slot. Credits records the player's cost at
// selection time so later pool changes never alter a settled budget.
type Member struct {
	PlayerID      string
	Credits       int64
	IsCaptain     bool
	IsViceCaptain bool
}

// Team is an immutable fantasy roster owned by one user, optionally
// scoped to a contest. TotalPoints is a derived cache and never
// authoritative; reads recompute it from current scores.
type Team struct {
	ID          string
	UserID      string
	ContestID   string
	Name        string
	Members     []Member
	TotalPoints int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CaptainID returns the member flagged as captain, or "".
func (t Team) CaptainID() string {
	for _, m := range t.Members {
		if m.IsCaptain {
			return m.PlayerID
		}
	}
	return ""
}

// ViceCaptainID returns the member flagged as vice-captain, or "".
func (t Team) ViceCaptainID() string {
	for _, m := range t.Members {
		if m.IsViceCaptain {
			return m.PlayerID
		}
	}
	return ""
}

// SpentCredits is the budget consumed by the roster at selection time.
func (t Team) SpentCredits() int64 {
	var total int64
	for _, m := range t.Members {
		total += m.Credits
	}
	return total
}

// HasPlayer reports whether the roster contains the given player.
func (t Team) HasPlayer(playerID string) bool {
	for _, m := range t.Members {
		if m.PlayerID == playerID {
			return true
		}
	}
	return false
}
