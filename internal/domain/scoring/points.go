// Package scoring holds the pure points arithmetic shared by every
// recomputation path.
package scoring

import "math"

const (
	CaptainMultiplier     = 2.0
	ViceCaptainMultiplier = 1.5
)

// Round rounds half away from zero, the convention for fantasy point
// totals (12.5 -> 13, -12.5 -> -13).
func Round(x float64) int {
	if x < 0 {
		return int(math.Ceil(x - 0.5))
	}
	return int(math.Floor(x + 0.5))
}

// MemberContribution applies the role multiplier to a member's base
// points and rounds per member, not on the team sum.
func MemberContribution(base int, isCaptain, isViceCaptain bool) int {
	switch {
	case isCaptain:
		return Round(float64(base) * CaptainMultiplier)
	case isViceCaptain:
		return Round(float64(base) * ViceCaptainMultiplier)
	default:
		return base
	}
}

// Member is the slice of team membership the calculator needs.
type Member struct {
	PlayerID      string
	IsCaptain     bool
	IsViceCaptain bool
}

// TeamTotal sums the roster's contributions. basePoints resolves a
// member's base score; members without a score contribute zero, so a
// deleted player or an absent performance row never fails a recompute.
func TeamTotal(members []Member, basePoints func(playerID string) (int, bool)) int {
	total := 0
	for _, m := range members {
		base, ok := basePoints(m.PlayerID)
		if !ok {
			continue
		}
		total += MemberContribution(base, m.IsCaptain, m.IsViceCaptain)
	}
	return total
}
