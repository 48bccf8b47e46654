package scoring

import "testing"

func TestRoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{12.5, 13},
		{-12.5, -13},
		{7.4, 7},
		{7.5, 8},
		{-7.4, -7},
		{0, 0},
		{22.5, 23},
	}

	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Fatalf("Round(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMemberContribution(t *testing.T) {
	tests := []struct {
		name    string
		base    int
		captain bool
		vice    bool
		want    int
	}{
		{name: "captain doubles", base: 10, captain: true, want: 20},
		{name: "vice rounds half up", base: 15, vice: true, want: 23},
		{name: "vice odd base", base: 7, vice: true, want: 11},
		{name: "regular member unchanged", base: 9, want: 9},
		{name: "negative vice rounds away from zero", base: -5, vice: true, want: -8},
		{name: "negative captain", base: -3, captain: true, want: -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemberContribution(tt.base, tt.captain, tt.vice); got != tt.want {
				t.Fatalf("MemberContribution(%d) = %d, want %d", tt.base, got, tt.want)
			}
		})
	}
}

func TestTeamTotal(t *testing.T) {
	points := map[string]int{
		"p1": 10,
		"p2": 8,
		"p3": 5,
		"p4": 3,
	}
	lookup := func(id string) (int, bool) {
		base, ok := points[id]
		return base, ok
	}

	members := []Member{
		{PlayerID: "p1", IsCaptain: true},
		{PlayerID: "p2", IsViceCaptain: true},
		{PlayerID: "p3"},
		{PlayerID: "p4"},
	}

	// 10*2 + round(8*1.5) + 5 + 3 = 20 + 12 + 5 + 3
	if got := TeamTotal(members, lookup); got != 40 {
		t.Fatalf("TeamTotal = %d, want 40", got)
	}

	// A second pass over unchanged scores yields the same total.
	if got := TeamTotal(members, lookup); got != 40 {
		t.Fatalf("TeamTotal not idempotent, got %d", got)
	}
}

func TestTeamTotalMissingPlayerContributesZero(t *testing.T) {
	members := []Member{
		{PlayerID: "p1", IsCaptain: true},
		{PlayerID: "ghost", IsViceCaptain: true},
	}
	lookup := func(id string) (int, bool) {
		if id == "p1" {
			return 6, true
		}
		return 0, false
	}

	if got := TeamTotal(members, lookup); got != 12 {
		t.Fatalf("TeamTotal = %d, want 12", got)
	}
}
